package blog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a single post together with its comments.
type Blog struct {
	Id        primitive.ObjectID `bson:"_id" json:"_id"`
	Author    string             `bson:"author" json:"author"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Date      *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	Comments  []Comment          `bson:"comments" json:"comments"`

	// Extra holds fields the client sent that have no typed
	// counterpart. They are stored inline on the document.
	Extra map[string]any `bson:",inline" json:"-"`
}

// Comment is owned by its blog and only ever read or written through it.
type Comment struct {
	Id     primitive.ObjectID `bson:"_id" json:"_id"`
	Author string             `bson:"author" json:"author"`
	Title  string             `bson:"title" json:"title"`
	Body   string             `bson:"body" json:"body"`

	Extra map[string]any `bson:",inline" json:"-"`
}

// Update names the top-level fields of a blog to overwrite. A nil field
// is left untouched; Comments, when set, replaces the whole list.
type Update struct {
	Author    *string
	Title     *string
	Body      *string
	CreatedAt *time.Time
	Date      *time.Time
	Comments  *[]Comment
	Extra     map[string]any
}

// SearchOptions selects blogs by case-insensitive substring. Search
// matches any of author, title or body. Zero values match everything.
type SearchOptions struct {
	Author string
	Title  string
	Search string
	Skip   int
	Limit  int
}

// SetDefaults assigns the id, creation time, comment list and comment ids
// when they are missing. Times are truncated to the precision the store
// keeps.
func (b *Blog) SetDefaults() {
	if b.Id.IsZero() {
		b.Id = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.CreatedAt = b.CreatedAt.Truncate(time.Millisecond)
	if b.Date != nil {
		date := b.Date.Truncate(time.Millisecond)
		b.Date = &date
	}
	b.Comments = prepareComments(b.Comments)
	b.Extra = cleanExtra(b.Extra)
}

// Apply makes the same change to b in memory that UpdateOne makes to the
// stored document.
func (u Update) Apply(b *Blog) {
	for k, v := range cleanExtra(u.Extra) {
		if b.Extra == nil {
			b.Extra = map[string]any{}
		}
		b.Extra[k] = v
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Body != nil {
		b.Body = *u.Body
	}
	if u.CreatedAt != nil {
		b.CreatedAt = *u.CreatedAt
	}
	if u.Date != nil {
		date := *u.Date
		b.Date = &date
	}
	if u.Comments != nil {
		b.Comments = prepareComments(*u.Comments)
	}
}

func (c *Comment) setDefaults() {
	if c.Id.IsZero() {
		c.Id = primitive.NewObjectID()
	}
}

func prepareComments(comments []Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		c.setDefaults()
		c.Extra = cleanCommentExtra(c.Extra)
		out = append(out, c)
	}
	return out
}
