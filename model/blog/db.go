package blog

import (
	"context"
	"regexp"

	"github.com/evergreen-ci/restapp/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "blogs"

var (
	IdKey        = bsonutil.MustHaveTag(Blog{}, "Id")
	AuthorKey    = bsonutil.MustHaveTag(Blog{}, "Author")
	TitleKey     = bsonutil.MustHaveTag(Blog{}, "Title")
	BodyKey      = bsonutil.MustHaveTag(Blog{}, "Body")
	CreatedAtKey = bsonutil.MustHaveTag(Blog{}, "CreatedAt")
	DateKey      = bsonutil.MustHaveTag(Blog{}, "Date")
	CommentsKey  = bsonutil.MustHaveTag(Blog{}, "Comments")

	CommentIdKey     = bsonutil.MustHaveTag(Comment{}, "Id")
	CommentAuthorKey = bsonutil.MustHaveTag(Comment{}, "Author")
	CommentTitleKey  = bsonutil.MustHaveTag(Comment{}, "Title")
	CommentBodyKey   = bsonutil.MustHaveTag(Comment{}, "Body")
)

// Keys lists the typed top-level fields of a blog document.
func Keys() []string {
	return []string{IdKey, AuthorKey, TitleKey, BodyKey, CreatedAtKey, DateKey, CommentsKey}
}

func commentKeys() []string {
	return []string{CommentIdKey, CommentAuthorKey, CommentTitleKey, CommentBodyKey}
}

func cleanExtra(extra map[string]any) map[string]any {
	return db.CleanInlineFields(extra, Keys()...)
}

func cleanCommentExtra(extra map[string]any) map[string]any {
	return db.CleanInlineFields(extra, commentKeys()...)
}

// ById returns a query for the blog with the given id.
func ById(id primitive.ObjectID) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// All matches every blog in natural order.
var All = db.Query(nil)

// BySearch returns a query applying the substring filters and the
// skip/limit window in opts, ordered by id.
func BySearch(opts SearchOptions) db.Q {
	filter := bson.M{}
	if opts.Author != "" {
		filter[AuthorKey] = containsPattern(opts.Author)
	}
	if opts.Title != "" {
		filter[TitleKey] = containsPattern(opts.Title)
	}
	if opts.Search != "" {
		pattern := containsPattern(opts.Search)
		filter["$or"] = []bson.M{
			{AuthorKey: pattern},
			{TitleKey: pattern},
			{BodyKey: pattern},
		}
	}

	return db.Query(filter).Sort([]string{IdKey}).Skip(max(opts.Skip, 0)).Limit(max(opts.Limit, 0))
}

func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// Insert fills in defaults with SetDefaults and stores the blog. The
// receiver holds the stored document afterwards.
func (b *Blog) Insert(ctx context.Context, d *mongo.Database) error {
	b.SetDefaults()
	return errors.Wrap(db.Insert(ctx, d, Collection, b), "inserting blog")
}

// Find returns the blogs matching q, never nil.
func Find(ctx context.Context, d *mongo.Database, q db.Q) ([]Blog, error) {
	out := []Blog{}
	if err := db.FindAllQ(ctx, d, Collection, q, &out); err != nil {
		return nil, errors.Wrap(err, "finding blogs")
	}

	return out, nil
}

// FindOne returns the first blog matching q, or nil if there is none.
func FindOne(ctx context.Context, d *mongo.Database, q db.Q) (*Blog, error) {
	b := &Blog{}
	err := db.FindOneQ(ctx, d, Collection, q, b)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "finding blog")
	}

	return b, nil
}

// UpdateOne sets the fields named by u on the blog with the given id and
// returns the blog as it is afterwards, or nil if no blog has that id.
func UpdateOne(ctx context.Context, d *mongo.Database, id primitive.ObjectID, u Update) (*Blog, error) {
	set := u.setDoc()
	if len(set) == 0 {
		return FindOne(ctx, d, ById(id))
	}

	b := &Blog{}
	err := db.UpdateIdAndFind(ctx, d, Collection, id, bson.M{"$set": set}, b)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "updating blog '%s'", id.Hex())
	}

	return b, nil
}

// Remove deletes the blog with the given id. Removing a blog that does
// not exist is not an error.
func Remove(ctx context.Context, d *mongo.Database, id primitive.ObjectID) error {
	_, err := db.RemoveId(ctx, d, Collection, id)
	return errors.Wrapf(err, "removing blog '%s'", id.Hex())
}

// Count returns the number of stored blogs.
func Count(ctx context.Context, d *mongo.Database) (int, error) {
	return db.CountQ(ctx, d, Collection, All)
}

func (u Update) setDoc() bson.M {
	set := bson.M{}
	for k, v := range cleanExtra(u.Extra) {
		set[k] = v
	}
	if u.Author != nil {
		set[AuthorKey] = *u.Author
	}
	if u.Title != nil {
		set[TitleKey] = *u.Title
	}
	if u.Body != nil {
		set[BodyKey] = *u.Body
	}
	if u.CreatedAt != nil {
		set[CreatedAtKey] = *u.CreatedAt
	}
	if u.Date != nil {
		set[DateKey] = *u.Date
	}
	if u.Comments != nil {
		set[CommentsKey] = prepareComments(*u.Comments)
	}

	return set
}
