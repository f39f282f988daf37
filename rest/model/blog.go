package model

import (
	"time"

	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIBlog is the JSON representation of a blog. Fields the client sends
// that have no typed counterpart are kept in Extra and rendered back at
// the top level of the object.
type APIBlog struct {
	Id        *string        `json:"_id" mapstructure:"_id"`
	Author    *string        `json:"author" mapstructure:"author"`
	Title     *string        `json:"title" mapstructure:"title"`
	Body      *string        `json:"body" mapstructure:"body"`
	CreatedAt *time.Time     `json:"created_at" mapstructure:"created_at"`
	Date      *time.Time     `json:"date,omitempty" mapstructure:"date"`
	Comments  []APIComment   `json:"comments" mapstructure:"comments"`
	Extra     map[string]any `json:"-" mapstructure:",remain"`
}

type APIComment struct {
	Id     *string        `json:"_id" mapstructure:"_id"`
	Author *string        `json:"author" mapstructure:"author"`
	Title  *string        `json:"title" mapstructure:"title"`
	Body   *string        `json:"body" mapstructure:"body"`
	Extra  map[string]any `json:"-" mapstructure:",remain"`
}

// Decode populates the blog from a request body that has already been
// read into a JSON object.
func (b *APIBlog) Decode(in map[string]any) error {
	return errors.Wrap(decodeDocument(in, b), "decoding blog")
}

func (b APIBlog) MarshalJSON() ([]byte, error) {
	type apiBlog APIBlog
	return marshalWithExtra(apiBlog(b), b.Extra)
}

func (c APIComment) MarshalJSON() ([]byte, error) {
	type apiComment APIComment
	return marshalWithExtra(apiComment(c), c.Extra)
}

// BuildFromService converts from a service level blog to an APIBlog.
func (b *APIBlog) BuildFromService(in blog.Blog) {
	b.Id = utility.ToStringPtr(in.Id.Hex())
	b.Author = utility.ToStringPtr(in.Author)
	b.Title = utility.ToStringPtr(in.Title)
	b.Body = utility.ToStringPtr(in.Body)
	createdAt := in.CreatedAt
	b.CreatedAt = &createdAt
	b.Date = nil
	if in.Date != nil {
		date := *in.Date
		b.Date = &date
	}

	b.Comments = make([]APIComment, 0, len(in.Comments))
	for _, c := range in.Comments {
		apiComment := APIComment{}
		apiComment.BuildFromService(c)
		b.Comments = append(b.Comments, apiComment)
	}
	b.Extra = in.Extra
}

// ToService returns a service layer blog. The blog id is always left for
// the store to assign; comment ids are kept when they are valid.
func (b *APIBlog) ToService() blog.Blog {
	out := blog.Blog{
		Author: utility.FromStringPtr(b.Author),
		Title:  utility.FromStringPtr(b.Title),
		Body:   utility.FromStringPtr(b.Body),
		Date:   b.Date,
		Extra:  b.Extra,
	}
	if b.CreatedAt != nil {
		out.CreatedAt = *b.CreatedAt
	}
	out.Comments = commentsToService(b.Comments)

	return out
}

// ToUpdate returns an update naming only the fields present in the
// request body.
func (b *APIBlog) ToUpdate() blog.Update {
	u := blog.Update{
		Author:    b.Author,
		Title:     b.Title,
		Body:      b.Body,
		CreatedAt: b.CreatedAt,
		Date:      b.Date,
		Extra:     b.Extra,
	}
	if b.Comments != nil {
		comments := commentsToService(b.Comments)
		u.Comments = &comments
	}

	return u
}

func (c *APIComment) BuildFromService(in blog.Comment) {
	c.Id = utility.ToStringPtr(in.Id.Hex())
	c.Author = utility.ToStringPtr(in.Author)
	c.Title = utility.ToStringPtr(in.Title)
	c.Body = utility.ToStringPtr(in.Body)
	c.Extra = in.Extra
}

func (c *APIComment) ToService() blog.Comment {
	out := blog.Comment{
		Author: utility.FromStringPtr(c.Author),
		Title:  utility.FromStringPtr(c.Title),
		Body:   utility.FromStringPtr(c.Body),
		Extra:  c.Extra,
	}
	if id, err := primitive.ObjectIDFromHex(utility.FromStringPtr(c.Id)); err == nil {
		out.Id = id
	}

	return out
}

func commentsToService(in []APIComment) []blog.Comment {
	out := make([]blog.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, c.ToService())
	}
	return out
}
