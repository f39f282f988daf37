package data

import (
	"context"
	"fmt"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/restapp/model/user"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connector is an interface that contains all of the methods which
// connect to the service layer of restapp. Find methods that look up a
// single document return nil with no error when nothing matches; a
// malformed id is reported as a 404 gimlet.ErrorResponse.
type Connector interface {
	FindBlogs(context.Context, blog.SearchOptions) ([]blog.Blog, error)
	FindBlogById(context.Context, string) (*blog.Blog, error)
	// CreateBlog stores the blog, filling in its id and defaults.
	CreateBlog(context.Context, *blog.Blog) error
	UpdateBlog(context.Context, string, blog.Update) (*blog.Blog, error)
	// DeleteBlog succeeds whether or not the blog existed.
	DeleteBlog(context.Context, string) error

	FindUsers(context.Context, user.SearchOptions) ([]user.User, error)
	FindUserById(context.Context, string) (*user.User, error)
	CreateUser(context.Context, *user.User) error
	UpdateUser(context.Context, string, user.Update) (*user.User, error)
	DeleteUser(context.Context, string) error
}

// ParseId converts a path id into an ObjectID. Anything other than a 24
// character hex string is reported as not found.
func ParseId(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("%s '%s' not found", resource, id),
		}
	}

	return oid, nil
}

func unavailableError(cause string) error {
	return gimlet.ErrorResponse{
		StatusCode: http.StatusServiceUnavailable,
		Message:    fmt.Sprintf("database unavailable: %s", cause),
	}
}

var (
	_ Connector = &DBConnector{}
	_ Connector = &MockConnector{}
)
