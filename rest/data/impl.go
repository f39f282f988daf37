package data

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp"
	"github.com/evergreen-ci/restapp/db"
	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/restapp/model/user"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBConnector is a struct that implements all of the methods which
// connect to the service layer of restapp against the environment's
// database.
type DBConnector struct {
	env restapp.Environment
}

func NewDBConnector(env restapp.Environment) *DBConnector {
	return &DBConnector{env: env}
}

func (c *DBConnector) database() (*mongo.Database, error) {
	if c.env == nil {
		return nil, unavailableError("no environment configured")
	}
	if !c.env.Connected() {
		return nil, unavailableError("not connected")
	}

	d := c.env.DB()
	if d == nil {
		return nil, unavailableError("no client")
	}

	return d, nil
}

// storeError converts store failures that mean the deployment went away
// into a 503, documents over the size limit into a 400 and wraps
// everything else.
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if db.IsDocumentLimit(err) {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, msg).Error(),
		}
	}
	if db.IsUnavailable(err) {
		grip.Warning(message.WrapError(err, message.Fields{
			"message": "store unavailable during request",
			"op":      msg,
		}))
		return unavailableError(err.Error())
	}

	return errors.Wrap(err, msg)
}

func (c *DBConnector) FindBlogs(ctx context.Context, opts blog.SearchOptions) ([]blog.Blog, error) {
	d, err := c.database()
	if err != nil {
		return nil, err
	}

	blogs, err := blog.Find(ctx, d, blog.BySearch(opts))
	return blogs, storeError(err, "finding blogs")
}

func (c *DBConnector) FindBlogById(ctx context.Context, id string) (*blog.Blog, error) {
	oid, err := ParseId("blog", id)
	if err != nil {
		return nil, err
	}
	d, err := c.database()
	if err != nil {
		return nil, err
	}

	b, err := blog.FindOne(ctx, d, blog.ById(oid))
	return b, storeError(err, "finding blog")
}

func (c *DBConnector) CreateBlog(ctx context.Context, b *blog.Blog) error {
	d, err := c.database()
	if err != nil {
		return err
	}

	return storeError(b.Insert(ctx, d), "creating blog")
}

func (c *DBConnector) UpdateBlog(ctx context.Context, id string, u blog.Update) (*blog.Blog, error) {
	oid, err := ParseId("blog", id)
	if err != nil {
		return nil, err
	}
	d, err := c.database()
	if err != nil {
		return nil, err
	}

	b, err := blog.UpdateOne(ctx, d, oid, u)
	return b, storeError(err, "updating blog")
}

func (c *DBConnector) DeleteBlog(ctx context.Context, id string) error {
	oid, err := ParseId("blog", id)
	if err != nil {
		return err
	}
	d, err := c.database()
	if err != nil {
		return err
	}

	return storeError(blog.Remove(ctx, d, oid), "deleting blog")
}

func (c *DBConnector) FindUsers(ctx context.Context, opts user.SearchOptions) ([]user.User, error) {
	d, err := c.database()
	if err != nil {
		return nil, err
	}

	users, err := user.Find(ctx, d, user.BySearch(opts))
	return users, storeError(err, "finding users")
}

func (c *DBConnector) FindUserById(ctx context.Context, id string) (*user.User, error) {
	oid, err := ParseId("user", id)
	if err != nil {
		return nil, err
	}
	d, err := c.database()
	if err != nil {
		return nil, err
	}

	u, err := user.FindOne(ctx, d, user.ById(oid))
	return u, storeError(err, "finding user")
}

func (c *DBConnector) CreateUser(ctx context.Context, u *user.User) error {
	d, err := c.database()
	if err != nil {
		return err
	}

	return storeError(u.Insert(ctx, d), "creating user")
}

func (c *DBConnector) UpdateUser(ctx context.Context, id string, update user.Update) (*user.User, error) {
	oid, err := ParseId("user", id)
	if err != nil {
		return nil, err
	}
	d, err := c.database()
	if err != nil {
		return nil, err
	}

	u, err := user.UpdateOne(ctx, d, oid, update)
	return u, storeError(err, "updating user")
}

func (c *DBConnector) DeleteUser(ctx context.Context, id string) error {
	oid, err := ParseId("user", id)
	if err != nil {
		return err
	}
	d, err := c.database()
	if err != nil {
		return err
	}

	return storeError(user.Remove(ctx, d, oid), "deleting user")
}
