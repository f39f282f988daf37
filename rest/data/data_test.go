package data

import (
	"context"
	"net/http"
	"testing"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp/db"
	"github.com/evergreen-ci/restapp/mock"
	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/restapp/model/user"
	"github.com/evergreen-ci/restapp/testutil"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver"
)

func statusOf(t *testing.T, err error) int {
	var resp gimlet.ErrorResponse
	require.True(t, errors.As(err, &resp), "expected an ErrorResponse, got %v", err)
	return resp.StatusCode
}

func TestParseId(t *testing.T) {
	id := primitive.NewObjectID()
	parsed, err := ParseId("blog", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, bad := range []string{"", "1234", "zzzzzzzzzzzzzzzzzzzzzzzz", id.Hex() + "0"} {
		_, err = ParseId("blog", bad)
		require.Error(t, err, bad)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	}
}

func TestDBConnectorUnavailable(t *testing.T) {
	ctx := context.Background()
	env := &mock.Environment{}
	require.NoError(t, env.Configure(nil))
	sc := NewDBConnector(env)

	_, err := sc.FindBlogs(ctx, blog.SearchOptions{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))

	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, sc.CreateBlog(ctx, &blog.Blog{})))
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, sc.DeleteUser(ctx, primitive.NewObjectID().Hex())))

	_, err = sc.FindUsers(ctx, user.SearchOptions{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))

	// a malformed id is reported before the store is consulted
	_, err = sc.FindBlogById(ctx, "bogus")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	_, err = sc.UpdateUser(ctx, "bogus", user.Update{})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	nilEnv := NewDBConnector(nil)
	_, err = nilEnv.FindBlogs(ctx, blog.SearchOptions{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, storeError(nil, "op"))

	err := storeError(context.DeadlineExceeded, "finding blogs")
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))

	err = storeError(errors.New("bad document"), "finding blogs")
	require.Error(t, err)
	var resp gimlet.ErrorResponse
	assert.False(t, errors.As(err, &resp))
	assert.Contains(t, err.Error(), "finding blogs")

	err = storeError(mongo.CommandError{Code: 10334, Message: "BSONObjectTooLarge"}, "creating blog")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Contains(t, err.Error(), "creating blog")

	err = storeError(errors.Wrap(driver.ErrDocumentTooLarge, "inserting blog"), "creating blog")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestMockConnectorClassifiesStoredError(t *testing.T) {
	ctx := context.Background()
	sc := &MockConnector{StoredError: driver.ErrDocumentTooLarge}
	assert.Equal(t, http.StatusBadRequest, statusOf(t, sc.CreateBlog(ctx, &blog.Blog{Title: "big"})))

	sc.StoredError = context.DeadlineExceeded
	_, err := sc.FindUsers(ctx, user.SearchOptions{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
}

func TestMockConnectorReturnsCopies(t *testing.T) {
	ctx := context.Background()
	sc := &MockConnector{}

	created := &blog.Blog{
		Title:    "original",
		Comments: []blog.Comment{{Author: "reader", Body: "first!", Extra: map[string]any{"likes": 1}}},
		Extra:    map[string]any{"tags": "go"},
	}
	require.NoError(t, sc.CreateBlog(ctx, created))
	created.Extra["tags"] = "changed by caller"
	created.Comments[0].Body = "changed by caller"

	id := created.Id.Hex()
	before, err := sc.FindBlogById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, before)
	assert.Equal(t, "go", before.Extra["tags"])
	assert.Equal(t, "first!", before.Comments[0].Body)

	before.Extra["tags"] = "changed by reader"
	before.Comments[0].Extra["likes"] = 99

	replaced := []blog.Comment{{Author: "reader", Body: "second"}}
	_, err = sc.UpdateBlog(ctx, id, blog.Update{
		Comments: &replaced,
		Extra:    map[string]any{"mood": "happy"},
	})
	require.NoError(t, err)

	assert.Equal(t, "changed by reader", before.Extra["tags"])
	assert.NotContains(t, before.Extra, "mood")
	require.Len(t, before.Comments, 1)
	assert.Equal(t, "first!", before.Comments[0].Body)

	after, err := sc.FindBlogById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "go", after.Extra["tags"])
	assert.Equal(t, "happy", after.Extra["mood"])
	require.Len(t, after.Comments, 1)
	assert.Equal(t, "second", after.Comments[0].Body)

	require.NoError(t, sc.CreateUser(ctx, &user.User{Username: "u", Extra: map[string]any{"team": "a"}}))
	found, err := sc.FindUsers(ctx, user.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	found[0].Extra["team"] = "b"

	again, err := sc.FindUserById(ctx, found[0].Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "a", again.Extra["team"])
}

func TestMockConnector(t *testing.T) {
	ctx := context.Background()
	sc := &MockConnector{}

	blogs, err := sc.FindBlogs(ctx, blog.SearchOptions{})
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Empty(t, blogs)

	for _, title := range []string{"zero", "one", "two", "three"} {
		require.NoError(t, sc.CreateBlog(ctx, &blog.Blog{Title: title, Author: "superblogger"}))
	}

	blogs, err = sc.FindBlogs(ctx, blog.SearchOptions{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "one", blogs[0].Title)

	blogs, err = sc.FindBlogs(ctx, blog.SearchOptions{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, blogs)

	blogs, err = sc.FindBlogs(ctx, blog.SearchOptions{Search: "T"})
	require.NoError(t, err)
	assert.Len(t, blogs, 2)

	id := sc.Blogs[0].Id.Hex()
	updated, err := sc.UpdateBlog(ctx, id, blog.Update{Body: utility.ToStringPtr("new body")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new body", updated.Body)

	require.NoError(t, sc.DeleteBlog(ctx, id))
	require.NoError(t, sc.DeleteBlog(ctx, id))
	found, err := sc.FindBlogById(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, found)

	sc.Unavailable = true
	_, err = sc.FindUsers(ctx, user.SearchOptions{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
}

func TestDBConnector(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := testutil.NewDBEnvironment(ctx, t)
	require.NoError(t, db.ClearCollections(ctx, env.DB(), blog.Collection, user.Collection))
	defer func() {
		assert.NoError(t, db.ClearCollections(ctx, env.DB(), blog.Collection, user.Collection))
	}()
	sc := NewDBConnector(env)

	b := &blog.Blog{Author: "superblogger", Title: "hello"}
	require.NoError(t, sc.CreateBlog(ctx, b))

	found, err := sc.FindBlogById(ctx, b.Id.Hex())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "hello", found.Title)

	missing, err := sc.FindBlogById(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Nil(t, missing)

	u := &user.User{Username: "superblogger"}
	require.NoError(t, sc.CreateUser(ctx, u))
	users, err := sc.FindUsers(ctx, user.SearchOptions{Username: "SUPER"})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, sc.DeleteBlog(ctx, b.Id.Hex()))
	require.NoError(t, sc.DeleteBlog(ctx, b.Id.Hex()))
}
