package route

import (
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp/rest/data"
)

// AttachHandler attaches the api's request handlers to the given
// application. Every collection is listed both with and without a
// trailing slash.
func AttachHandler(app *gimlet.APIApp, sc data.Connector) {
	app.AddRoute("/rest/blogs").Get().RouteHandler(makeFetchBlogs(sc))
	app.AddRoute("/rest/blogs/").Get().RouteHandler(makeFetchBlogs(sc))
	app.AddRoute("/rest/blogs").Post().RouteHandler(makeCreateBlog(sc))
	app.AddRoute("/rest/blogs/{blog_id}").Get().RouteHandler(makeFetchBlog(sc))
	app.AddRoute("/rest/blogs/{blog_id}").Put().RouteHandler(makeUpdateBlog(sc))
	app.AddRoute("/rest/blogs/{blog_id}").Delete().RouteHandler(makeDeleteBlog(sc))

	app.AddRoute("/rest/users").Get().RouteHandler(makeFetchUsers(sc))
	app.AddRoute("/rest/users/").Get().RouteHandler(makeFetchUsers(sc))
	app.AddRoute("/rest/users").Post().RouteHandler(makeCreateUser(sc))
	app.AddRoute("/rest/users/{user_id}").Get().RouteHandler(makeFetchUser(sc))
	app.AddRoute("/rest/users/{user_id}").Put().RouteHandler(makeUpdateUser(sc))
	app.AddRoute("/rest/users/{user_id}").Delete().RouteHandler(makeDeleteUser(sc))
}
