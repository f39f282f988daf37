package route

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/restapp/rest/data"
	"github.com/evergreen-ci/restapp/rest/model"
)

////////////////////////////////////////////////////////////////////////
//
// GET /rest/blogs

type blogsGetHandler struct {
	opts blog.SearchOptions
	sc   data.Connector
}

func makeFetchBlogs(sc data.Connector) gimlet.RouteHandler {
	return &blogsGetHandler{sc: sc}
}

// Factory creates an instance of the handler.
//
//	@Summary		List blogs
//	@Description	Returns blogs in store order. Text filters match case-insensitive substrings.
//	@Tags			blogs
//	@Router			/rest/blogs [get]
//	@Param			skip	query	int		false	"Number of blogs to skip"
//	@Param			limit	query	int		false	"Maximum number of blogs to return; 0 returns all"
//	@Param			author	query	string	false	"Filter on the author"
//	@Param			title	query	string	false	"Filter on the title"
//	@Param			search	query	string	false	"Filter on any of author, title or body"
//	@Success		200		{array}	model.APIBlog
func (h *blogsGetHandler) Factory() gimlet.RouteHandler {
	return &blogsGetHandler{sc: h.sc}
}

func (h *blogsGetHandler) Parse(ctx context.Context, r *http.Request) error {
	vals := r.URL.Query()
	h.opts = blog.SearchOptions{
		Author: vals.Get("author"),
		Title:  vals.Get("title"),
		Search: vals.Get("search"),
		Skip:   getNonNegativeInt(vals, "skip"),
		Limit:  getNonNegativeInt(vals, "limit"),
	}

	return nil
}

func (h *blogsGetHandler) Run(ctx context.Context) gimlet.Responder {
	blogs, err := h.sc.FindBlogs(ctx, h.opts)
	if err != nil {
		return errorResponder(err, "finding blogs")
	}

	out := make([]model.APIBlog, 0, len(blogs))
	for _, b := range blogs {
		apiBlog := model.APIBlog{}
		apiBlog.BuildFromService(b)
		out = append(out, apiBlog)
	}

	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// GET /rest/blogs/{blog_id}

type blogGetHandler struct {
	blogID string
	sc     data.Connector
}

func makeFetchBlog(sc data.Connector) gimlet.RouteHandler {
	return &blogGetHandler{sc: sc}
}

// Factory creates an instance of the handler.
//
//	@Summary		Get a blog
//	@Description	Returns the blog, or null if no blog has the id. A malformed id is a 404.
//	@Tags			blogs
//	@Router			/rest/blogs/{blog_id} [get]
//	@Param			blog_id	path		string	true	"blog ID"
//	@Success		200		{object}	model.APIBlog
func (h *blogGetHandler) Factory() gimlet.RouteHandler {
	return &blogGetHandler{sc: h.sc}
}

func (h *blogGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.blogID = gimlet.GetVars(r)["blog_id"]
	return nil
}

func (h *blogGetHandler) Run(ctx context.Context) gimlet.Responder {
	b, err := h.sc.FindBlogById(ctx, h.blogID)
	if err != nil {
		return errorResponder(err, "finding blog")
	}
	if b == nil {
		return gimlet.NewJSONResponse(jsonNull)
	}

	out := &model.APIBlog{}
	out.BuildFromService(*b)
	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// POST /rest/blogs

type blogCreateHandler struct {
	blog model.APIBlog
	sc   data.Connector
}

func makeCreateBlog(sc data.Connector) gimlet.RouteHandler {
	return &blogCreateHandler{sc: sc}
}

// Factory creates an instance of the handler.
//
//	@Summary		Create a blog
//	@Description	Stores the blog and returns it with its id and defaults.
//	@Tags			blogs
//	@Router			/rest/blogs [post]
//	@Param			{object}	body	model.APIBlog	true	"blog to create"
//	@Success		200			{object}	model.APIBlog
func (h *blogCreateHandler) Factory() gimlet.RouteHandler {
	return &blogCreateHandler{sc: h.sc}
}

func (h *blogCreateHandler) Parse(ctx context.Context, r *http.Request) error {
	in, err := readJSONObject(r)
	if err != nil {
		return err
	}

	h.blog = model.APIBlog{}
	return badRequest(h.blog.Decode(in))
}

func (h *blogCreateHandler) Run(ctx context.Context) gimlet.Responder {
	b := h.blog.ToService()
	if err := h.sc.CreateBlog(ctx, &b); err != nil {
		return errorResponder(err, "creating blog")
	}

	out := &model.APIBlog{}
	out.BuildFromService(b)
	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /rest/blogs/{blog_id}

type blogUpdateHandler struct {
	blogID string
	blog   model.APIBlog
	sc     data.Connector
}

func makeUpdateBlog(sc data.Connector) gimlet.RouteHandler {
	return &blogUpdateHandler{sc: sc}
}

// Factory creates an instance of the handler.
//
//	@Summary		Update a blog
//	@Description	Overwrites the fields present in the body. Comments, when present, replace the existing list.
//	@Tags			blogs
//	@Router			/rest/blogs/{blog_id} [put]
//	@Param			blog_id		path		string			true	"blog ID"
//	@Param			{object}	body		model.APIBlog	true	"fields to set"
//	@Success		200			{object}	model.APIBlog
func (h *blogUpdateHandler) Factory() gimlet.RouteHandler {
	return &blogUpdateHandler{sc: h.sc}
}

func (h *blogUpdateHandler) Parse(ctx context.Context, r *http.Request) error {
	h.blogID = gimlet.GetVars(r)["blog_id"]

	in, err := readJSONObject(r)
	if err != nil {
		return err
	}

	h.blog = model.APIBlog{}
	return badRequest(h.blog.Decode(in))
}

func (h *blogUpdateHandler) Run(ctx context.Context) gimlet.Responder {
	b, err := h.sc.UpdateBlog(ctx, h.blogID, h.blog.ToUpdate())
	if err != nil {
		return errorResponder(err, "updating blog")
	}
	if b == nil {
		return gimlet.NewJSONResponse(jsonNull)
	}

	out := &model.APIBlog{}
	out.BuildFromService(*b)
	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /rest/blogs/{blog_id}

type blogDeleteHandler struct {
	blogID string
	sc     data.Connector
}

func makeDeleteBlog(sc data.Connector) gimlet.RouteHandler {
	return &blogDeleteHandler{sc: sc}
}

// Factory creates an instance of the handler.
//
//	@Summary		Delete a blog
//	@Description	Deletes the blog. Deleting a blog that does not exist also succeeds.
//	@Tags			blogs
//	@Router			/rest/blogs/{blog_id} [delete]
//	@Param			blog_id	path	string	true	"blog ID"
//	@Success		200
func (h *blogDeleteHandler) Factory() gimlet.RouteHandler {
	return &blogDeleteHandler{sc: h.sc}
}

func (h *blogDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.blogID = gimlet.GetVars(r)["blog_id"]
	return nil
}

func (h *blogDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	if err := h.sc.DeleteBlog(ctx, h.blogID); err != nil {
		return errorResponder(err, "deleting blog")
	}

	return gimlet.NewJSONResponse(struct{}{})
}
