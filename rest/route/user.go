package route

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp/model/user"
	"github.com/evergreen-ci/restapp/rest/data"
	"github.com/evergreen-ci/restapp/rest/model"
)

////////////////////////////////////////////////////////////////////////
//
// GET /rest/users

type usersGetHandler struct {
	opts user.SearchOptions
	sc   data.Connector
}

func makeFetchUsers(sc data.Connector) gimlet.RouteHandler {
	return &usersGetHandler{sc: sc}
}

// Factory creates an instance of the handler.
//
//	@Summary		List users
//	@Description	Returns users in store order. Text filters match case-insensitive substrings.
//	@Tags			users
//	@Router			/rest/users [get]
//	@Param			skip		query	int		false	"Number of users to skip"
//	@Param			limit		query	int		false	"Maximum number of users to return; 0 returns all"
//	@Param			username	query	string	false	"Filter on the username"
//	@Param			email		query	string	false	"Filter on the email address"
//	@Param			search		query	string	false	"Filter on any of username, first name, last name or email"
//	@Success		200			{array}	model.APIUser
func (h *usersGetHandler) Factory() gimlet.RouteHandler {
	return &usersGetHandler{sc: h.sc}
}

func (h *usersGetHandler) Parse(ctx context.Context, r *http.Request) error {
	vals := r.URL.Query()
	h.opts = user.SearchOptions{
		Username: vals.Get("username"),
		Email:    vals.Get("email"),
		Search:   vals.Get("search"),
		Skip:     getNonNegativeInt(vals, "skip"),
		Limit:    getNonNegativeInt(vals, "limit"),
	}

	return nil
}

func (h *usersGetHandler) Run(ctx context.Context) gimlet.Responder {
	users, err := h.sc.FindUsers(ctx, h.opts)
	if err != nil {
		return errorResponder(err, "finding users")
	}

	out := make([]model.APIUser, 0, len(users))
	for _, u := range users {
		apiUser := model.APIUser{}
		apiUser.BuildFromService(u)
		out = append(out, apiUser)
	}

	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// GET /rest/users/{user_id}

type userGetHandler struct {
	userID string
	sc     data.Connector
}

func makeFetchUser(sc data.Connector) gimlet.RouteHandler {
	return &userGetHandler{sc: sc}
}

func (h *userGetHandler) Factory() gimlet.RouteHandler {
	return &userGetHandler{sc: h.sc}
}

func (h *userGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]
	return nil
}

func (h *userGetHandler) Run(ctx context.Context) gimlet.Responder {
	u, err := h.sc.FindUserById(ctx, h.userID)
	if err != nil {
		return errorResponder(err, "finding user")
	}
	if u == nil {
		return gimlet.NewJSONResponse(jsonNull)
	}

	out := &model.APIUser{}
	out.BuildFromService(*u)
	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// POST /rest/users

type userCreateHandler struct {
	user model.APIUser
	sc   data.Connector
}

func makeCreateUser(sc data.Connector) gimlet.RouteHandler {
	return &userCreateHandler{sc: sc}
}

func (h *userCreateHandler) Factory() gimlet.RouteHandler {
	return &userCreateHandler{sc: h.sc}
}

func (h *userCreateHandler) Parse(ctx context.Context, r *http.Request) error {
	in, err := readJSONObject(r)
	if err != nil {
		return err
	}

	h.user = model.APIUser{}
	return badRequest(h.user.Decode(in))
}

func (h *userCreateHandler) Run(ctx context.Context) gimlet.Responder {
	u := h.user.ToService()
	if err := h.sc.CreateUser(ctx, &u); err != nil {
		return errorResponder(err, "creating user")
	}

	out := &model.APIUser{}
	out.BuildFromService(u)
	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /rest/users/{user_id}

type userUpdateHandler struct {
	userID string
	user   model.APIUser
	sc     data.Connector
}

func makeUpdateUser(sc data.Connector) gimlet.RouteHandler {
	return &userUpdateHandler{sc: sc}
}

func (h *userUpdateHandler) Factory() gimlet.RouteHandler {
	return &userUpdateHandler{sc: h.sc}
}

func (h *userUpdateHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]

	in, err := readJSONObject(r)
	if err != nil {
		return err
	}

	h.user = model.APIUser{}
	return badRequest(h.user.Decode(in))
}

func (h *userUpdateHandler) Run(ctx context.Context) gimlet.Responder {
	u, err := h.sc.UpdateUser(ctx, h.userID, h.user.ToUpdate())
	if err != nil {
		return errorResponder(err, "updating user")
	}
	if u == nil {
		return gimlet.NewJSONResponse(jsonNull)
	}

	out := &model.APIUser{}
	out.BuildFromService(*u)
	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /rest/users/{user_id}

type userDeleteHandler struct {
	userID string
	sc     data.Connector
}

func makeDeleteUser(sc data.Connector) gimlet.RouteHandler {
	return &userDeleteHandler{sc: sc}
}

func (h *userDeleteHandler) Factory() gimlet.RouteHandler {
	return &userDeleteHandler{sc: h.sc}
}

func (h *userDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]
	return nil
}

func (h *userDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	if err := h.sc.DeleteUser(ctx, h.userID); err != nil {
		return errorResponder(err, "deleting user")
	}

	return gimlet.NewJSONResponse(struct{}{})
}
