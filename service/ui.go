package service

import (
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp"
)

// UIServer renders the html pages of the service.
type UIServer struct {
	render gimlet.Renderer
	title  string
}

func NewUIServer(settings *restapp.Settings) *UIServer {
	return &UIServer{
		render: gimlet.NewHTMLRenderer(gimlet.RendererOptions{
			Directory:    settings.UI.Templates,
			DisableCache: !settings.UI.CacheTemplates,
		}),
		title: restapp.AppName,
	}
}

// AttachRoutes registers the pages on the application.
func (uis *UIServer) AttachRoutes(app *gimlet.APIApp) {
	app.AddRoute("/").Get().Handler(uis.index)
}

func (uis *UIServer) index(w http.ResponseWriter, r *http.Request) {
	uis.render.WriteResponse(w, http.StatusOK, struct {
		Title string
	}{uis.title}, "base", "index.html")
}
