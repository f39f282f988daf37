package service

import (
	"net/http"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/restapp"
	"github.com/evergreen-ci/restapp/rest/data"
	"github.com/evergreen-ci/restapp/rest/route"
	"github.com/gorilla/handlers"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/negroni"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// GetServer produces an HTTP server instance for a handler.
func GetServer(addr string, n http.Handler) *http.Server {
	grip.Notice(message.Fields{
		"action":  "starting service",
		"service": addr,
		"build":   restapp.BuildRevision,
		"process": grip.Name(),
	})

	return &http.Server{
		Addr:              addr,
		Handler:           n,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      time.Minute,
	}
}

// GetRouter builds the complete handler for the web service: static
// assets, the index page and the REST routes backed by the environment's
// database.
func GetRouter(env restapp.Environment) (http.Handler, error) {
	if env == nil {
		return nil, errors.New("environment must not be nil")
	}
	settings := env.Settings()
	if settings == nil {
		return nil, errors.New("environment has no settings")
	}

	app := gimlet.NewApp()
	app.AddMiddleware(negroni.NewStatic(http.Dir(settings.UI.Static)))

	uis := NewUIServer(settings)
	uis.AttachRoutes(app)
	route.AttachHandler(app, data.NewDBConnector(env))

	h, err := app.Handler()
	if err != nil {
		return nil, errors.Wrap(err, "resolving application routes")
	}

	return otelhttp.NewHandler(handlers.HTTPMethodOverrideHandler(h), restapp.AppName), nil
}
