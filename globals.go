package restapp

import (
	"os"
)

const (
	// AppName is the name the service reports in logs and on the index page.
	AppName = "restapp"

	DefaultEnvironmentName = "development"
	TestEnvironmentName    = "test"

	DefaultListenPort = 3000

	DefaultDBHostname           = "localhost"
	DefaultDBPort               = 27017
	DefaultDBConnectTimeoutSecs = 10

	DefaultTemplatesDirectory = "templates"
	DefaultStaticDirectory    = "public"

	// HomeEnvVar names the environment variable that points at the directory
	// holding the templates and public assets.
	HomeEnvVar = "RESTAPP_HOME"
)

// BuildRevision is set at link time.
var BuildRevision = ""

// FindHome returns the directory the service should resolve relative
// paths against: RESTAPP_HOME when set and otherwise the working
// directory.
func FindHome() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// DefaultDBName returns the database used for the named environment when
// none is configured explicitly, e.g. "restapp_development".
func DefaultDBName(environment string) string {
	if environment == "" {
		environment = DefaultEnvironmentName
	}
	return AppName + "_" + environment
}
