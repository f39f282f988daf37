package operations

import (
	"os"
	"strings"

	"github.com/evergreen-ci/restapp"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const (
	confFlagName       = "conf"
	envFlagName        = "env"
	portFlagName       = "port"
	homeFlagName       = "home"
	dbHostFlagName     = "db-host"
	dbPortFlagName     = "db-port"
	dbNameFlagName     = "db-name"
	dbUserFlagName     = "db-user"
	dbPasswordFlagName = "db-password"
)

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func serviceConfigFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  joinFlagNames(confFlagName, "config", "c"),
			Usage: "path to an optional yaml settings file",
		},
		cli.StringFlag{
			Name:   envFlagName,
			Usage:  "name of the deployment environment",
			EnvVar: "RESTAPP_ENV",
		},
		cli.IntFlag{
			Name:   portFlagName,
			Usage:  "port to listen on",
			EnvVar: "PORT",
		},
		cli.StringFlag{
			Name:   homeFlagName,
			Usage:  "directory holding the templates and public assets",
			EnvVar: restapp.HomeEnvVar,
		},
		cli.StringFlag{
			Name:   dbHostFlagName,
			Usage:  "database hostname",
			EnvVar: "MONGO_HOSTNAME",
		},
		cli.IntFlag{
			Name:   dbPortFlagName,
			Usage:  "database port",
			EnvVar: "MONGO_PORT",
		},
		cli.StringFlag{
			Name:   dbNameFlagName,
			Usage:  "database name; defaults to restapp_<env>",
			EnvVar: "MONGO_DB",
		},
		cli.StringFlag{
			Name:   dbUserFlagName,
			Usage:  "database username",
			EnvVar: "MONGO_USERNAME",
		},
		cli.StringFlag{
			Name:   dbPasswordFlagName,
			Usage:  "database password",
			EnvVar: "MONGO_PASSWORD",
		},
	)
}

// requireFileExists checks that the named flag, when given, points at a
// file that exists.
func requireFileExists(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.Errorf("configuration file '%s' does not exist", path)
		}
		return nil
	}
}

func mergeBeforeFuncs(ops ...cli.BeforeFunc) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}

// settingsFromFlags reads the settings file, if one is named, and
// overlays every flag set on the command line or through its
// environment variable. The result is validated.
func settingsFromFlags(c *cli.Context) (*restapp.Settings, error) {
	settings := restapp.DefaultSettings()
	if path := c.String(confFlagName); path != "" {
		var err error
		settings, err = restapp.NewSettings(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if c.IsSet(envFlagName) {
		settings.Environment = c.String(envFlagName)
	}
	if c.IsSet(portFlagName) {
		settings.Port = c.Int(portFlagName)
	}
	if c.IsSet(homeFlagName) {
		settings.Home = c.String(homeFlagName)
	}
	if c.IsSet(dbHostFlagName) {
		settings.Database.Hostname = c.String(dbHostFlagName)
	}
	if c.IsSet(dbPortFlagName) {
		settings.Database.Port = c.Int(dbPortFlagName)
	}
	if c.IsSet(dbNameFlagName) {
		settings.Database.DB = c.String(dbNameFlagName)
	}
	if c.IsSet(dbUserFlagName) {
		settings.Database.Username = c.String(dbUserFlagName)
	}
	if c.IsSet(dbPasswordFlagName) {
		settings.Database.Password = c.String(dbPasswordFlagName)
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	return settings, nil
}
