package restapp

import (
	"github.com/evergreen-ci/restapp/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
)

// Settings contains all configuration for the service. Settings are read
// from an optional yaml file; command line flags and environment
// variables are layered on top by the operations package before
// Validate is called.
type Settings struct {
	// Environment names the deployment, e.g. "development" or "test",
	// and selects the default database name.
	Environment string     `yaml:"environment" json:"environment"`
	Port        int        `yaml:"port" json:"port"`
	Home        string     `yaml:"home" json:"home"`
	// LogLevel, when set, replaces the threshold given on the command
	// line once the settings are loaded.
	LogLevel    string     `yaml:"log_level" json:"log_level"`
	Database    DBSettings `yaml:"database" json:"database"`
	UI          UIConfig   `yaml:"ui" json:"ui"`
}

// NewSettings builds settings from the yaml file at path. It does not
// validate them.
func NewSettings(path string) (*Settings, error) {
	settings := &Settings{}
	if err := util.ReadFromYAMLFile(path, settings); err != nil {
		return nil, errors.Wrap(err, "reading settings file")
	}

	return settings, nil
}

// DefaultSettings returns settings with nothing configured; Validate
// fills in every default.
func DefaultSettings() *Settings { return &Settings{} }

// Validate fills in defaults for every section and reports all invalid
// values at once.
func (s *Settings) Validate() error {
	catcher := grip.NewBasicCatcher()

	if s.Environment == "" {
		s.Environment = DefaultEnvironmentName
	}
	if s.Port == 0 {
		s.Port = DefaultListenPort
	}
	if s.Home == "" {
		s.Home = FindHome()
	}

	catcher.ErrorfWhen(s.LogLevel != "" && level.FromString(s.LogLevel) == level.Invalid, "log level '%s' is not valid", s.LogLevel)
	catcher.ErrorfWhen(s.Port < 0 || s.Port > 65535, "listen port %d is out of range", s.Port)
	catcher.Wrapf(s.Database.ValidateAndDefault(s.Environment), "validating section '%s'", s.Database.SectionId())
	catcher.Wrapf(s.UI.ValidateAndDefault(s.Home), "validating section '%s'", s.UI.SectionId())

	return catcher.Resolve()
}
