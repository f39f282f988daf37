package operations

import (
	"github.com/evergreen-ci/restapp"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
)

// applyLogLevel sets the sender threshold from the settings file. An
// empty level keeps whatever the command line configured.
func applyLogLevel(settings *restapp.Settings) error {
	if settings.LogLevel == "" {
		return nil
	}

	sender := grip.GetSender()
	info := sender.Level()
	info.Threshold = level.FromString(settings.LogLevel)

	return errors.Wrapf(sender.SetLevel(info), "setting log level to '%s'", settings.LogLevel)
}
