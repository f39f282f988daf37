package util

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ReadFromYAMLFile reads the named file and unmarshals its contents into
// data. Keys that do not correspond to a field in data are rejected so
// that misspelled settings surface instead of silently reverting to
// defaults.
func ReadFromYAMLFile(fn string, data interface{}) error {
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return errors.Errorf("file '%s' does not exist", fn)
	}

	bytes, err := os.ReadFile(fn)
	if err != nil {
		return errors.Wrapf(err, "reading file '%s'", fn)
	}

	return errors.Wrapf(yaml.UnmarshalStrict(bytes, data), "parsing yaml from '%s'", fn)
}
