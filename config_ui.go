package restapp

import (
	"path/filepath"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// UIConfig holds the settings for the non-API parts of the web service:
// the index page template and the static assets.
type UIConfig struct {
	Templates      string `yaml:"templates" json:"templates"`
	Static         string `yaml:"static" json:"static"`
	CacheTemplates bool   `yaml:"cache_templates" json:"cache_templates"`
}

func (c *UIConfig) SectionId() string { return "ui" }

// ValidateAndDefault resolves the template and static directories
// against home when they are relative.
func (c *UIConfig) ValidateAndDefault(home string) error {
	catcher := grip.NewSimpleCatcher()

	if c.Templates == "" {
		c.Templates = DefaultTemplatesDirectory
	}
	if c.Static == "" {
		c.Static = DefaultStaticDirectory
	}
	if !filepath.IsAbs(c.Templates) {
		c.Templates = filepath.Join(home, c.Templates)
	}
	if !filepath.IsAbs(c.Static) {
		c.Static = filepath.Join(home, c.Static)
	}

	catcher.NewWhen(filepath.Clean(c.Templates) == filepath.Clean(c.Static), "templates and static assets must live in different directories")

	return errors.Wrap(catcher.Resolve(), "invalid UI settings")
}
