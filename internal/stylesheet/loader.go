package stylesheet

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Loader reads embedded templates, preferring a user copy from
// ~/.config/bstheme/templates/{name}/ when one exists.
type Loader struct {
	name       string
	embedFS    embed.FS
	customBase string
	logger     hclog.Logger
}

// NewLoader creates a loader for the named template set.
func NewLoader(name string, embedFS embed.FS) *Loader {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	return &Loader{
		name:       name,
		embedFS:    embedFS,
		customBase: filepath.Join(home, ".config", "bstheme", "templates"),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the directory searched for template overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was picked.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load returns the template content and whether it came from a custom override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)
	if content, err := os.ReadFile(customPath); err == nil {
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	l.logger.Debug("using embedded template", "name", filename)
	content, err = l.embedFS.ReadFile(filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	return content, false, nil
}

// CustomPath returns the path where an override of filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.name, filename)
}

// Dump writes the embedded template to its override path so it can be edited.
// Existing overrides are kept unless force is set.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	content, err := l.embedFS.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return "", fmt.Errorf("custom template already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(outputPath), err)
	}
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}
	return outputPath, nil
}
