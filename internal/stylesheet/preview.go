package stylesheet

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/bstheme/internal/font"
	"github.com/jmylchreest/bstheme/internal/palette"
)

// DashboardTemplate is the file name of the preview document, both embedded
// and as a user override.
const DashboardTemplate = "dashboard.html"

const (
	fontsPlaceholder = "<!-- FONTS_PLACEHOLDER -->"
	cssPlaceholder   = "/* CSS_VAR_PLACEHOLDER */"
)

// Previewer renders the mock Bootstrap dashboard for a theme.
type Previewer struct {
	loader *Loader
}

// NewPreviewer creates a Previewer reading the dashboard through loader.
func NewPreviewer(loader *Loader) *Previewer {
	return &Previewer{loader: loader}
}

// DefaultLoader returns the loader for the preview templates.
func DefaultLoader() *Loader {
	return NewLoader("preview", templates)
}

// Preview renders the dashboard with the font link and the serialized palette
// injected.
func (p *Previewer) Preview(pal palette.Palette, f font.Font) (string, error) {
	content, _, err := p.loader.Load(DashboardTemplate)
	if err != nil {
		return "", err
	}

	doc := string(content)
	if !strings.Contains(doc, cssPlaceholder) {
		return "", fmt.Errorf("preview template %s is missing the %s marker", DashboardTemplate, cssPlaceholder)
	}

	doc = strings.Replace(doc, fontsPlaceholder, f.LinkTag(), 1)
	doc = strings.Replace(doc, cssPlaceholder, Serialize(pal, f.Family), 1)
	return doc, nil
}

// Preview renders the dashboard using the default loader.
func Preview(pal palette.Palette, f font.Font) (string, error) {
	return NewPreviewer(DefaultLoader()).Preview(pal, f)
}
