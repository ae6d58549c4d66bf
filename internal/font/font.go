// Package font holds the catalog of fonts a theme can use and builds the
// Google Fonts links that load them.
package font

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SystemName is the catalog name of the default system font stack, which needs
// no web font download.
const SystemName = "System UI (Default)"

const googleFontsURL = "https://fonts.googleapis.com/css2?family=%s:wght@300;400;500;700&display=swap"

// Font is a named CSS font-family stack.
type Font struct {
	Name   string `json:"name" yaml:"name"`
	Family string `json:"family" yaml:"family"`
}

var catalog = []Font{
	{Name: SystemName, Family: `system-ui, -apple-system, "Segoe UI", Roboto, "Helvetica Neue", "Noto Sans", "Liberation Sans", Arial, sans-serif`},
	{Name: "Roboto", Family: `"Roboto", sans-serif`},
	{Name: "Open Sans", Family: `"Open Sans", sans-serif`},
	{Name: "Lato", Family: `"Lato", sans-serif`},
	{Name: "Montserrat", Family: `"Montserrat", sans-serif`},
	{Name: "Poppins", Family: `"Poppins", sans-serif`},
	{Name: "Merriweather", Family: `"Merriweather", serif`},
	{Name: "Playfair Display", Family: `"Playfair Display", serif`},
	{Name: "Space Mono", Family: `"Space Mono", monospace`},
}

// Default returns the system font stack.
func Default() Font {
	return catalog[0]
}

// All returns a copy of the catalog in display order.
func All() []Font {
	out := make([]Font, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the catalog names in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.Name
	}
	return names
}

// ByName returns the catalog font whose name matches exactly, ignoring case.
func ByName(name string) (Font, bool) {
	for _, f := range catalog {
		if strings.EqualFold(f.Name, strings.TrimSpace(name)) {
			return f, true
		}
	}
	return Font{}, false
}

// Lookup finds a font by name. An exact case-insensitive match wins;
// otherwise the best fuzzy match is used, so "playfair" finds
// "Playfair Display".
func Lookup(name string) (Font, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return Font{}, fmt.Errorf("font name cannot be empty")
	}

	if f, ok := ByName(query); ok {
		return f, nil
	}

	matches := fuzzy.Find(query, Names())
	if len(matches) == 0 {
		return Font{}, fmt.Errorf("unknown font %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return catalog[matches[0].Index], nil
}

// IsSystem reports whether f is the system font stack.
func (f Font) IsSystem() bool {
	return f.Name == SystemName
}

// StylesheetURL returns the Google Fonts CSS URL that loads f.
func (f Font) StylesheetURL() string {
	return fmt.Sprintf(googleFontsURL, strings.Join(strings.Fields(f.Name), "+"))
}

// LinkTag returns the HTML <link> element that loads f, or "" for the system
// font.
func (f Font) LinkTag() string {
	if f.IsSystem() {
		return ""
	}
	return fmt.Sprintf(`<link href="%s" rel="stylesheet">`, f.StylesheetURL())
}
