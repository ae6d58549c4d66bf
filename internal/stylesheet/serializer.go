// Package stylesheet renders a palette as a Bootstrap 5.3 CSS variable sheet
// and as the mock dashboard used to preview it.
package stylesheet

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/palette"
)

// DefaultFilename is the name the stylesheet is exported under.
const DefaultFilename = "bootstrap-theme.css"

const themeTemplate = "bootstrap-theme.css.tmpl"

//go:embed *.tmpl *.html
var templates embed.FS

var themeTmpl = template.Must(
	template.New(themeTemplate).Funcs(templateFuncs()).ParseFS(templates, themeTemplate),
)

// hoverShades are the darkened brand colours used for hover and active states.
type hoverShades struct {
	Primary   string
	Secondary string
	Success   string
	Info      string
	Warning   string
	Danger    string
}

// sheetData holds data for the stylesheet template.
type sheetData struct {
	palette.Palette
	FontFamily string
	Hover      hoverShades
}

// Serialize renders p and fontFamily as a Bootstrap theme stylesheet. The
// output depends only on its arguments.
func Serialize(p palette.Palette, fontFamily string) string {
	p = p.Canonical()
	data := sheetData{
		Palette:    p,
		FontFamily: fontFamily,
		Hover: hoverShades{
			Primary:   hover(p.Primary),
			Secondary: hover(p.Secondary),
			Success:   hover(p.Success),
			Info:      hover(p.Info),
			Warning:   hover(p.Warning),
			Danger:    hover(p.Danger),
		},
	}

	var buf bytes.Buffer
	// The template only reads string fields, so execution cannot fail once parsed.
	if err := themeTmpl.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.String()
}

func hover(hex string) string {
	return colour.Darken(hex, colour.HoverShade)
}

// templateFuncs returns template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rgb": colour.RGBString,
	}
}
