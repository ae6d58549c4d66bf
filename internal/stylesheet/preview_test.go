package stylesheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bstheme/internal/font"
	"github.com/jmylchreest/bstheme/internal/palette"
)

func testPreviewer(t *testing.T) (*Previewer, *Loader) {
	t.Helper()
	loader := DefaultLoader().WithCustomBase(t.TempDir()).WithLogger(hclog.NewNullLogger())
	return NewPreviewer(loader), loader
}

func TestPreviewInjectsStylesheet(t *testing.T) {
	pv, _ := testPreviewer(t)
	p := palette.Default().With(palette.RolePrimary, "#123abc")

	lato, err := font.Lookup("Lato")
	require.NoError(t, err)

	doc, err := pv.Preview(p, lato)
	require.NoError(t, err)

	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, Serialize(p, lato.Family))
	assert.Contains(t, doc, lato.LinkTag())
	assert.NotContains(t, doc, fontsPlaceholder)
	assert.NotContains(t, doc, cssPlaceholder)
}

func TestPreviewSystemFontHasNoLink(t *testing.T) {
	pv, _ := testPreviewer(t)

	doc, err := pv.Preview(palette.Default(), font.Default())
	require.NoError(t, err)
	assert.NotContains(t, doc, "fonts.googleapis.com")
	assert.NotContains(t, doc, fontsPlaceholder)
}

func TestPreviewCustomTemplate(t *testing.T) {
	pv, loader := testPreviewer(t)

	custom := "<html><head><!-- FONTS_PLACEHOLDER --><style>/* CSS_VAR_PLACEHOLDER */</style></head></html>"
	path := loader.CustomPath(DashboardTemplate)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	doc, err := pv.Preview(palette.Default(), font.Default())
	require.NoError(t, err)
	assert.Equal(t, "<html><head><style>"+Serialize(palette.Default(), font.Default().Family)+"</style></head></html>", doc)
}

func TestPreviewRejectsTemplateWithoutMarker(t *testing.T) {
	pv, loader := testPreviewer(t)

	path := loader.CustomPath(DashboardTemplate)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	_, err := pv.Preview(palette.Default(), font.Default())
	assert.Error(t, err)
}

func TestLoaderDump(t *testing.T) {
	_, loader := testPreviewer(t)

	path, err := loader.Dump(DashboardTemplate, false)
	require.NoError(t, err)
	assert.Equal(t, loader.CustomPath(DashboardTemplate), path)

	content, fromCustom, err := loader.Load(DashboardTemplate)
	require.NoError(t, err)
	assert.True(t, fromCustom)
	assert.Contains(t, string(content), cssPlaceholder)

	_, err = loader.Dump(DashboardTemplate, false)
	assert.Error(t, err)

	_, err = loader.Dump(DashboardTemplate, true)
	assert.NoError(t, err)

	_, err = loader.Dump("missing.html", true)
	assert.Error(t, err)
}
