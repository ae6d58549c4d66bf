package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bstheme/internal/config"
	"github.com/jmylchreest/bstheme/internal/font"
	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/stylesheet"
	"github.com/jmylchreest/bstheme/internal/theme"
)

// isolate points HOME at a temp dir and clears BSTHEME_* so user settings
// cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{config.EnvFont, config.EnvFormat, config.EnvHTTPTimeout, config.EnvGenAIModel, config.EnvImageColours} {
		t.Setenv(env, "")
	}
	return t.TempDir()
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := run(t, "", args...)
	require.NoError(t, err, stderr)
	return stdout
}

func readTheme(t *testing.T, path string) theme.Document {
	t.Helper()
	doc, err := theme.ReadFile(path)
	require.NoError(t, err)
	return doc
}

func TestInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	mustRun(t, "init", "-t", path)
	assert.Equal(t, theme.Default(), readTheme(t, path))

	_, _, err := run(t, "", "init", "-t", path)
	assert.ErrorContains(t, err, "already exists")
	mustRun(t, "init", "-t", path, "--force")

	out := mustRun(t, "init")
	assert.Contains(t, out, "primary: '#0d6efd'")
}

func TestInitFormat(t *testing.T) {
	dir := isolate(t)

	jsonPath := filepath.Join(dir, "theme.json")
	mustRun(t, "init", "-o", jsonPath)
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))

	bare := filepath.Join(dir, "theme")
	mustRun(t, "init", "-o", bare, "--format", "json")
	doc, err := theme.ReadFileAs(bare, theme.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, theme.Default(), doc)

	_, _, err = run(t, "", "init", "--format", "toml")
	assert.Error(t, err)
}

func TestInitUsesConfiguredFont(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvFont, "roboto")

	out := mustRun(t, "init", "--format", "json")
	var doc theme.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Roboto", doc.Font)
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	dir := isolate(t)
	first := filepath.Join(dir, "a.yaml")
	second := filepath.Join(dir, "b.yaml")

	mustRun(t, "generate", "--seed", "42", "-o", first)
	mustRun(t, "generate", "--seed", "42", "-o", second)

	assert.Equal(t, readTheme(t, first), readTheme(t, second))
	assert.NotEqual(t, palette.Default().Primary, readTheme(t, first).Palette.Primary)
	assert.Equal(t, "#ffffff", readTheme(t, first).Palette.BodyBg)
}

func TestGenerateKeepsLockedRoles(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	mustRun(t, "set", "-t", path, "primary=#3366cc", "danger=#aa0000")
	mustRun(t, "lock", "-t", path, "danger")
	mustRun(t, "generate", "-t", path, "--lock", "primary", "--seed", "7")

	doc := readTheme(t, path)
	assert.Equal(t, "#3366cc", doc.Palette.Primary)
	assert.Equal(t, "#aa0000", doc.Palette.Danger)
	assert.Equal(t, []palette.Role{palette.RolePrimary, palette.RoleDanger}, doc.Locks)
}

func TestImportPositional(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	_, stderr, err := run(t, "", "import", "-t", path,
		"#ff0000, #00ff00", "#ffaa00", "#00aaff", "#8000ff", "#ff00ff")
	require.NoError(t, err)
	assert.Contains(t, stderr, "danger")

	got := readTheme(t, path).Palette
	want := palette.Default()
	want.Danger = "#ff0000"
	want.Success = "#00ff00"
	want.Warning = "#ffaa00"
	want.Info = "#00aaff"
	want.Primary = "#8000ff"
	want.Secondary = "#ff00ff"
	assert.Equal(t, want, got)
}

func TestImportRespectsLocks(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	mustRun(t, "lock", "-t", path, "danger")
	mustRun(t, "import", "-t", path, "#ff0000")

	doc := readTheme(t, path)
	assert.Equal(t, palette.Default().Danger, doc.Palette.Danger)
	assert.Equal(t, "#ff0000", doc.Palette.Primary)
}

func TestImportFromStdin(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	_, stderr, err := run(t, "#0080ff\n", "import", "-t", path, "--text.file", "-")
	require.NoError(t, err, stderr)
	assert.Equal(t, "#0080ff", readTheme(t, path).Palette.Info)
}

func TestImportInvalidLeavesThemeUnchanged(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")
	mustRun(t, "init", "-t", path)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, _, err = run(t, "", "import", "-t", path, "zzz, not-a-colour")
	assert.ErrorContains(t, err, "no valid hex codes found")

	_, _, err = run(t, "", "import", "-t", path, "--text.value", `["#fff", 3]`)
	assert.ErrorContains(t, err, "invalid JSON array")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportSourceErrors(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "import", "--source", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown source")

	_, _, err = run(t, "", "import", "--source", "remote-css", "#fff")
	assert.ErrorContains(t, err, "only accepted by the text source")

	_, _, err = run(t, "", "import", "--source", "remote-json")
	assert.ErrorContains(t, err, "--remote-json.url is required")
}

func TestImportRemoteJSON(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.json")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"brand": {"hex": "#6f42c1"}}`))
	}))
	defer server.Close()

	mustRun(t, "import", "-t", path, "--source", "remote-json", "--remote-json.url", server.URL)
	assert.Equal(t, "#6f42c1", readTheme(t, path).Palette.Primary)
}

func TestSet(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	mustRun(t, "set", "-t", path, "primary=#ABC", "body-bg=f0f0f0")
	doc := readTheme(t, path)
	assert.Equal(t, "#aabbcc", doc.Palette.Primary)
	assert.Equal(t, "#f0f0f0", doc.Palette.BodyBg)

	_, _, err := run(t, "", "set", "-t", path, "primary=#12345")
	assert.Error(t, err)
	_, _, err = run(t, "", "set", "-t", path, "accent=#123456")
	assert.ErrorContains(t, err, "unknown role")
	_, _, err = run(t, "", "set", "-t", path, "primary")
	assert.ErrorContains(t, err, "expected role=#hex")
}

func TestLockUnlockToggle(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	mustRun(t, "lock", "-t", path, "warning", "primary")
	assert.Equal(t, []palette.Role{palette.RolePrimary, palette.RoleWarning}, readTheme(t, path).Locks)

	mustRun(t, "unlock", "-t", path, "warning")
	assert.Equal(t, []palette.Role{palette.RolePrimary}, readTheme(t, path).Locks)

	mustRun(t, "toggle", "-t", path, "primary", "info")
	assert.Equal(t, []palette.Role{palette.RoleInfo}, readTheme(t, path).Locks)

	_, _, err := run(t, "", "lock", "-t", path, "nope")
	assert.Error(t, err)
}

func TestFont(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")

	out := mustRun(t, "font", "-t", path)
	assert.Equal(t, font.SystemName+"\t"+font.Default().Family+"\n", out)

	mustRun(t, "font", "-t", path, "playfair")
	assert.Equal(t, "Playfair Display", readTheme(t, path).Font)

	_, _, err := run(t, "", "font", "-t", path, "comic sans")
	assert.Error(t, err)
}

func TestFonts(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")
	mustRun(t, "font", "-t", path, "Lato")

	out := mustRun(t, "fonts", "-t", path)
	for _, name := range font.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "*  Lato")
}

func TestExport(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")
	mustRun(t, "set", "-t", path, "primary=#6f42c1")
	mustRun(t, "font", "-t", path, "Roboto")

	roboto, ok := font.ByName("Roboto")
	require.True(t, ok)
	want := stylesheet.Serialize(readTheme(t, path).Palette, roboto.Family)

	out := mustRun(t, "export", "-t", path, "-o", "-")
	assert.Equal(t, want, out)
	assert.Contains(t, out, "--bs-primary: #6f42c1;")

	t.Chdir(dir)
	mustRun(t, "export", "-t", path)
	data, err := os.ReadFile(filepath.Join(dir, stylesheet.DefaultFilename))
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestExportClipboard(t *testing.T) {
	isolate(t)

	var copied string
	original := clipboardWriter
	clipboardWriter = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWriter = original })

	out := mustRun(t, "export", "--clipboard")
	assert.Empty(t, out)
	assert.Equal(t, stylesheet.Serialize(palette.Default(), font.Default().Family), copied)
}

func TestPreview(t *testing.T) {
	dir := isolate(t)
	templates := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	mustRun(t, "font", "-t", path, "montserrat")

	out := mustRun(t, "preview", "-t", path, "-o", "-", "--template-dir", templates)
	assert.Contains(t, out, "--bs-primary: #0d6efd;")
	assert.Contains(t, out, "fonts.googleapis.com/css2?family=Montserrat")
	assert.NotContains(t, out, "CSS_VAR_PLACEHOLDER")
}

func TestPreviewDumpTemplate(t *testing.T) {
	isolate(t)
	templates := t.TempDir()

	mustRun(t, "preview", "--dump-template", "--template-dir", templates)
	dumped := filepath.Join(templates, "preview", stylesheet.DashboardTemplate)
	assert.FileExists(t, dumped)

	_, _, err := run(t, "", "preview", "--dump-template", "--template-dir", templates)
	assert.ErrorContains(t, err, "already exists")
	mustRun(t, "preview", "--dump-template", "--force", "--template-dir", templates)

	custom := "<style>/* CSS_VAR_PLACEHOLDER */</style>"
	require.NoError(t, os.WriteFile(dumped, []byte(custom), 0644))
	out := mustRun(t, "preview", "-o", "-", "--template-dir", templates)
	assert.True(t, strings.HasPrefix(out, "<style>"))
	assert.Contains(t, out, "--bs-primary: #0d6efd;")
}

func TestShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")
	mustRun(t, "lock", "-t", path, "primary")

	out := mustRun(t, "show", "-t", path)
	assert.Contains(t, out, "primary    #0d6efd  13, 110, 253")
	assert.Contains(t, out, "hsl(216, 98%, 52%)")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "Font: "+font.SystemName)

	out = mustRun(t, "show", "-t", path, "--format", "json")
	var doc theme.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []palette.Role{palette.RolePrimary}, doc.Locks)
}

func TestFormatOnlySelectsOutput(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")
	mustRun(t, "set", "-t", path, "primary=#3366cc")

	out := mustRun(t, "show", "-t", path, "--format", "json")
	var doc theme.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "#3366cc", doc.Palette.Primary)

	target := filepath.Join(dir, "out.json")
	mustRun(t, "set", "-t", path, "-o", target, "--format", "yaml", "danger=#aa0000")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "danger: '#aa0000'")
	assert.Contains(t, string(data), "primary: '#3366cc'")

	out = mustRun(t, "lock", "-t", path, "--format", "json", "-o", "-", "primary")
	doc = theme.Document{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []palette.Role{palette.RolePrimary}, doc.Locks)
	assert.Empty(t, readTheme(t, path).Locks)
}

func TestThemeFromStdin(t *testing.T) {
	isolate(t)

	stdout, stderr, err := run(t, "palette:\n  primary: '#111111'\n", "show", "-t", "-", "--format", "yaml")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "primary: '#111111'")
	assert.Contains(t, stdout, "secondary: '#6c757d'")
}

func TestInvalidThemeIsRejected(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette:\n  primary: blue\n"), 0644))

	_, _, err := run(t, "", "show", "-t", path)
	assert.ErrorContains(t, err, "invalid theme")
}

func TestVersion(t *testing.T) {
	isolate(t)

	assert.True(t, strings.HasPrefix(mustRun(t, "version"), "bstheme "))

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "version", "--format", "json")), &info))
	assert.Contains(t, info, "go_version")
}
