package image

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/source"
)

// writeBands writes a 10x10 PNG: six rows red, three blue, one near-red.
func writeBands(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		c := color.RGBA{R: 255, A: 255}
		switch {
		case y >= 9:
			c = color.RGBA{R: 254, A: 255}
		case y >= 6:
			c = color.RGBA{B: 255, A: 255}
		}
		for x := 0; x < 10; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "bands.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func parse(t *testing.T, args ...string) *Source {
	t.Helper()
	s := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return s
}

func TestCandidates(t *testing.T) {
	s := parse(t, "--image.path="+writeBands(t), "--image.colours=3")
	require.NoError(t, s.Validate())

	got, err := s.Candidates(context.Background(), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"#ff0000", "#0000ff"}, got)
}

func TestCandidatesUsesDefaultCount(t *testing.T) {
	s := parse(t, "--image.path="+writeBands(t))
	require.NoError(t, s.Validate())

	got, err := s.Candidates(context.Background(), source.Options{ImageColours: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCandidatesDeterministic(t *testing.T) {
	path := writeBands(t)
	first, err := parse(t, "--image.path="+path, "--image.colours=2").Candidates(context.Background(), source.Options{})
	require.NoError(t, err)
	second, err := parse(t, "--image.path="+path, "--image.colours=2").Candidates(context.Background(), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	path := writeBands(t)
	assert.Error(t, parse(t).Validate())
	assert.Error(t, parse(t, "--image.path="+filepath.Join(t.TempDir(), "missing.png")).Validate())
	assert.Error(t, parse(t, "--image.path="+path, "--image.colours=65").Validate())
	assert.Error(t, parse(t, "--image.path="+path, "--image.seed-mode=filepath").Validate())
	assert.NoError(t, parse(t, "--image.path="+path, "--image.seed-mode=manual", "--image.seed-value=7").Validate())
}

func TestDistinct(t *testing.T) {
	clusters := []colour.Cluster{
		{Colour: colour.RGB{R: 13, G: 110, B: 253}, Weight: 0.5},
		{Colour: colour.RGB{R: 14, G: 110, B: 252}, Weight: 0.3},
		{Colour: colour.RGB{R: 25, G: 135, B: 84}, Weight: 0.2},
	}
	assert.Equal(t, []string{"#0d6efd", "#198754"}, Distinct(clusters, MinDistance))
	assert.Len(t, Distinct(clusters, 0), 3)
}

func TestCandidatesFromCachedURL(t *testing.T) {
	data, err := os.ReadFile(writeBands(t))
	require.NoError(t, err)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	s := parse(t, "--image.path="+server.URL+"/bands.png", "--image.colours=3", "--image.cache-dir="+cacheDir)
	require.NoError(t, s.Validate())

	got, err := s.Candidates(context.Background(), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"#ff0000", "#0000ff"}, got)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
