package remotecss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bstheme/internal/source"
)

const sampleCSS = `
:root {
  --brand: #0D6EFD;
  --accent: rgb(214, 51, 132);
  --spacing: 4px;
}
.btn { color: hsl(0, 100%, 50%); background: #fff; border-color: #0d6efd; }
.icon { fill: oklab(0 0 0); }
`

func TestExtractColour(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"#ABC", "#aabbcc"},
		{"1px solid #198754", "#198754"},
		{"rgb(13, 110, 253)", "#0d6efd"},
		{"rgba(255 255 255 / 0.5)", "#ffffff"},
		{"hsl(120, 100%, 25%)", "#008000"},
		{"hsl(240deg 100% 50%)", "#0000ff"},
		{"hsl(200, 1%, 50%)", "#7e8081"},
		{"hsl(0 50 50)", "#bf4040"},
		{"hsla(0, 0%, 100%, 0.5)", "#ffffff"},
		{"oklab(0 0 0)", "#000000"},
		{"oklch(100% 0 0)", "#ffffff"},
		{"4px", ""},
		{"inherit", ""},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, extractColour(tt.value))
		})
	}
}

func TestParseCSS(t *testing.T) {
	assert.Equal(t, []string{"#0d6efd", "#d63384", "#ff0000", "#ffffff", "#000000"}, ParseCSS(sampleCSS))
	assert.Empty(t, ParseCSS("body { margin: 0; }"))
}

func TestCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte(sampleCSS))
	}))
	defer server.Close()

	s := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--remote-css.url=" + server.URL + "/theme.css"}))
	require.NoError(t, s.Validate())

	got, err := s.Candidates(context.Background(), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"#0d6efd", "#d63384", "#ff0000", "#ffffff", "#000000"}, got)
}

func TestValidate(t *testing.T) {
	s := New()
	assert.Error(t, s.Validate())
	s.url = "file:///tmp/theme.css"
	assert.Error(t, s.Validate())
}
