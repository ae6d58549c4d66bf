package remotejson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
)

func serve(t *testing.T, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func parse(t *testing.T, args ...string) *Source {
	t.Helper()
	s := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return s
}

func TestValidate(t *testing.T) {
	assert.Error(t, parse(t).Validate())
	assert.Error(t, parse(t, "--remote-json.url=ftp://example.com/p.json").Validate())
	assert.NoError(t, parse(t, "--remote-json.url=http://example.com/p.json").Validate())
	assert.NoError(t, parse(t, "--remote-json.url=https://example.com/p.json").Validate())
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		query string
		want  []string
	}{
		{
			name: "array keeps order",
			body: `["#DC3545", "#198754", "not a colour", "#0d6efd"]`,
			want: []string{"#dc3545", "#198754", "#0d6efd"},
		},
		{
			name: "object keys sorted",
			body: `{"zeta": "#000000", "alpha": "#ffffff", "mid": {"b": "#222", "a": "#111"}}`,
			want: []string{"#ffffff", "#111111", "#222222", "#000000"},
		},
		{
			name: "hex objects",
			body: `{"base": {"hex": "#1e1e2e", "rgb": {"r": 30}}, "text": {"hex": "#cdd6f4"}}`,
			want: []string{"#1e1e2e", "#cdd6f4"},
		},
		{
			name:  "query narrows",
			body:  `{"meta": {"bg": "#ffffff"}, "colors": {"brand": ["#6f42c1", "#d63384"]}}`,
			query: "$.colors.brand",
			want:  []string{"#6f42c1", "#d63384"},
		},
		{
			name:  "query indexes arrays",
			body:  `{"themes": [{"primary": "#aaaaaa"}, {"primary": "#bbbbbb"}]}`,
			query: "themes.1",
			want:  []string{"#bbbbbb"},
		},
		{
			name: "duplicates dropped",
			body: `["#fff", "#FFFFFF", "#000"]`,
			want: []string{"#ffffff", "#000000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"--remote-json.url=" + serve(t, tt.body)}
			if tt.query != "" {
				args = append(args, "--remote-json.query="+tt.query)
			}
			got, err := parse(t, args...).Candidates(context.Background(), source.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidatesErrors(t *testing.T) {
	ctx := context.Background()

	_, err := parse(t, "--remote-json.url="+serve(t, `{not json`)).Candidates(ctx, source.Options{})
	assert.Error(t, err)

	_, err = parse(t, "--remote-json.url="+serve(t, `{"a": 1}`), "--remote-json.query=b").Candidates(ctx, source.Options{})
	assert.ErrorContains(t, err, "path not found")

	_, err = parse(t, "--remote-json.url="+serve(t, `{"a": "plain"}`)).Candidates(ctx, source.Options{})
	assert.True(t, errors.Is(err, palette.ErrNoValidColors))
}
