// Package remotejson provides a source that fetches colours from a remote
// JSON document, optionally narrowed with a dotted path query.
package remotejson

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
	httputil "github.com/jmylchreest/bstheme/internal/util/http"
)

// Source fetches a JSON document and collects every hex colour in it.
type Source struct {
	url     string
	query   string // dotted path, e.g. $.colors.brand
	timeout time.Duration
}

// New creates a new remote-json source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "remote-json"
}

// Description returns the source description.
func (s *Source) Description() string {
	return "Fetch hex colours from a remote JSON document with an optional path query"
}

// RegisterFlags registers source-specific flags.
func (s *Source) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&s.url, "remote-json.url", "", "URL to fetch JSON from (required)")
	flags.StringVar(&s.query, "remote-json.query", "", "Path to the colours (e.g. '$.colors', optional)")
	flags.DurationVar(&s.timeout, "remote-json.timeout", 0, "HTTP timeout (default from config)")
}

// Validate checks that a usable URL was given.
func (s *Source) Validate() error {
	if s.url == "" {
		return fmt.Errorf("--remote-json.url is required")
	}
	if !httputil.IsURL(s.url) {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

// Candidates fetches the document and returns its colours in traversal order.
func (s *Source) Candidates(ctx context.Context, opts source.Options) ([]string, error) {
	logger := opts.Log()
	timeout := s.timeout
	if timeout == 0 {
		timeout = opts.HTTPTimeout
	}

	logger.Info("fetching JSON palette", "url", s.url)
	content, err := httputil.Fetch(ctx, s.url, httputil.FetchOptions{
		Timeout: timeout,
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch palette: %w", err)
	}
	logger.Debug("fetched JSON", "bytes", len(content))

	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if s.query != "" {
		logger.Debug("applying query", "query", s.query)
		data, err = applyQuery(data, s.query)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
	}

	var found []string
	extractColours(data, &found)
	return palette.Normalise(dedupe(found))
}

// applyQuery walks a simplified JSONPath: $.path.to.field or path.to.field.
// Numeric segments index into arrays.
func applyQuery(data any, query string) (any, error) {
	query = strings.TrimPrefix(query, "$.")
	query = strings.TrimPrefix(query, "$")

	current := data
	for _, segment := range strings.Split(query, ".") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		switch v := current.(type) {
		case map[string]any:
			val, ok := v[segment]
			if !ok {
				return nil, fmt.Errorf("path not found: %s", segment)
			}
			current = val
		case []any:
			var idx int
			if _, err := fmt.Sscanf(segment, "%d", &idx); err != nil || idx < 0 || idx >= len(v) {
				return nil, fmt.Errorf("invalid array index '%s'", segment)
			}
			current = v[idx]
		default:
			return nil, fmt.Errorf("cannot navigate into %T at segment '%s'", current, segment)
		}
	}
	return current, nil
}

// extractColours appends hex strings found in data. Arrays keep their order,
// object keys are visited sorted, and {"hex": "..."} objects count as one colour.
func extractColours(data any, found *[]string) {
	switch v := data.(type) {
	case map[string]any:
		if hex, ok := v["hex"].(string); ok && isHex(hex) {
			*found = append(*found, hex)
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			extractColours(v[k], found)
		}
	case []any:
		for _, item := range v {
			extractColours(item, found)
		}
	case string:
		if isHex(v) {
			*found = append(*found, v)
		}
	}
}

func isHex(s string) bool {
	return colour.IsValidHex(strings.TrimSpace(s))
}

func dedupe(hexes []string) []string {
	seen := make(map[string]bool, len(hexes))
	out := make([]string, 0, len(hexes))
	for _, h := range hexes {
		c, _ := colour.Canonical(strings.TrimSpace(h))
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
