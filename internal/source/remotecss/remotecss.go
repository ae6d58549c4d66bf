// Package remotecss provides a source that scrapes colours from a remote
// stylesheet.
package remotecss

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
	httputil "github.com/jmylchreest/bstheme/internal/util/http"
)

var (
	// Custom properties and the usual colour-bearing properties, in one pass so
	// document order survives.
	declRegex = regexp.MustCompile(`(--[a-zA-Z0-9_-]+|color|background-color|background|border-color|fill|stroke)\s*:\s*([^;}]+)`)

	hexRegex   = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	rgbRegex   = regexp.MustCompile(`rgba?\s*\(\s*([0-9.]+)\s*,?\s*([0-9.]+)\s*,?\s*([0-9.]+)`)
	// hsl saturation and lightness are on a 0..100 scale with or without %.
	hslRegex   = regexp.MustCompile(`hsla?\s*\(\s*([0-9.]+)(?:deg)?\s*,?\s*([0-9.]+)%?\s*,?\s*([0-9.]+)%?`)
	oklchRegex = regexp.MustCompile(`oklch\s*\(\s*([0-9.]+)(%?)\s+([0-9.]+)\s+([0-9.]+)`)
	oklabRegex = regexp.MustCompile(`oklab\s*\(\s*([0-9.]+)(%?)\s+([0-9.-]+)\s+([0-9.-]+)`)
)

// Source fetches a stylesheet and collects its colour declarations.
type Source struct {
	url     string
	timeout time.Duration
}

// New creates a new remote-css source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "remote-css"
}

// Description returns the source description.
func (s *Source) Description() string {
	return "Extract colours from a remote CSS file (hex, rgb, hsl, oklch, oklab)"
}

// RegisterFlags registers source-specific flags.
func (s *Source) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&s.url, "remote-css.url", "", "URL to fetch CSS from (required)")
	flags.DurationVar(&s.timeout, "remote-css.timeout", 0, "HTTP timeout (default from config)")
}

// Validate checks that a usable URL was given.
func (s *Source) Validate() error {
	if s.url == "" {
		return fmt.Errorf("--remote-css.url is required")
	}
	if !httputil.IsURL(s.url) {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

// Candidates fetches the stylesheet and returns its colours in document order.
func (s *Source) Candidates(ctx context.Context, opts source.Options) ([]string, error) {
	logger := opts.Log()
	timeout := s.timeout
	if timeout == 0 {
		timeout = opts.HTTPTimeout
	}

	logger.Info("fetching stylesheet", "url", s.url)
	content, err := httputil.Fetch(ctx, s.url, httputil.FetchOptions{
		Timeout: timeout,
		Headers: map[string]string{"Accept": "text/css"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stylesheet: %w", err)
	}

	found := ParseCSS(string(content))
	logger.Debug("parsed stylesheet", "bytes", len(content), "colours", len(found))
	return palette.Normalise(found)
}

// ParseCSS returns the distinct colours declared in content, first
// occurrence first.
func ParseCSS(content string) []string {
	seen := make(map[string]bool)
	var colours []string
	for _, match := range declRegex.FindAllStringSubmatch(content, -1) {
		hex := extractColour(strings.TrimSpace(match[2]))
		if hex == "" || seen[hex] {
			continue
		}
		seen[hex] = true
		colours = append(colours, hex)
	}
	return colours
}

// extractColour converts the first colour in a declaration value to #rrggbb.
func extractColour(value string) string {
	if m := hexRegex.FindString(value); m != "" {
		hex, _ := colour.Canonical(m)
		return hex
	}
	if m := rgbRegex.FindStringSubmatch(value); m != nil {
		return colorful.Color{R: num(m[1]) / 255, G: num(m[2]) / 255, B: num(m[3]) / 255}.Clamped().Hex()
	}
	if m := hslRegex.FindStringSubmatch(value); m != nil {
		return colorful.Hsl(num(m[1]), num(m[2])/100, num(m[3])/100).Clamped().Hex()
	}
	if m := oklchRegex.FindStringSubmatch(value); m != nil {
		return colorful.OkLch(lightness(m[1], m[2]), num(m[3]), num(m[4])).Clamped().Hex()
	}
	if m := oklabRegex.FindStringSubmatch(value); m != nil {
		return colorful.OkLab(lightness(m[1], m[2]), num(m[3]), num(m[4])).Clamped().Hex()
	}
	return ""
}

// num parses a regex-matched number; the patterns only admit valid floats.
func num(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64) //nolint:errcheck
	return v
}

func lightness(value, percent string) float64 {
	if percent == "%" {
		return num(value) / 100
	}
	return num(value)
}
