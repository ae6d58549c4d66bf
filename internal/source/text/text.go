// Package text provides a source that reads pasted hex codes from a flag,
// a file or stdin.
package text

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
)

// Source reads a comma/newline separated list or a JSON array of hex codes.
type Source struct {
	value string
	file  string
}

// New creates a new text source.
func New() *Source {
	return &Source{}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "text"
}

// Description returns the source description.
func (s *Source) Description() string {
	return "Hex codes as a list or JSON array, from a flag, a file or stdin"
}

// RegisterFlags registers source-specific flags.
func (s *Source) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&s.value, "text.value", "", "Hex codes, e.g. \"#0d6efd, #198754\" or '[\"#0d6efd\"]'")
	flags.StringVar(&s.file, "text.file", "", "File to read hex codes from ('-' for stdin)")
}

// Validate checks that exactly one input was given.
func (s *Source) Validate() error {
	switch {
	case s.value != "" && s.file != "":
		return fmt.Errorf("--text.value and --text.file are mutually exclusive")
	case s.value == "" && s.file == "":
		return fmt.Errorf("one of --text.value or --text.file is required")
	}
	return nil
}

// Candidates parses the input into canonical hex codes.
func (s *Source) Candidates(_ context.Context, opts source.Options) ([]string, error) {
	raw := s.value
	if s.file != "" {
		data, err := s.read(opts)
		if err != nil {
			return nil, err
		}
		raw = string(data)
	}

	hexes, err := palette.ParseImport(raw)
	if err != nil {
		return nil, err
	}
	opts.Log().Debug("parsed text input", "candidates", len(hexes))
	return hexes, nil
}

func (s *Source) read(opts source.Options) ([]byte, error) {
	if s.file == "-" {
		data, err := io.ReadAll(opts.Input())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(s.file) // #nosec G304 - User-specified input file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.file, err)
	}
	return data, nil
}
