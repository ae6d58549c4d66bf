// Package source defines producers of import candidates: anything that can
// turn an external input into an ordered list of hex colours for the
// classifier.
package source

import (
	"context"
	"io"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
)

// Options carries shared settings into Candidates.
type Options struct {
	// Logger receives progress messages. Nil discards them.
	Logger hclog.Logger

	// HTTPTimeout bounds remote requests. Zero uses the fetcher default.
	HTTPTimeout time.Duration

	// ImageColours is the default cluster count for image extraction.
	ImageColours int

	// GenAIModel is the default model for the prompt source.
	GenAIModel string

	// Stdin is read when a source is pointed at "-".
	Stdin io.Reader
}

// Log returns the configured logger or a null logger.
func (o Options) Log() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// Input returns the configured stdin or os.Stdin.
func (o Options) Input() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

// Source produces candidate colours for the import classifier.
type Source interface {
	// Name returns the source name used with --source (e.g., "text", "image").
	Name() string

	// Description returns a human-readable description of the source.
	Description() string

	// RegisterFlags registers source-specific flags, prefixed with the source name.
	RegisterFlags(flags *pflag.FlagSet)

	// Validate checks that the source has the inputs it needs.
	Validate() error

	// Candidates returns canonical #rrggbb colours, most significant first.
	Candidates(ctx context.Context, opts Options) ([]string, error)
}

// Registry holds the available sources.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source to the registry.
func (r *Registry) Register(s Source) {
	r.sources[s.Name()] = s
}

// Get retrieves a source by name.
func (r *Registry) Get(name string) (Source, bool) {
	s, ok := r.sources[name]
	return s, ok
}

// List returns the registered source names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns a copy of the registered sources.
func (r *Registry) All() map[string]Source {
	sources := make(map[string]Source, len(r.sources))
	for name, s := range r.sources {
		sources[name] = s
	}
	return sources
}
