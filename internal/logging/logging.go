// Package logging configures the hclog logger shared by bstheme commands.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Options selects the verbosity of a logger.
type Options struct {
	Verbose bool
	Quiet   bool
	Output  io.Writer
}

// Level maps the verbosity flags to a log level. Quiet wins over verbose.
func (o Options) Level() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Error
	case o.Verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New creates a named logger writing to opts.Output.
func New(name string, opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = io.Discard
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: output,
		Level:  opts.Level(),
	})
}
