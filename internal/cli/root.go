// Package cli provides the command-line interface for bstheme.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/config"
	"github.com/jmylchreest/bstheme/internal/font"
	"github.com/jmylchreest/bstheme/internal/logging"
	"github.com/jmylchreest/bstheme/internal/source"
	"github.com/jmylchreest/bstheme/internal/source/image"
	"github.com/jmylchreest/bstheme/internal/source/prompt"
	"github.com/jmylchreest/bstheme/internal/source/remotecss"
	"github.com/jmylchreest/bstheme/internal/source/remotejson"
	"github.com/jmylchreest/bstheme/internal/source/text"
	"github.com/jmylchreest/bstheme/internal/theme"
	"github.com/jmylchreest/bstheme/internal/version"
)

// app holds the global flags and the state resolved before each command runs.
type app struct {
	themePath  string
	output     string
	format     string
	configPath string
	verbose    bool
	quiet      bool

	config  *config.Config
	logger  hclog.Logger
	sources *source.Registry
}

// NewRootCmd builds the bstheme command tree. Each call returns an
// independent tree, so tests can execute commands in isolation.
func NewRootCmd() *cobra.Command {
	a := &app{
		sources: defaultSources(),
		logger:  hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "bstheme",
		Short: "A Bootstrap 5 theme generator",
		Long: `bstheme builds Bootstrap 5.3 colour themes.

Generate harmonious palettes from a random base hue, import colours from text,
stylesheets, JSON, images or a prompt, lock the roles you like, and export the
result as a drop-in bootstrap-theme.css.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.themePath, "theme", "t", "", "theme document to read ('-' for stdin, default: built-in defaults)")
	flags.StringVarP(&a.output, "output", "o", "", "output path ('-' for stdout)")
	flags.StringVar(&a.format, "format", "", "output format (json, yaml); input is read by file extension")
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newInitCmd(a),
		newGenerateCmd(a),
		newImportCmd(a),
		newSetCmd(a),
		newLockCmd(a, true),
		newLockCmd(a, false),
		newToggleCmd(a),
		newFontCmd(a),
		newFontsCmd(a),
		newExportCmd(a),
		newPreviewCmd(a),
		newShowCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

func defaultSources() *source.Registry {
	registry := source.NewRegistry()
	registry.Register(text.New())
	registry.Register(remotejson.New())
	registry.Register(remotecss.New())
	registry.Register(image.New())
	registry.Register(prompt.New())
	return registry
}

// setup resolves configuration and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = logging.New("bstheme", logging.Options{
		Verbose: a.verbose,
		Quiet:   a.quiet,
		Output:  cmd.ErrOrStderr(),
	})

	path, required := a.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}

	cfg, err := config.NewBuilder().
		WithFile(path, required).
		WithDotEnv().
		WithEnv().
		Build()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.config = cfg

	if a.format != "" {
		if _, err := theme.ParseFormat(a.format); err != nil {
			return err
		}
	}

	a.logger.Debug("configuration loaded", "path", path, "format", cfg.Format, "http_timeout", cfg.HTTPTimeout)
	return nil
}

// inputFormat picks the decoding for the --theme document: the file
// extension, then the configured default. --format never applies to input.
func (a *app) inputFormat(path string) theme.Format {
	fallback := a.configFormat()
	if path == "" || path == "-" {
		return fallback
	}
	return theme.FormatFromPath(path, fallback)
}

// outputFormat picks the encoding for a written document: --format, then the
// target's extension, then the configured default.
func (a *app) outputFormat(path string) theme.Format {
	if a.format != "" {
		f, _ := theme.ParseFormat(a.format)
		return f
	}
	return a.inputFormat(path)
}

func (a *app) configFormat() theme.Format {
	if a.config == nil {
		return theme.FormatYAML
	}
	f, err := theme.ParseFormat(a.config.Format)
	if err != nil {
		return theme.FormatYAML
	}
	return f
}

// loadDocument reads the --theme document. Without one, or when the file does
// not exist yet, it starts from the defaults with the configured font.
func (a *app) loadDocument(cmd *cobra.Command) (theme.Document, error) {
	var (
		doc theme.Document
		err error
	)

	switch a.themePath {
	case "":
		doc = a.defaultDocument()
	case "-":
		doc, err = theme.Decode(cmd.InOrStdin(), a.inputFormat("-"))
	default:
		doc, err = theme.ReadFileAs(a.themePath, a.inputFormat(a.themePath))
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Info("theme not found, starting from defaults", "path", a.themePath)
			doc, err = a.defaultDocument(), nil
		}
	}
	if err != nil {
		return theme.Document{}, err
	}

	if err := doc.Validate(); err != nil {
		return theme.Document{}, fmt.Errorf("invalid theme: %w", err)
	}
	return doc, nil
}

func (a *app) defaultDocument() theme.Document {
	doc := theme.Default()
	if a.config != nil && a.config.Font != "" {
		if f, err := font.Lookup(a.config.Font); err == nil {
			doc.Font = f.Name
		} else {
			a.logger.Warn("ignoring configured font", "font", a.config.Font, "error", err)
		}
	}
	return doc
}

// documentTarget is where a modified document is written: --output, else the
// --theme file, else stdout.
func (a *app) documentTarget() string {
	if a.output != "" {
		return a.output
	}
	if a.themePath != "" {
		return a.themePath
	}
	return "-"
}

// saveDocument validates and writes the document to its target.
func (a *app) saveDocument(cmd *cobra.Command, doc theme.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid theme: %w", err)
	}

	target := a.documentTarget()
	format := a.outputFormat(target)
	if target == "-" {
		return doc.Encode(cmd.OutOrStdout(), format)
	}

	if err := theme.WriteFileAs(target, doc, format); err != nil {
		return err
	}
	a.success(cmd, "Wrote %s", target)
	return nil
}

// writeArtefact writes content to path, or to stdout for "-".
func (a *app) writeArtefact(cmd *cobra.Command, path, content string) error {
	if path == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.success(cmd, "Wrote %s", path)
	return nil
}

var (
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

// success prints a status line to stderr unless --quiet is set.
func (a *app) success(cmd *cobra.Command, format string, args ...any) {
	a.status(cmd, successColor, "✓ ", format, args...)
}

func (a *app) info(cmd *cobra.Command, format string, args ...any) {
	a.status(cmd, infoColor, "→ ", format, args...)
}

func (a *app) warn(cmd *cobra.Command, format string, args ...any) {
	a.status(cmd, warnColor, "! ", format, args...)
}

func (a *app) status(cmd *cobra.Command, c *color.Color, prefix, format string, args ...any) {
	if a.quiet {
		return
	}
	_, _ = c.Fprintf(cmd.ErrOrStderr(), prefix+format+"\n", args...)
}
