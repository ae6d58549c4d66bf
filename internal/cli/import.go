package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
)

func newImportCmd(a *app) *cobra.Command {
	var sourceName string

	cmd := &cobra.Command{
		Use:   "import [colours...]",
		Short: "Assign imported colours to roles by hue",
		Long: `Classify candidate colours into semantic roles. Each unlocked role takes the
first unused candidate in its hue band, in priority order:

  danger   330-20
  success  70-160
  warning  30-70
  info     180-240

The first two leftovers become primary and secondary. Neutral roles are never
touched. Candidates come from --source (default text); positional arguments
are shorthand for --text.value.

Sources: ` + strings.Join(a.sources.List(), ", "),
		Example: `  bstheme import -t theme.yaml "#e63946, #2a9d8f, #e9c46a"
  bstheme import -t theme.yaml --text.file palette.json
  bstheme import -t theme.yaml --source remote-css --remote-css.url https://example.com/site.css
  bstheme import -t theme.yaml --source image --image.path wallpaper.jpg
  bstheme import -t theme.yaml --source prompt --prompt.text "autumn forest"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, ok := a.sources.Get(sourceName)
			if !ok {
				return fmt.Errorf("unknown source %q (available: %s)", sourceName, strings.Join(a.sources.List(), ", "))
			}
			if len(args) > 0 {
				if src.Name() != "text" {
					return fmt.Errorf("positional colours are only accepted by the text source")
				}
				if err := cmd.Flags().Set("text.value", strings.Join(args, "\n")); err != nil {
					return err
				}
			}
			if err := src.Validate(); err != nil {
				return err
			}

			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			candidates, err := src.Candidates(cmd.Context(), source.Options{
				Logger:       a.logger.Named(src.Name()),
				HTTPTimeout:  a.config.HTTPTimeout,
				ImageColours: a.config.ImageColours,
				GenAIModel:   a.config.GenAIModel,
				Stdin:        cmd.InOrStdin(),
			})
			if err != nil {
				return importError(err)
			}
			a.logger.Debug("candidates", "source", src.Name(), "colours", strings.Join(candidates, ","))

			updated := palette.Assign(candidates, doc.Palette, doc.LockSet())
			changed := changedRoles(doc.Palette, updated)
			if len(changed) == 0 {
				a.warn(cmd, "No roles changed (%d candidates)", len(candidates))
			}
			for _, role := range changed {
				a.info(cmd, "%-9s %s -> %s", role, doc.Palette.Get(role), updated.Get(role))
			}

			doc.Palette = updated
			return a.saveDocument(cmd, doc)
		},
	}

	cmd.Flags().StringVarP(&sourceName, "source", "s", "text", "candidate source ("+strings.Join(a.sources.List(), ", ")+")")
	for _, name := range a.sources.List() {
		src, _ := a.sources.Get(name)
		src.RegisterFlags(cmd.Flags())
	}
	return cmd
}

// importError rewords classifier failures for the command line.
func importError(err error) error {
	var parseErr *palette.ParseError
	switch {
	case errors.Is(err, palette.ErrNoValidColors):
		return fmt.Errorf("no valid hex codes found, theme left unchanged")
	case errors.As(err, &parseErr):
		return fmt.Errorf("invalid JSON array, theme left unchanged: %w", parseErr.Err)
	}
	return err
}

func changedRoles(before, after palette.Palette) []palette.Role {
	var changed []palette.Role
	for _, role := range palette.AllRoles() {
		if before.Get(role) != after.Get(role) {
			changed = append(changed, role)
		}
	}
	return changed
}
