package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/stylesheet"
)

// clipboardWriter is replaced in tests.
var clipboardWriter = clipboard.WriteAll

func newExportCmd(a *app) *cobra.Command {
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the Bootstrap stylesheet",
		Long: `Render the theme as Bootstrap 5.3 CSS custom properties and component
overrides. Writes ` + stylesheet.DefaultFilename + ` unless --output is given;
use '-o -' for stdout or --clipboard to copy it instead.`,
		Example: `  bstheme export -t theme.yaml
  bstheme export -t theme.yaml -o - > custom.css
  bstheme export -t theme.yaml --clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			css := stylesheet.Serialize(doc.Palette, doc.Typeface().Family)

			if toClipboard {
				if err := clipboardWriter(css); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				a.success(cmd, "Copied CSS to clipboard")
				return nil
			}

			path := a.output
			if path == "" {
				path = stylesheet.DefaultFilename
			}
			return a.writeArtefact(cmd, path, css)
		},
	}

	cmd.Flags().BoolVarP(&toClipboard, "clipboard", "c", false, "copy the CSS to the clipboard instead of writing a file")
	return cmd
}
