package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/stylesheet"
)

// DefaultPreviewFilename is where preview writes without --output.
const DefaultPreviewFilename = "bootstrap-preview.html"

func newPreviewCmd(a *app) *cobra.Command {
	var (
		dumpTemplate bool
		force        bool
		templateDir  string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a sample Bootstrap dashboard using the theme",
		Long: `Write a self-contained HTML page (Bootstrap from the jsDelivr CDN) styled with
the theme's stylesheet and font.

The page template can be customised: --dump-template writes the built-in
template to ~/.config/bstheme/templates/preview/` + stylesheet.DashboardTemplate + `,
which is used in place of the built-in one from then on.`,
		Example: `  bstheme preview -t theme.yaml
  bstheme preview -t theme.yaml -o - | browser-open
  bstheme preview --dump-template`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := stylesheet.DefaultLoader().WithLogger(a.logger)
			if templateDir != "" {
				loader = loader.WithCustomBase(templateDir)
			}

			if dumpTemplate {
				path, err := loader.Dump(stylesheet.DashboardTemplate, force)
				if err != nil {
					return err
				}
				a.success(cmd, "Template written to %s", path)
				return nil
			}

			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			html, err := stylesheet.NewPreviewer(loader).Preview(doc.Palette, doc.Typeface())
			if err != nil {
				return err
			}

			path := a.output
			if path == "" {
				path = DefaultPreviewFilename
			}
			return a.writeArtefact(cmd, path, html)
		},
	}

	cmd.Flags().BoolVar(&dumpTemplate, "dump-template", false, "write the built-in template for customisation and exit")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing custom template")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "template override directory (default ~/.config/bstheme/templates)")
	return cmd
}
