package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/font"
)

func newFontCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "font [name]",
		Short: "Show or set the theme font",
		Long: `Without an argument, print the theme font. With one, select a font from the
catalog; names match case-insensitively, then fuzzily ("playfair", "mono").`,
		Example: `  bstheme font -t theme.yaml
  bstheme font -t theme.yaml "open sans"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				f := doc.Typeface()
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.Name, f.Family)
				return err
			}

			f, err := font.Lookup(args[0])
			if err != nil {
				return err
			}
			if !strings.EqualFold(f.Name, strings.TrimSpace(args[0])) {
				a.info(cmd, "Matched %q to %s", args[0], f.Name)
			}
			doc.Font = f.Name
			return a.saveDocument(cmd, doc)
		},
	}
}

func newFontsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the font catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := ""
			if a.themePath != "" {
				doc, err := a.loadDocument(cmd)
				if err != nil {
					return err
				}
				current = doc.Typeface().Name
			}

			table := NewTable("", "NAME", "FAMILY")
			for _, f := range font.All() {
				marker := ""
				if f.Name == current {
					marker = "*"
				}
				table.AddRow(marker, f.Name, f.Family)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return err
		},
	}
}
