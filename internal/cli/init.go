package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default Bootstrap theme document",
		Long: `Write a theme document holding the Bootstrap 5.3 default palette, the
configured font (System UI by default) and no locks.

The document goes to --output, else --theme, else stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := a.documentTarget()
			if target != "-" && !force {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", target)
				}
			}
			return a.saveDocument(cmd, a.defaultDocument())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing document")
	return cmd
}
