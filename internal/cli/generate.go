package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/palette"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		lock []string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Randomise every unlocked colour",
		Long: `Pick a new base hue and derive a harmonious palette from it. Locked roles keep
their colours; a locked primary fixes the base hue.

Roles passed with --lock are added to the document's locks before generating.
Use --seed to reproduce a palette.`,
		Example: `  bstheme generate -t theme.yaml
  bstheme generate -t theme.yaml --lock primary,danger
  bstheme generate --seed 42 -o theme.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			roles, err := parseRoles(lock)
			if err != nil {
				return err
			}
			doc.SetLocks(true, roles...)

			if !cmd.Flags().Changed("seed") {
				seed = palette.RandomSeed()
			}
			a.logger.Debug("generating palette", "seed", seed, "locked", fmt.Sprint(doc.LockSet().Roles()))

			doc.Palette = palette.NewSeededGenerator(seed).Generate(doc.Palette, doc.LockSet())
			a.info(cmd, "Generated palette (seed %d)", seed)
			return a.saveDocument(cmd, doc)
		},
	}

	cmd.Flags().StringSliceVar(&lock, "lock", nil, "roles to lock before generating (e.g. primary,danger)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	return cmd
}

// parseRoles resolves role names, accepting the same spellings as ParseRole.
func parseRoles(names []string) ([]palette.Role, error) {
	roles := make([]palette.Role, 0, len(names))
	for _, name := range names {
		role, err := palette.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}
