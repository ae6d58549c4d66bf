package cli

import (
	"github.com/spf13/cobra"
)

// newLockCmd builds "lock" or "unlock".
func newLockCmd(a *app, locked bool) *cobra.Command {
	use, short := "lock", "Lock roles so generate and import leave them alone"
	if !locked {
		use, short = "unlock", "Unlock roles"
	}

	return &cobra.Command{
		Use:     use + " role...",
		Short:   short,
		Example: "  bstheme " + use + " -t theme.yaml primary danger",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := parseRoles(args)
			if err != nil {
				return err
			}
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}
			doc.SetLocks(locked, roles...)
			return a.saveDocument(cmd, doc)
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle role...",
		Short: "Flip the lock on each role",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := parseRoles(args)
			if err != nil {
				return err
			}
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}
			for _, role := range roles {
				state := "unlocked"
				if doc.ToggleLock(role) {
					state = "locked"
				}
				a.info(cmd, "%s %s", role, state)
			}
			return a.saveDocument(cmd, doc)
		},
	}
}
