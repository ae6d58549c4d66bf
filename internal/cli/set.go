package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/palette"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set role=#hex...",
		Short: "Set individual role colours",
		Long: `Set one or more role colours. Hex values may use the #rgb shorthand and the
leading '#' is optional. Roles: ` + strings.Join(roleList(), ", "),
		Example: `  bstheme set -t theme.yaml primary=#6f42c1 body-bg=fff`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			for _, arg := range args {
				role, hex, err := parseAssignment(arg)
				if err != nil {
					return err
				}
				doc.Palette = doc.Palette.With(role, hex)
				if doc.LockSet().Locked(role) {
					a.warn(cmd, "%s is locked; colour set anyway", role)
				}
				a.logger.Debug("set colour", "role", role, "hex", hex)
			}
			return a.saveDocument(cmd, doc)
		},
	}
}

func parseAssignment(arg string) (palette.Role, string, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", fmt.Errorf("expected role=#hex, got %q", arg)
	}
	role, err := palette.ParseRole(name)
	if err != nil {
		return "", "", err
	}
	rgb, err := colour.ParseHex(value)
	if err != nil {
		return "", "", err
	}
	return role, rgb.Hex(), nil
}

func roleList() []string {
	roles := palette.AllRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
