package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/bstheme/internal/theme"
	"github.com/jmylchreest/bstheme/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.format == "" {
				_, err := fmt.Fprintln(out, version.String())
				return err
			}
			return encodeValue(out, a.outputFormat("-"), version.GetInfo())
		},
	}
}

// encodeValue writes v in the given document format.
func encodeValue(w io.Writer, format theme.Format, v any) error {
	switch format {
	case theme.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}
