package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/theme"
)

// labelThreshold is the luminance above which swatch labels are drawn in black.
const labelThreshold = 0.179

func newShowCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the palette",
		Long: `Print every role with its hex, RGB and HSL values and lock state. On a
terminal each hex is drawn as a colour swatch. With --format the document is
printed as JSON or YAML instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.format != "" {
				return doc.Encode(out, a.outputFormat("-"))
			}

			swatches := !plain && isTerminal(out)
			_, err = fmt.Fprint(out, renderPalette(doc, swatches))
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "never draw colour swatches")
	return cmd
}

// renderPalette formats the document as a table, optionally with swatches.
func renderPalette(doc theme.Document, swatches bool) string {
	locks := doc.LockSet()
	table := NewTable("ROLE", "HEX", "RGB", "HSL", "LOCKED")
	for _, role := range palette.AllRoles() {
		hex := doc.Palette.Get(role)
		label := hex
		if swatches {
			label = swatch(hex)
		}
		locked := ""
		if locks.Locked(role) {
			locked = "yes"
		}
		table.AddRow(string(role), label, colour.RGBString(hex), colour.HexToHSL(hex).String(), locked)
	}

	f := doc.Typeface()
	return table.Render() + fmt.Sprintf("\nFont: %s (%s)\n", f.Name, f.Family)
}

// swatch renders hex on its own colour with a readable label.
func swatch(hex string) string {
	fg := "#ffffff"
	if colour.Luminance(hex) > labelThreshold {
		fg = "#000000"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1).
		Render(hex)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
