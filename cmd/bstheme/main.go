// bstheme - A Bootstrap 5 theme generator
//
// bstheme generates harmonious Bootstrap 5.3 colour palettes, classifies
// imported colours into semantic roles, and exports the result as a
// drop-in stylesheet.
package main

import (
	"os"

	"github.com/jmylchreest/bstheme/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
