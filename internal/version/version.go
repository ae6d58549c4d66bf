// Package version reports what build of bstheme is running. Release builds set
// the values with -ldflags "-X github.com/jmylchreest/bstheme/internal/version.Version=x.y.z";
// builds from `go install` fall back to the VCS stamp recorded by the toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Set at link time.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetInfo merges the link-time values with the module build info. Link-time
// values win; build info only fills what they left unset.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Short returns the commit abbreviated to eight characters.
func (i Info) Short() string {
	c := i.Commit
	if len(c) > 8 {
		c = c[:8]
	}
	if i.Modified {
		c += "-dirty"
	}
	return c
}

// String formats the info as a single line for `bstheme version`.
func (i Info) String() string {
	if i.Commit == unknown {
		return fmt.Sprintf("bstheme %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("bstheme %s (commit %s, built %s, %s, %s)",
		i.Version, i.Short(), i.Date, i.GoVersion, i.Platform)
}

// String is shorthand for GetInfo().String().
func String() string {
	return GetInfo().String()
}
