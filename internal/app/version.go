package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/kubishi-relay/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and the
// health endpoint. Values not set via ldflags are taken from the embedded
// build info when the binary carries VCS stamps.
func BuildVersion() string {
	version, commit, built := Version, Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "unknown" {
					commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if built == "unknown" {
					built = s.Value
				}
			}
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
