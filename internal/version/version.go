package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String formats the build metadata. Without ldflags the VCS revision
// recorded by the Go toolchain is used when available.
func String() string {
	commit, date := Commit, Date
	if commit == "" {
		commit, date = buildInfo(date)
	}
	base := Version
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		base += fmt.Sprintf(" (%s)", commit)
	}
	if date != "" {
		base += " " + date
	}
	return base
}

func buildInfo(date string) (string, string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", date
	}
	var rev string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return rev, date
}
