package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Commit returns the short commit hash, falling back to VCS build info
// when no -ldflags were provided.
func Commit() string {
	if GitCommit != "" {
		return shorten(GitCommit)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return shorten(setting.Value)
			}
		}
	}
	return ""
}

// String returns a human-readable version string, e.g. "1.0.0 (ab12cd3)".
func String() string {
	if commit := Commit(); commit != "" {
		return fmt.Sprintf("%s (%s)", Version, commit)
	}
	return Version
}

func shorten(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
