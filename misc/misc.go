// Package misc provides program identification helpers shared across packages.
package misc

import (
	"runtime/debug"
)

const appName = "ao3"

// Set at build time via -ldflags when building releases.
var (
	version = ""
	gitHash = ""
)

// GetAppName returns short program name used in logs, file names and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, falling back to module build info.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns VCS revision this binary was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
