// Package misc keeps build related information about the program.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "rst2sile"

var (
	// set by the linker: -X rst2sile/misc.version=... -X rst2sile/misc.gitHash=...
	version = "dev"
	gitHash = ""

	buildOnce sync.Once
)

func readBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	if gitHash == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				gitHash = s.Value
				if len(gitHash) > 12 {
					gitHash = gitHash[:12]
				}
			}
		}
	}
	if gitHash == "" {
		gitHash = "unknown"
	}
}

// GetAppName returns the program name used for logs, temporary files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns the program version.
func GetVersion() string {
	buildOnce.Do(readBuildInfo)
	return version
}

// GetGitHash returns the abbreviated source revision the program was built from.
func GetGitHash() string {
	buildOnce.Do(readBuildInfo)
	return gitHash
}
