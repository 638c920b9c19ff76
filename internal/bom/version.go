package bom

import (
	"runtime/debug"
)

var (
	// Set these at build time with -ldflags "-X 'github.com/idlab-discover/EconCluster-cli/internal/bom.Version=...' -X '...Commit=...'"
	Version = ""
	Commit  = ""
)

var readBuildInfo = debug.ReadBuildInfo

// ToolVersion reports the version of this binary.
func ToolVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return "commit-" + s.Value[:7]
			}
		}
	}
	if Commit != "" {
		return "commit-" + Commit
	}
	return "devel"
}
