package bom

import (
	"runtime/debug"
	"testing"
)

func TestToolVersion(t *testing.T) {
	origVersion, origCommit, origRead := Version, Commit, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, readBuildInfo = origVersion, origCommit, origRead
	})

	noInfo := func() (*debug.BuildInfo, bool) { return nil, false }
	tests := []struct {
		name    string
		version string
		commit  string
		info    func() (*debug.BuildInfo, bool)
		want    string
	}{
		{name: "ldflags priority", version: "1.2.3", info: noInfo, want: "1.2.3"},
		{name: "module version", info: func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
		}, want: "v0.4.0"},
		{name: "vcs revision", info: func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main:     debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			}, true
		}, want: "commit-0123456"},
		{name: "commit fallback", version: "dev", commit: "deadbeef", info: noInfo, want: "commit-deadbeef"},
		{name: "devel fallback", info: noInfo, want: "devel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, readBuildInfo = tt.version, tt.commit, tt.info
			if got := ToolVersion(); got != tt.want {
				t.Errorf("ToolVersion() = %v, want %v", got, tt.want)
			}
		})
	}
}
