package version

import (
	"runtime/debug"
	"testing"
)

func withValues(t *testing.T, v, c, b string) {
	t.Helper()
	oldV, oldC, oldB := Version, Commit, BuildTime
	Version, Commit, BuildTime = v, c, b
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })
}

func TestFillFromBuildInfo(t *testing.T) {
	withValues(t, "dev", "unknown", "unknown")

	fillFromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	if got, want := String(), "v1.2.3 (commit: 0123456789ab, built: 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFillFromBuildInfo_LdflagsWin(t *testing.T) {
	withValues(t, "v9.9.9", "cafebabe", "yesterday")

	fillFromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})

	if Version != "v9.9.9" || Commit != "cafebabe" || BuildTime != "yesterday" {
		t.Errorf("ldflags values overwritten: %s", String())
	}
}

func TestFillFromBuildInfo_DevelIgnored(t *testing.T) {
	withValues(t, "dev", "unknown", "unknown")

	fillFromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}
