package main

import (
	"fmt"
	"runtime/debug"
)

// Version and Commit may be set with -ldflags "-X main.Version=...".
var (
	Version = ""
	Commit  = ""
)

func Description() string {
	return fmt.Sprintf("ESP32 DualShock 4 frame decoder %s (%s)", Version, Commit)
}

func init() {
	Version, Commit = buildVersion(Version, Commit)
}

// buildVersion fills unset values from the module build info.
func buildVersion(version, commit string) (string, string) {
	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && commit == "" {
				commit = s.Value[:min(7, len(s.Value))]
			}
		}
	}
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return version, commit
}
