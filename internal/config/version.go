package config

import (
	"os"
	"runtime/debug"
)

// GetVersion returns the service version, preferring the value set by
// CI/CD over whatever the build metadata carries.
func GetVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "0.1.0"
}
