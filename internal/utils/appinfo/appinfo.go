// Package appinfo resolves the running build's version and environment
package appinfo

import (
	"os"
	"runtime/debug"
	"strings"
)

// GetEnvironment returns the normalized deploy environment, read from
// GO_ENV and defaulting to development.
func GetEnvironment() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	switch strings.ToLower(env) {
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	default:
		return "development"
	}
}

// GetVersion returns the application version: the APP_VERSION deploy
// variable when set, otherwise whatever the Go build recorded.
func GetVersion() string {
	if version := os.Getenv("APP_VERSION"); version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	return "0.0.0-unknown"
}
