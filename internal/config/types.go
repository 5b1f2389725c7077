package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
)

// Limits applied by Validate.
const (
	MaxPauseSeconds     = 60
	MaxProcessNames     = 16
	DefaultPauseSeconds = 8
)

// Config holds dmcpatch settings.
type Config struct {
	// SteamRoot overrides Steam root discovery. Empty means search.
	SteamRoot string
	// GameDir points straight at the Dota 2 install ("dota 2 beta") and
	// skips Steam lookups entirely.
	GameDir string
	// ProcessNames are matched against running processes before patching.
	ProcessNames []string
	// PauseSeconds is how long interactive mode waits before exiting.
	PauseSeconds int
	// LogLevel is one of debug, info, warn, error. Empty leaves the CLI
	// default in place.
	LogLevel string
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		ProcessNames: defaultProcessNames(runtime.GOOS),
		PauseSeconds: DefaultPauseSeconds,
	}
}

func defaultProcessNames(goos string) []string {
	switch goos {
	case "windows":
		return []string{"dota2.exe"}
	case "darwin":
		return []string{"Dota 2"}
	default:
		return []string{"dota2"}
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks field ranges and path forms.
func (c *Config) Validate() error {
	if c.PauseSeconds < 0 || c.PauseSeconds > MaxPauseSeconds {
		return &ValidationError{
			Field:   "pause_seconds",
			Message: fmt.Sprintf("must be between 0 and %d (got %d)", MaxPauseSeconds, c.PauseSeconds),
		}
	}

	if len(c.ProcessNames) > MaxProcessNames {
		return &ValidationError{
			Field:   "process_names",
			Message: fmt.Sprintf("too many process names (%d), maximum is %d", len(c.ProcessNames), MaxProcessNames),
		}
	}
	for i, name := range c.ProcessNames {
		if name == "" {
			return &ValidationError{Field: fmt.Sprintf("process_names[%d]", i), Message: "name cannot be empty"}
		}
	}

	paths := []struct{ field, path string }{
		{"steam_root", c.SteamRoot},
		{"game_dir", c.GameDir},
	}
	for _, p := range paths {
		if p.path != "" && !filepath.IsAbs(p.path) {
			return &ValidationError{Field: p.field, Message: fmt.Sprintf("path must be absolute: %s", p.path)}
		}
	}

	if c.LogLevel != "" && !slices.Contains(logLevels, c.LogLevel) {
		return &ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q (expected one of %v)", c.LogLevel, logLevels),
		}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}
