package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables consulted by ResolvePath.
const (
	EnvConfig    = "DMCPATCH_CONFIG"
	EnvConfigDir = "DMCPATCH_CONFIG_DIR"
)

// FileName is the config file's base name inside the config directory.
const FileName = "dmcpatch.lua"

// ResolvePath picks the config file: flagPath if set, then $DMCPATCH_CONFIG,
// then FileName inside Dir(). explicit reports whether the user named the
// file.
func ResolvePath(flagPath string) (path string, explicit bool, err error) {
	if flagPath != "" {
		return flagPath, true, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, FileName), false, nil
}

// Dir returns $DMCPATCH_CONFIG_DIR, or dmcpatch under os.UserConfigDir.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, "dmcpatch"), nil
}
