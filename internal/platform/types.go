// Package platform describes the machine dmcpatch runs on and exposes that
// description to Lua configuration files as a read-only "platform" table.
//
// Linux distribution details come from gopsutil. Detection failures other
// than context cancellation degrade to OS/arch only.
package platform

import "context"

// SteamOSID is the distribution ID gopsutil reports on a Steam Deck.
const SteamOSID = "steamos"

// Info contains platform detection information.
type Info struct {
	OS            string // "linux", "darwin", "windows"
	Arch          string // "amd64", "arm64", "386" (normalized)
	Distro        string // Linux only, e.g. "ubuntu", "steamos"
	DistroVersion string // Linux only, e.g. "22.04"
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsSteamDeck returns true when running on SteamOS.
func (i *Info) IsSteamDeck() bool {
	return i.IsLinux() && i.Distro == SteamOSID
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector returns a fixed Info. Useful when the platform is already
// known, and in tests.
type StaticDetector struct {
	Info *Info
	Err  error
}

// Detect returns the configured info and error.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	return s.Info, s.Err
}
