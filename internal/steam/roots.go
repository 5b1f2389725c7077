package steam

import (
	"os"
	"path/filepath"
)

// DefaultRoots lists the usual Steam root directories for goos, most
// likely first. Entries whose base variable is unset are left out.
func DefaultRoots(goos string) []string {
	var roots []string
	add := func(base string, elem ...string) {
		if base != "" {
			roots = append(roots, filepath.Join(append([]string{base}, elem...)...))
		}
	}

	home, _ := os.UserHomeDir()

	switch goos {
	case "windows":
		add(os.Getenv("ProgramFiles(x86)"), "Steam")
		add(os.Getenv("ProgramFiles"), "Steam")
	case "darwin":
		add(home, "Library", "Application Support", "Steam")
	default:
		add(home, ".steam", "steam")
		add(home, ".local", "share", "Steam")
		add(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam")
		add(home, "snap", "steam", "common", ".local", "share", "Steam")
	}
	return roots
}

// isRoot reports whether dir has a steamapps directory.
func isRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "steamapps"))
	return err == nil && info.IsDir()
}
