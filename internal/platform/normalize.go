package platform

import "strings"

// normalizeArch folds the common aliases for an architecture onto GOARCH
// names. Unknown values pass through lowercased.
func normalizeArch(arch string) string {
	switch a := strings.ToLower(strings.TrimSpace(arch)); a {
	case "amd64", "x86_64", "x64":
		return "amd64"
	case "arm64", "aarch64":
		return "arm64"
	case "386", "i386", "i686", "x86":
		return "386"
	default:
		return a
	}
}

// normalizeID converts platform IDs to lowercase for consistency.
func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
