// Package testutil provides fixtures for testing dmcpatch in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/steam"
)

// SetupTestEnv points every dmcpatch environment lookup at a fresh temp
// directory so tests never read the user's real config. It returns the
// config directory.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "config")
	home := filepath.Join(tmpDir, "home")

	t.Setenv("DMCPATCH_CONFIG_DIR", configDir)
	t.Setenv("DMCPATCH_CONFIG", "")
	t.Setenv("DMCPATCH_DEBUG", "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	for _, dir := range []string{configDir, home} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}
	return configDir
}

// SampleGameInfo is a ten line gameinfo_branchspecific.gi. The last two
// lines are closing braces.
const SampleGameInfo = "\"GameInfo\"\n" +
	"{\n" +
	"\tFileSystem\n" +
	"\t{\n" +
	"\t\tSteamAppId\t\t570\n" +
	"\t\tToolsAppId\t\t211\n" +
	"\t\tBranchSpecific\t1\n" +
	"\t\tVPKDirectories\t{}\n" +
	"\t}\n" +
	"}"

// SampleSignatures is a dota.signatures with no gameinfo record.
const SampleSignatures = "BEGIN_SIGNATURES\n" +
	"...\\..\\..\\dota\\pak01_dir.vpk~SHA1:0123456789ABCDEF0123456789ABCDEF01234567;CRC:A1B2C3D4\n" +
	"END_SIGNATURES"

// NewInstallation writes a fake game tree under a temp directory and
// returns its paths. The mods directory is not created.
func NewInstallation(t *testing.T) steam.Paths {
	t.Helper()
	return WriteInstallation(t, filepath.Join(t.TempDir(), "dota 2 beta"), SampleGameInfo, SampleSignatures)
}

// WriteInstallation writes gameInfo and signatures under gameDir.
func WriteInstallation(t *testing.T, gameDir, gameInfo, signatures string) steam.Paths {
	t.Helper()

	paths := steam.PathsFor(gameDir)
	WriteFile(t, paths.GameInfo, gameInfo)
	WriteFile(t, paths.Signatures, signatures)
	return paths
}

// NewSteamInstall builds a Steam root whose only library holds a fake Dota
// 2 installation. It returns the root and the installation paths.
func NewSteamInstall(t *testing.T) (root string, paths steam.Paths) {
	t.Helper()

	root = filepath.Join(t.TempDir(), "Steam")
	apps := filepath.Join(root, "steamapps")

	WriteFile(t, filepath.Join(apps, "libraryfolders.vdf"), "\"libraryfolders\"\n{\n"+
		"\t\"0\"\n\t{\n"+
		"\t\t\"path\"\t\t\""+filepath.ToSlash(root)+"\"\n"+
		"\t\t\"apps\"\n\t\t{\n\t\t\t\"570\"\t\t\"1\"\n\t\t}\n"+
		"\t}\n}\n")
	WriteFile(t, filepath.Join(apps, "appmanifest_570.acf"),
		"\"AppState\"\n{\n\t\"appid\"\t\t\"570\"\n\t\"installdir\"\t\t\"dota 2 beta\"\n}\n")

	paths = WriteInstallation(t, filepath.Join(apps, "common", "dota 2 beta"), SampleGameInfo, SampleSignatures)
	return root, paths
}

// WriteFile creates path and its parents with content.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
