package testutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	dir := testutil.SetupTestEnv(t)

	if got := os.Getenv("DMCPATCH_CONFIG_DIR"); got != dir {
		t.Errorf("DMCPATCH_CONFIG_DIR = %q, want %q", got, dir)
	}
	if got := os.Getenv("DMCPATCH_CONFIG"); got != "" {
		t.Errorf("DMCPATCH_CONFIG = %q, want empty", got)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("config dir %s not created: %v", dir, err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("config dir %s is not absolute", dir)
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	dir1 := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		if dir2 := testutil.SetupTestEnv(t); dir1 == dir2 {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}

func TestNewInstallation(t *testing.T) {
	paths := testutil.NewInstallation(t)

	if got := testutil.ReadFile(t, paths.GameInfo); got != testutil.SampleGameInfo {
		t.Errorf("gameinfo content = %q", got)
	}
	if got := testutil.ReadFile(t, paths.Signatures); got != testutil.SampleSignatures {
		t.Errorf("signatures content = %q", got)
	}
	if strings.Count(testutil.SampleGameInfo, "\n") != 9 {
		t.Error("SampleGameInfo should have ten lines")
	}
	if _, err := os.Stat(paths.ModsDir); !os.IsNotExist(err) {
		t.Errorf("mods dir should not exist yet, stat error = %v", err)
	}
}

func TestNewSteamInstall(t *testing.T) {
	root, paths := testutil.NewSteamInstall(t)

	want := filepath.Join(root, "steamapps", "common", "dota 2 beta")
	if paths.GameDir != want {
		t.Errorf("GameDir = %q, want %q", paths.GameDir, want)
	}
	for _, f := range []string{"libraryfolders.vdf", "appmanifest_570.acf"} {
		if _, err := os.Stat(filepath.Join(root, "steamapps", f)); err != nil {
			t.Errorf("%s missing: %v", f, err)
		}
	}
}
