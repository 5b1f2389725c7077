package patchstate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/checksum"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/gameinfo"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/manifest"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

const plainConfig = "\"GameInfo\"\n{\n\tFileSystem\n\t{\n\t}\n}"

func patchedConfig(t *testing.T) []byte {
	t.Helper()
	out, err := gameinfo.Insert(plainConfig)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return []byte(out)
}

func manifestFor(config []byte) string {
	return "BEGIN\nfoo.dll~SHA1:AA;CRC:BB\n" + manifest.FormatRecord(checksum.FromBytes(config))
}

func TestClassify(t *testing.T) {
	patched := patchedConfig(t)
	plain := []byte(plainConfig)

	tests := []struct {
		name         string
		config       []byte
		manifestText string
		want         State
	}{
		{
			name:         "fresh install",
			config:       plain,
			manifestText: "BEGIN\nfoo.dll~SHA1:AA;CRC:BB\nEND",
			want:         StateNeither,
		},
		{
			name:         "empty manifest",
			config:       plain,
			manifestText: "",
			want:         StateNeither,
		},
		{
			name:         "fully patched",
			config:       patched,
			manifestText: manifestFor(patched),
			want:         StateBoth,
		},
		{
			name:         "config patched, manifest has no record",
			config:       patched,
			manifestText: "BEGIN\nEND",
			want:         StateConfigOnly,
		},
		{
			name:         "config patched, manifest record stale",
			config:       patched,
			manifestText: manifestFor(plain),
			want:         StateConfigOnly,
		},
		{
			name:         "config patched, stale record followed by unrelated line",
			config:       patched,
			manifestText: manifestFor(patched) + "\nEND",
			want:         StateConfigOnly,
		},
		{
			name:         "manifest matches unpatched config",
			config:       plain,
			manifestText: manifestFor(plain),
			want:         StateManifestOnly,
		},
		{
			name:         "unpatched config with foreign record",
			config:       plain,
			manifestText: manifestFor(patched),
			want:         StateNeither,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.config, tt.manifestText)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_UnpatchedConfigIgnoresManifest(t *testing.T) {
	plain := []byte(plainConfig)
	for _, text := range []string{"", "END", manifestFor(patchedConfig(t)), manifest.Reference + "~SHA1:X;CRC:Y"} {
		got, err := Classify(plain, text)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if got.ConfigPatched() {
			t.Errorf("Classify(manifest=%q) reports config patched", text)
		}
	}
}

func TestClassify_MalformedManifest(t *testing.T) {
	_, err := Classify(patchedConfig(t), "BEGIN\n...no separators here")
	if !patcherr.IsFormat(err) {
		t.Fatalf("Classify() error = %v, want FormatError", err)
	}
}

func TestAnalyze_KeepsRecords(t *testing.T) {
	patched := patchedConfig(t)
	stale := checksum.FromBytes([]byte(plainConfig))

	report, err := Analyze(patched, manifestFor([]byte(plainConfig)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !report.HasRecord {
		t.Error("HasRecord = false, want true")
	}
	if !report.Recorded.Equal(stale) {
		t.Errorf("Recorded = %+v, want %+v", report.Recorded, stale)
	}
	if !report.Current.Equal(checksum.FromBytes(patched)) {
		t.Errorf("Current = %+v, want checksum of patched config", report.Current)
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, gameinfo.FileName)
	manifestPath := filepath.Join(dir, "dota.signatures")

	patched := patchedConfig(t)
	if err := os.WriteFile(configPath, patched, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(manifestPath, []byte(manifestFor(patched)), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Inspect(configPath, manifestPath)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if report.State != StateBoth {
		t.Errorf("State = %v, want %v", report.State, StateBoth)
	}

	t.Run("missing config", func(t *testing.T) {
		_, err := Inspect(filepath.Join(dir, "absent.gi"), manifestPath)
		if !patcherr.IsIO(err) {
			t.Errorf("Inspect() error = %v, want IOError", err)
		}
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := Inspect(configPath, filepath.Join(dir, "absent.signatures"))
		if !patcherr.IsIO(err) {
			t.Errorf("Inspect() error = %v, want IOError", err)
		}
	})

	t.Run("malformed manifest names the file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.signatures")
		if err := os.WriteFile(bad, []byte("...oops"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Inspect(configPath, bad)
		if !patcherr.IsFormat(err) {
			t.Fatalf("Inspect() error = %v, want FormatError", err)
		}
		if got := err.Error(); !strings.Contains(got, bad) {
			t.Errorf("error %q should mention %s", got, bad)
		}
	})
}
