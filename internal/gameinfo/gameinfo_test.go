package gameinfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/lines"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

// sampleConfig is a trimmed gameinfo_branchspecific.gi with ten lines.
const sampleConfig = "\"GameInfo\"\n" +
	"{\n" +
	"\tFileSystem\n" +
	"\t{\n" +
	"\t\tSteamAppId\t\t570\n" +
	"\t\tToolsAppId\t\t211\n" +
	"\t\tBranchSpecific\t1\n" +
	"\t\tVPKDirectories\t{}\n" +
	"\t}\n" +
	"}"

func TestBlockLineCount(t *testing.T) {
	if got := BlockLineCount(); got != 22 {
		t.Errorf("BlockLineCount() = %d, want 22", got)
	}
	if got := len(lines.Split(InsertionBlock)); got != BlockLineCount() {
		t.Errorf("split block has %d lines, BlockLineCount() = %d", got, BlockLineCount())
	}
}

func TestInsertionBlock_Shape(t *testing.T) {
	blockLines := lines.Split(InsertionBlock)

	if !strings.Contains(blockLines[0], "SearchPaths") || !strings.HasSuffix(blockLines[0], Marker) {
		t.Errorf("first line = %q, want SearchPaths opening line ending with marker", blockLines[0])
	}
	if strings.TrimSpace(blockLines[len(blockLines)-1]) != "}" {
		t.Errorf("last line = %q, want closing brace", blockLines[len(blockLines)-1])
	}
	if strings.Count(InsertionBlock, Marker) != 1 {
		t.Error("marker should appear exactly once in the block")
	}
	if !strings.Contains(InsertionBlock, ModsDirName) {
		t.Error("block should reference the mods directory")
	}
}

func TestIsPatched(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"plain config", sampleConfig, false},
		{"marker anywhere", "x\n" + Marker + "\n}", true},
		{"marker mid-line", "\t\tSearchPaths " + Marker, true},
		{"partial marker", "// Patched by DotaModdingCommunity", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPatched([]byte(tt.content)); got != tt.want {
				t.Errorf("IsPatched() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsert_Position(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"ten lines", sampleConfig},
		{"ten lines with trailing newline", sampleConfig + "\n"},
		{"crlf", strings.ReplaceAll(sampleConfig, "\n", "\r\n")},
		{"exactly two lines", "}\n}"},
		{"three lines", "a\n}\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := lines.Split(tt.content)
			n := len(original)

			got, err := Insert(tt.content)
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			patched := lines.Split(got)
			k := BlockLineCount()

			if len(patched) != n+k {
				t.Fatalf("patched line count = %d, want %d", len(patched), n+k)
			}

			// Everything before the insertion point is untouched.
			if diff := cmp.Diff(original[:n-2], patched[:n-2]); diff != "" {
				t.Errorf("prefix changed (-want +got):\n%s", diff)
			}

			// The block is one contiguous span ending two lines before the end.
			if diff := cmp.Diff(lines.Split(InsertionBlock), patched[n-2:n-2+k]); diff != "" {
				t.Errorf("block span mismatch (-want +got):\n%s", diff)
			}

			// The original last two lines stay last and unchanged.
			if diff := cmp.Diff(original[n-2:], patched[len(patched)-2:]); diff != "" {
				t.Errorf("closing lines changed (-want +got):\n%s", diff)
			}

			if strings.HasSuffix(got, "\n") {
				t.Error("patched content should not end with a newline")
			}
		})
	}
}

func TestInsert_TooShort(t *testing.T) {
	for _, content := range []string{"", "}", "}\n"} {
		_, err := Insert(content)
		if !patcherr.IsFormat(err) {
			t.Errorf("Insert(%q) error = %v, want FormatError", content, err)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, FileName)
	short := filepath.Join(dir, "short.gi")
	if err := os.WriteFile(good, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(short, []byte("}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CheckFile(good); err != nil {
		t.Errorf("CheckFile(good) error = %v", err)
	}
	if got, _ := os.ReadFile(good); string(got) != sampleConfig {
		t.Error("CheckFile modified the file")
	}

	err := CheckFile(short)
	fe, ok := err.(*patcherr.FormatError)
	if !ok {
		t.Fatalf("CheckFile(short) error = %v, want *FormatError", err)
	}
	if fe.Path != short {
		t.Errorf("Path = %q, want %q", fe.Path, short)
	}

	if err := CheckFile(filepath.Join(dir, "absent.gi")); !patcherr.IsIO(err) {
		t.Errorf("CheckFile(absent) error = %v, want IOError", err)
	}
}

func TestPatchFile(t *testing.T) {
	t.Run("patches file in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := PatchFile(path); err != nil {
			t.Fatalf("PatchFile() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !IsPatched(data) {
			t.Error("file should carry the marker after patching")
		}
		want, _ := Insert(sampleConfig)
		if string(data) != want {
			t.Errorf("file content differs from Insert() result")
		}
	})

	t.Run("missing file is IOError", func(t *testing.T) {
		err := PatchFile(filepath.Join(t.TempDir(), FileName))
		if !patcherr.IsIO(err) {
			t.Errorf("PatchFile() error = %v, want IOError", err)
		}
	})

	t.Run("single line file is FormatError with path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("}"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := PatchFile(path)
		fe, ok := err.(*patcherr.FormatError)
		if !ok {
			t.Fatalf("PatchFile() error = %v, want *FormatError", err)
		}
		if fe.Path != path {
			t.Errorf("FormatError.Path = %q, want %q", fe.Path, path)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "}" {
			t.Errorf("file modified on failure: %q", data)
		}
	})

	t.Run("second call duplicates block", func(t *testing.T) {
		// PatchFile does not guard itself; the oracle must.
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := PatchFile(path); err != nil {
			t.Fatal(err)
		}
		if err := PatchFile(path); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(path)
		if got := strings.Count(string(data), Marker); got != 2 {
			t.Errorf("marker count = %d, want 2", got)
		}
	})
}
