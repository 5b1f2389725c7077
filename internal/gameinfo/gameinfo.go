// Package gameinfo patches gameinfo_branchspecific.gi so the game also
// searches the community mods directory.
//
// Whether the file is patched is decided purely by the presence of Marker.
// PatchFile itself never checks: calling it on a patched file would insert a
// second block, so callers consult the patch state first.
package gameinfo

import (
	"bytes"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/fsutil"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/lines"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

const (
	// FileName is the config file this package patches.
	FileName = "gameinfo_branchspecific.gi"

	// BackupExt is the extension given to the one-time config backup.
	BackupExt = "gi_backup"

	// ModsDirName is the content directory the inserted block adds.
	ModsDirName = "DotaModdingCommunityMods"

	// Marker is the comment appended to the inserted block's opening line.
	// Its presence anywhere in the file means the file is patched.
	Marker = "// Patched by DotaModdingCommunity Patcher"
)

// trailingLines is the number of closing-brace lines that must stay last.
const trailingLines = 2

// InsertionBlock is the SearchPaths block inserted before the final two
// closing braces of the file.
const InsertionBlock = `		SearchPaths // Patched by DotaModdingCommunity Patcher
		{
			Game_Language		dota_*LANGUAGE*

			Game_LowViolence	dota_lv

			Game				DotaModdingCommunityMods
			Game				dota
			Game				core

			Mod					DotaModdingCommunityMods
			Mod					dota

			Write				dota

			AddonRoot_Language	dota_*LANGUAGE*_addons

			AddonRoot			dota_addons

			PublicContent		dota_core
			PublicContent		core
		}`

// BlockLineCount returns the number of lines InsertionBlock spans.
func BlockLineCount() int {
	return strings.Count(InsertionBlock, "\n") + 1
}

// IsPatched reports whether content carries Marker.
func IsPatched(content []byte) bool {
	return bytes.Contains(content, []byte(Marker))
}

// Insert returns content with InsertionBlock inserted as a new element two
// lines before the end. Lines are re-joined with "\n" and no final newline.
// Content with fewer than two lines is a *patcherr.FormatError.
func Insert(content string) (string, error) {
	all := lines.Split(content)
	if len(all) < trailingLines {
		return "", &patcherr.FormatError{
			Message: "config needs at least 2 lines to keep its closing braces last",
		}
	}

	at := len(all) - trailingLines
	out := make([]string, 0, len(all)+1)
	out = append(out, all[:at]...)
	out = append(out, InsertionBlock)
	out = append(out, all[at:]...)

	return strings.Join(out, "\n"), nil
}

// CheckFile reports whether the file at path can take InsertionBlock. It
// writes nothing, so callers can refuse a file before taking backups.
func CheckFile(path string) error {
	_, err := patchedContent(path)
	return err
}

// PatchFile inserts InsertionBlock into the file at path and rewrites it in
// one atomic replace.
func PatchFile(path string) error {
	patched, err := patchedContent(path)
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(path, []byte(patched), 0o644); err != nil {
		return &patcherr.IOError{Op: "write", Path: path, Cause: err}
	}

	return nil
}

func patchedContent(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &patcherr.IOError{Op: "read", Path: path, Cause: err}
	}

	patched, err := Insert(string(content))
	if err != nil {
		if fe, ok := err.(*patcherr.FormatError); ok {
			fe.Path = path
		}
		return "", err
	}
	return patched, nil
}
