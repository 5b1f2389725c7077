// Package backup keeps a one-time safety copy of a file before it is first
// modified. The first copy wins: once a backup exists it is never
// overwritten, so it always holds the pre-patch content.
package backup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/fsutil"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

// Result describes what Ensure did.
type Result struct {
	// Path is the derived backup path.
	Path string
	// Created is true when this call wrote the backup.
	Created bool
}

// PathFor derives the backup path by replacing the extension of target with
// ext. A target without an extension gets ".ext" appended.
//
//	PathFor("game/dota/gameinfo_branchspecific.gi", "gi_backup")
//	  -> "game/dota/gameinfo_branchspecific.gi_backup"
func PathFor(target, ext string) string {
	ext = strings.TrimPrefix(ext, ".")

	base := filepath.Base(target)
	current := filepath.Ext(base)
	if current == base {
		// dotfile such as ".profile": the whole name is the stem
		current = ""
	}

	return strings.TrimSuffix(target, current) + "." + ext
}

// Exists reports whether the backup for target already exists.
func Exists(target, ext string) (bool, error) {
	path := PathFor(target, ext)
	ok, err := fsutil.Exists(path)
	if err != nil {
		return false, &patcherr.IOError{Op: "stat", Path: path, Cause: err}
	}
	return ok, nil
}

// Ensure copies target to its backup path unless a backup already exists.
// The copy is written atomically, so an interrupted run never leaves a
// truncated backup that would later be mistaken for the original.
func Ensure(target, ext string) (Result, error) {
	backupPath := PathFor(target, ext)

	exists, err := fsutil.Exists(backupPath)
	if err != nil {
		return Result{}, &patcherr.IOError{Op: "stat", Path: backupPath, Cause: err}
	}
	if exists {
		return Result{Path: backupPath, Created: false}, nil
	}

	info, err := os.Stat(target)
	if err != nil {
		return Result{}, &patcherr.IOError{Op: "stat", Path: target, Cause: err}
	}

	content, err := os.ReadFile(target)
	if err != nil {
		return Result{}, &patcherr.IOError{Op: "read", Path: target, Cause: err}
	}

	if err := fsutil.WriteFileAtomic(backupPath, content, info.Mode().Perm()); err != nil {
		return Result{}, &patcherr.IOError{Op: "copy", Path: backupPath, Cause: err}
	}

	return Result{Path: backupPath, Created: true}, nil
}
