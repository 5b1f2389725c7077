package patcher

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

var errNotDir = errors.New("exists and is not a directory")

// EnsureModsDir creates dir if it does not exist. The parent must already
// exist: a missing game directory is an error, not something to create.
func EnsureModsDir(dir string) (created bool, err error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, &patcherr.IOError{Op: "mkdir", Path: dir, Cause: errNotDir}
		}
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, &patcherr.IOError{Op: "stat", Path: dir, Cause: err}
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return false, &patcherr.IOError{Op: "mkdir", Path: dir, Cause: err}
	}
	return true, nil
}
