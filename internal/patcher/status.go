package patcher

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/backup"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/fsutil"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/gameinfo"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/manifest"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patchstate"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/steam"
)

// Status is a read-only view of an installation.
type Status struct {
	Paths  steam.Paths
	Report patchstate.Report
	// Action is what Run would do next.
	Action patchstate.Action

	ConfigBackup   bool
	ManifestBackup bool
	ModsDir        bool
}

// Status locates the installation and inspects it without writing.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	paths, err := e.locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("locate game: %w", err)
	}
	return Inspect(paths)
}

// Inspect reports the state of the installation at paths.
func Inspect(paths steam.Paths) (*Status, error) {
	report, err := patchstate.Inspect(paths.GameInfo, paths.Signatures)
	if err != nil {
		return nil, err
	}

	st := &Status{Paths: paths, Report: report, Action: report.State.Action()}

	if st.ConfigBackup, err = backup.Exists(paths.GameInfo, gameinfo.BackupExt); err != nil {
		return nil, err
	}
	if st.ManifestBackup, err = backup.Exists(paths.Signatures, manifest.BackupExt); err != nil {
		return nil, err
	}
	if st.ModsDir, err = fsutil.Exists(paths.ModsDir); err != nil {
		return nil, err
	}
	return st, nil
}
