// Package patcher runs the patch sequence against a Dota 2 installation.
//
// The sequence is driven entirely by patchstate: the engine classifies the
// two files, performs the single action the state calls for, then
// classifies again to confirm both files now carry the patch. Running it
// on an already patched installation changes nothing.
package patcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/backup"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/checksum"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/gameinfo"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/manifest"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patchstate"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/steam"
)

// Locator finds the installation to patch.
type Locator interface {
	Locate(ctx context.Context) (steam.Paths, error)
}

// ProcessChecker reports whether the game is running.
type ProcessChecker interface {
	Running(ctx context.Context) (bool, error)
}

// Launcher starts the game after patching.
type Launcher interface {
	Launch(ctx context.Context, exe string, args []string) error
}

// ErrNoLauncher is returned by Engine.Launch when no Launcher was set.
var ErrNoLauncher = errors.New("no launcher configured")

// Options select the optional steps of Run.
type Options struct {
	// CheckProcess refuses to patch while the game is running.
	CheckProcess bool
	// CreateModsDir creates the mods directory after patching.
	CreateModsDir bool
}

// Result describes what a Run did.
type Result struct {
	Paths  steam.Paths
	Before patchstate.State
	Action patchstate.Action
	After  patchstate.State

	ConfigBackup   backup.Result
	ManifestBackup backup.Result

	// Record is the manifest record appended by this run, zero if none.
	Record checksum.Record

	ModsDirCreated bool
}

// Changed reports whether the run modified anything on disk: a patched
// file or a newly created mods directory.
func (r *Result) Changed() bool {
	return r.Action != patchstate.ActionNone || r.ModsDirCreated
}

// Engine runs the patch sequence with injected collaborators.
type Engine struct {
	locator  Locator
	checker  ProcessChecker
	launcher Launcher
	logger   *slog.Logger
}

// New creates an Engine. checker and launcher may be nil when the caller
// never asks for their steps.
func New(locator Locator, checker ProcessChecker, launcher Launcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{locator: locator, checker: checker, launcher: launcher, logger: logger}
}

// Run checks preconditions, locates the installation and patches it.
func (e *Engine) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.CheckProcess && e.checker != nil {
		running, err := e.checker.Running(ctx)
		if err != nil {
			return nil, fmt.Errorf("check game process: %w", err)
		}
		if running {
			return nil, &patcherr.PreconditionError{Message: "Dota 2 is currently running, close it and try again"}
		}
	}

	paths, err := e.locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("locate game: %w", err)
	}

	res, err := Apply(paths, e.logger)
	if err != nil {
		return nil, err
	}

	if opts.CreateModsDir {
		created, err := EnsureModsDir(paths.ModsDir)
		if err != nil {
			return nil, err
		}
		res.ModsDirCreated = created
		if created {
			e.logger.Info("created mods directory", "path", paths.ModsDir)
		}
	}

	return res, nil
}

// Launch starts the game through the configured Launcher.
func (e *Engine) Launch(ctx context.Context, exe string, args []string) error {
	if e.launcher == nil {
		return ErrNoLauncher
	}
	e.logger.Info("launching game", "exe", exe, "args", args)
	return e.launcher.Launch(ctx, exe, args)
}

// Apply brings the installation at paths into the fully patched state.
//
// The config is checked and backups are taken for every file about to
// change before either file is written. A config that cannot be patched or a
// failed backup stops the run with nothing modified.
func Apply(paths steam.Paths, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	before, err := patchstate.Inspect(paths.GameInfo, paths.Signatures)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Paths:  paths,
		Before: before.State,
		Action: before.State.Action(),
	}
	logger.Debug("classified installation",
		"state", res.Before.String(),
		"action", res.Action.String(),
		"config_sha1", before.Current.SHA1,
		"has_record", before.HasRecord,
	)

	switch res.Action {
	case patchstate.ActionNone:
		logger.Info("already patched", "gameinfo", paths.GameInfo)
		res.After = before.State
		return res, nil

	case patchstate.ActionPatchBoth:
		if err := gameinfo.CheckFile(paths.GameInfo); err != nil {
			return nil, fmt.Errorf("patch config: %w", err)
		}
		if res.ConfigBackup, err = backup.Ensure(paths.GameInfo, gameinfo.BackupExt); err != nil {
			return nil, fmt.Errorf("back up config: %w", err)
		}
		if res.ManifestBackup, err = backup.Ensure(paths.Signatures, manifest.BackupExt); err != nil {
			return nil, fmt.Errorf("back up manifest: %w", err)
		}
		if err := gameinfo.PatchFile(paths.GameInfo); err != nil {
			return nil, fmt.Errorf("patch config: %w", err)
		}
		logger.Info("patched config", "path", paths.GameInfo, "backup_created", res.ConfigBackup.Created)

	case patchstate.ActionAppendManifest:
		if res.ManifestBackup, err = backup.Ensure(paths.Signatures, manifest.BackupExt); err != nil {
			return nil, fmt.Errorf("back up manifest: %w", err)
		}
	}

	if res.Record, err = manifest.Append(paths.Signatures, paths.GameInfo); err != nil {
		return nil, fmt.Errorf("append manifest record: %w", err)
	}
	logger.Info("appended manifest record", "path", paths.Signatures, "sha1", res.Record.SHA1, "crc", res.Record.CRC)

	after, err := patchstate.Inspect(paths.GameInfo, paths.Signatures)
	if err != nil {
		return nil, fmt.Errorf("verify patch: %w", err)
	}
	res.After = after.State
	if after.State != patchstate.StateBoth {
		return nil, fmt.Errorf("verify patch: installation is %s after %s", after.State, res.Action)
	}

	return res, nil
}
