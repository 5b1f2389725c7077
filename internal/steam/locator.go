package steam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strconv"
)

// Locator resolves the Dota 2 installation paths.
type Locator struct {
	// SteamRoot skips root discovery when set.
	SteamRoot string
	// GameDir skips Steam entirely when set.
	GameDir string
	// Roots are the candidates searched when SteamRoot is empty. Nil means
	// DefaultRoots(runtime.GOOS).
	Roots []string

	logger *slog.Logger
}

// NewLocator returns a Locator. Either override may be empty.
func NewLocator(steamRoot, gameDir string, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Locator{SteamRoot: steamRoot, GameDir: gameDir, logger: logger}
}

// Locate returns the installation paths.
func (l *Locator) Locate(ctx context.Context) (Paths, error) {
	if l.GameDir != "" {
		l.log().Debug("using configured game directory", "game_dir", l.GameDir)
		return PathsFor(l.GameDir), nil
	}

	root, err := l.FindRoot()
	if err != nil {
		return Paths{}, err
	}
	if err := ctx.Err(); err != nil {
		return Paths{}, err
	}

	gameDir, err := FindApp(root, DotaAppID)
	if err != nil {
		return Paths{}, err
	}

	l.log().Debug("located game", "steam_root", root, "game_dir", gameDir)
	return PathsFor(gameDir), nil
}

// FindRoot returns the configured Steam root, or the first candidate that
// has a steamapps directory.
func (l *Locator) FindRoot() (string, error) {
	if l.SteamRoot != "" {
		if !isRoot(l.SteamRoot) {
			return "", fmt.Errorf("%w: %s has no steamapps directory", ErrSteamNotFound, l.SteamRoot)
		}
		return l.SteamRoot, nil
	}

	roots := l.Roots
	if roots == nil {
		roots = DefaultRoots(runtime.GOOS)
	}
	for _, dir := range roots {
		if isRoot(dir) {
			return dir, nil
		}
		l.log().Debug("not a Steam root", "dir", dir)
	}
	return "", ErrSteamNotFound
}

func (l *Locator) log() *slog.Logger {
	if l.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.logger
}

// Libraries returns the library folders listed in root's
// libraryfolders.vdf, mapped to the app IDs each one declares. Old-format
// files carry no app lists, so those libraries map to nil. root itself is
// always included.
func Libraries(root string) (map[string][]string, error) {
	libs := map[string][]string{}

	path := filepath.Join(root, "steamapps", "libraryfolders.vdf")
	doc, err := readVDF(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			libs[root] = nil
			return libs, nil
		}
		return nil, err
	}

	folders, ok := childMap(doc, "libraryfolders")
	if !ok {
		return nil, fmt.Errorf("parse %s: missing libraryfolders section", path)
	}

	for key, v := range folders {
		if _, err := strconv.Atoi(key); err != nil {
			continue
		}
		switch entry := v.(type) {
		case string:
			libs[filepath.Clean(entry)] = nil
		case map[string]interface{}:
			dir, ok := childString(entry, "path")
			if !ok {
				continue
			}
			var apps []string
			if appMap, ok := childMap(entry, "apps"); ok {
				for id := range appMap {
					apps = append(apps, id)
				}
				sort.Strings(apps)
			}
			libs[filepath.Clean(dir)] = apps
		}
	}

	if _, ok := libs[root]; !ok {
		libs[root] = nil
	}
	return libs, nil
}

// FindApp returns the install directory of appID. Libraries that list the
// app are tried first; any library holding the app manifest counts.
func FindApp(root, appID string) (string, error) {
	libs, err := Libraries(root)
	if err != nil {
		return "", err
	}

	var listed, unlisted []string
	for dir, apps := range libs {
		if slices.Contains(apps, appID) {
			listed = append(listed, dir)
		} else {
			unlisted = append(unlisted, dir)
		}
	}
	sort.Strings(listed)
	sort.Strings(unlisted)

	for _, lib := range append(listed, unlisted...) {
		installDir, err := readInstallDir(lib, appID)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return filepath.Join(lib, "steamapps", "common", installDir), nil
	}
	return "", ErrAppNotInstalled
}

// readInstallDir reads installdir from lib's appmanifest_<appID>.acf.
func readInstallDir(lib, appID string) (string, error) {
	path := filepath.Join(lib, "steamapps", "appmanifest_"+appID+".acf")
	doc, err := readVDF(path)
	if err != nil {
		return "", err
	}

	state, ok := childMap(doc, "AppState")
	if !ok {
		return "", fmt.Errorf("parse %s: missing AppState section", path)
	}
	dir, ok := childString(state, "installdir")
	if !ok || dir == "" {
		return "", fmt.Errorf("parse %s: missing installdir", path)
	}
	return dir, nil
}
