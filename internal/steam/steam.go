// Package steam finds the Dota 2 installation through Steam's own metadata.
//
// The Steam root holds steamapps/libraryfolders.vdf, which lists every
// library folder and the app IDs installed in each. The library that owns
// app 570 has steamapps/appmanifest_570.acf, whose installdir names the
// folder under steamapps/common.
package steam

import (
	"errors"
	"path/filepath"
)

// DotaAppID is Dota 2's Steam application ID.
const DotaAppID = "570"

var (
	// ErrSteamNotFound means no candidate directory looked like a Steam root.
	ErrSteamNotFound = errors.New("could not find Steam installation")
	// ErrAppNotInstalled means no Steam library lists the app.
	ErrAppNotInstalled = errors.New("app 570 (Dota 2) is not installed in any Steam library")
)

// Paths are the files of one Dota 2 installation that dmcpatch touches.
type Paths struct {
	// GameDir is the install root, e.g. .../steamapps/common/dota 2 beta.
	GameDir    string `yaml:"game_dir"`
	GameInfo   string `yaml:"gameinfo"`
	Signatures string `yaml:"signatures"`
	ModsDir    string `yaml:"mods_dir"`
}

// PathsFor derives the file locations from an install root.
func PathsFor(gameDir string) Paths {
	game := filepath.Join(gameDir, "game")
	return Paths{
		GameDir:    gameDir,
		GameInfo:   filepath.Join(game, "dota", "gameinfo_branchspecific.gi"),
		Signatures: filepath.Join(game, "bin", "win64", "dota.signatures"),
		ModsDir:    filepath.Join(game, "DotaModdingCommunityMods"),
	}
}
