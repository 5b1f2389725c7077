// Package config loads dmcpatch settings from a Lua file.
//
// The file runs in a sandboxed gopher-lua VM with a read-only platform table
// injected, and must assign a global dmcpatch table:
//
//	dmcpatch = {
//	  steam_root = "/custom/Steam",          -- optional, skips Steam root discovery
//	  game_dir = "/games/dota 2 beta",       -- optional, skips Steam entirely
//	  process_names = {
//	    platform.when(platform.is_windows, "dota2.exe"),
//	    platform.when(platform.is_linux, "dota2"),
//	  },
//	  pause_seconds = 8,
//	  log_level = "info",
//	}
//
// Fields that are left out keep the values from Default. Nil entries in
// process_names, such as a false platform.when, are skipped.
//
// The file is found by ResolvePath: the --config flag, then $DMCPATCH_CONFIG,
// then dmcpatch.lua in $DMCPATCH_CONFIG_DIR or in dmcpatch/ under
// os.UserConfigDir. Only a missing default file is tolerated. An empty
// process_names list disables the running-game check.
package config
