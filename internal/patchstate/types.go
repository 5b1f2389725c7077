// Package patchstate decides, from file content alone, whether the config
// file and the integrity manifest already carry the patch.
//
// There is no stored flag. The config is patched when it contains the
// gameinfo marker; the manifest is patched when its last record matches the
// checksum of the config's current bytes. The two answers combine into one
// of four states, each with exactly one corrective action.
package patchstate

// State is the combined patch state of the config file and the manifest.
type State int

const (
	// StateNeither: config lacks the marker and the manifest does not
	// describe the current config.
	StateNeither State = iota
	// StateConfigOnly: config is patched but the manifest's last record is
	// stale or absent, e.g. a previous run stopped between the two writes.
	StateConfigOnly
	// StateManifestOnly: the manifest matches the config but the config has
	// no marker. The engine never produces this; it means the files were
	// replaced externally.
	StateManifestOnly
	// StateBoth: config is patched and the manifest describes it.
	StateBoth
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateNeither:
		return "NEITHER"
	case StateConfigOnly:
		return "CONFIG_ONLY"
	case StateManifestOnly:
		return "MANIFEST_ONLY"
	case StateBoth:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

// ConfigPatched reports whether the config file carries the marker.
func (s State) ConfigPatched() bool {
	return s == StateConfigOnly || s == StateBoth
}

// ManifestPatched reports whether the manifest describes the current config.
func (s State) ManifestPatched() bool {
	return s == StateManifestOnly || s == StateBoth
}

// Action is the corrective step a state calls for.
type Action int

const (
	// ActionNone: nothing to do.
	ActionNone Action = iota
	// ActionAppendManifest: append a fresh record for the already patched config.
	ActionAppendManifest
	// ActionPatchBoth: patch the config, then append a record for it.
	ActionPatchBoth
)

// String returns human-readable action name
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "NONE"
	case ActionAppendManifest:
		return "APPEND_MANIFEST"
	case ActionPatchBoth:
		return "PATCH_BOTH"
	default:
		return "UNKNOWN"
	}
}

// Action maps the state to its corrective action.
//
// StateManifestOnly maps to ActionPatchBoth: once the config is patched its
// checksum changes, so the matching record becomes stale and a new one is
// needed anyway.
func (s State) Action() Action {
	switch s {
	case StateBoth:
		return ActionNone
	case StateConfigOnly:
		return ActionAppendManifest
	case StateNeither, StateManifestOnly:
		return ActionPatchBoth
	default:
		return ActionPatchBoth
	}
}

// fromFlags combines the two independent checks into a State.
func fromFlags(configPatched, manifestPatched bool) State {
	switch {
	case configPatched && manifestPatched:
		return StateBoth
	case configPatched:
		return StateConfigOnly
	case manifestPatched:
		return StateManifestOnly
	default:
		return StateNeither
	}
}
