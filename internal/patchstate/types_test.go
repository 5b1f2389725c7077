package patchstate

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"Neither", StateNeither, "NEITHER"},
		{"Config Only", StateConfigOnly, "CONFIG_ONLY"},
		{"Manifest Only", StateManifestOnly, "MANIFEST_ONLY"},
		{"Both", StateBoth, "BOTH"},
		{"Unknown", State(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_ActionIsExhaustive(t *testing.T) {
	tests := []struct {
		state           State
		configPatched   bool
		manifestPatched bool
		action          Action
	}{
		{StateNeither, false, false, ActionPatchBoth},
		{StateConfigOnly, true, false, ActionAppendManifest},
		{StateManifestOnly, false, true, ActionPatchBoth},
		{StateBoth, true, true, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := fromFlags(tt.configPatched, tt.manifestPatched); got != tt.state {
				t.Errorf("fromFlags(%v, %v) = %v, want %v", tt.configPatched, tt.manifestPatched, got, tt.state)
			}
			if got := tt.state.ConfigPatched(); got != tt.configPatched {
				t.Errorf("ConfigPatched() = %v, want %v", got, tt.configPatched)
			}
			if got := tt.state.ManifestPatched(); got != tt.manifestPatched {
				t.Errorf("ManifestPatched() = %v, want %v", got, tt.manifestPatched)
			}
			if got := tt.state.Action(); got != tt.action {
				t.Errorf("Action() = %v, want %v", got, tt.action)
			}
		})
	}
}

func TestAction_String(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "NONE"},
		{ActionAppendManifest, "APPEND_MANIFEST"},
		{ActionPatchBoth, "PATCH_BOTH"},
		{Action(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %v, want %v", int(tt.action), got, tt.want)
		}
	}
}
