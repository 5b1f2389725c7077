package config

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestSandboxLuaVM(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		errMsg string // empty means the code must run
	}{
		{"string library", `x = string.upper("dota2")`, ""},
		{"table library", `t = {"a"}; table.insert(t, "b"); x = table.concat(t, ",")`, ""},
		{"math library", `x = math.floor(8.9)`, ""},
		{"basic functions", `x = type(tonumber("8")) .. tostring(8)`, ""},
		{"pairs", `for k, v in pairs({a = 1}) do end`, ""},

		{"os.execute", `os.execute("taskkill /im dota2.exe")`, "attempt to index"},
		{"os.getenv", `x = os.getenv("STEAM_ROOT")`, "attempt to index"},
		{"io.open", `f = io.open("gameinfo_branchspecific.gi")`, "attempt to index"},
		{"io.popen", `f = io.popen("ls")`, "attempt to index"},
		{"debug", `debug.getinfo(1)`, "attempt to index"},
		{"package removed", `assert(package == nil, "package is reachable")`, ""},
		{"package loader", `package.path = "/tmp/?.lua"; package.loaders[2]("evil")()`, "attempt to index"},
		{"require", `m = require("socket")`, "attempt to call"},
		{"module", `module("evil")`, "attempt to call"},
		{"dofile", `dofile("evil.lua")`, "attempt to call"},
		{"loadfile", `f = loadfile("evil.lua")`, "attempt to call"},
		{"load", `f = load("return 1")`, "attempt to call"},
		{"loadstring", `f = loadstring("return 1")`, "attempt to call"},
		{"collectgarbage", `collectgarbage()`, "attempt to call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newSandboxedVM()
			defer L.Close()

			err := L.DoString(tt.code)
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("DoString(%q) error = %v", tt.code, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("DoString(%q) succeeded, want error", tt.code)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("DoString(%q) error = %v, want substring %q", tt.code, err, tt.errMsg)
			}
		})
	}
}

func TestNewSandboxedVM(t *testing.T) {
	L := newSandboxedVM()
	defer L.Close()

	for _, name := range []string{"os", "io", "debug", "package", "require", "load"} {
		if v := L.GetGlobal(name); v.Type() != lua.LTNil {
			t.Errorf("global %s = %v, want nil", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math"} {
		if v := L.GetGlobal(name); v.Type() != lua.LTTable {
			t.Errorf("global %s = %v, want table", name, v.Type())
		}
	}
}
