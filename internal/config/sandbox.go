package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM removes everything from the VM that reaches outside the
// process: the os, io and debug libraries and every way of loading code,
// including the package table whose loaders search package.path.
// string, table, math and the basic functions stay available.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range []string{
		"os",
		"io",
		"debug",
		"package",
		"require",
		"module",
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{
		CallStackSize: 256,
		RegistrySize:  8 * 1024,
	})
	sandboxLuaVM(L)
	return L
}
