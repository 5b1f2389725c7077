package platform

import (
	lua "github.com/yuin/gopher-lua"
)

// InjectPlatformTable creates a read-only platform table and injects it into
// the Lua state as a global. Call it before running any user configuration.
//
// Fields: os, arch, distro, distro_version, is_windows, is_linux, is_macos,
// is_steam_deck, and the helper when(cond, value).
func InjectPlatformTable(L *lua.LState, info *Info) error {
	t := L.NewTable()

	L.SetField(t, "os", lua.LString(info.OS))
	L.SetField(t, "arch", lua.LString(info.Arch))

	if info.IsLinux() && info.Distro != "" {
		L.SetField(t, "distro", lua.LString(info.Distro))
		L.SetField(t, "distro_version", lua.LString(info.DistroVersion))
	} else {
		L.SetField(t, "distro", lua.LNil)
		L.SetField(t, "distro_version", lua.LNil)
	}

	L.SetField(t, "is_windows", lua.LBool(info.IsWindows()))
	L.SetField(t, "is_linux", lua.LBool(info.IsLinux()))
	L.SetField(t, "is_macos", lua.LBool(info.IsMacOS()))
	L.SetField(t, "is_steam_deck", lua.LBool(info.IsSteamDeck()))

	// when(condition, value) returns value if condition is true, nil otherwise
	L.SetField(t, "when", L.NewFunction(func(L *lua.LState) int {
		if L.CheckBool(1) {
			L.Push(L.Get(2))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))

	L.SetGlobal("platform", makeReadOnly(L, t))

	return nil
}

// makeReadOnly wraps table in an empty proxy whose metatable forwards reads
// and rejects writes.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)

	return proxy
}
