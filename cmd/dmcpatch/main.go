// Command dmcpatch patches a Dota 2 installation so the game loads the
// DotaModdingCommunityMods search path.
//
// Run without arguments it patches interactively. Set as a Steam launch
// option ("dmcpatch %command%") it patches quietly and then starts the game
// with the forwarded arguments.
package main

import (
	"io"
	"os"
	"time"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/process"
)

// Set at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout:      stdout,
		stderr:      stderr,
		launcher:    process.ExecLauncher{},
		sleep:       time.Sleep,
		interactive: stdoutIsTerminal,
	}
	return a.execute(args)
}
