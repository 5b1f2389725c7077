// Package process checks for a running game and starts it in launcher mode.
package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	ps "github.com/shirou/gopsutil/v4/process"
)

// Checker reports whether a process matching one of Names is running.
type Checker struct {
	Names []string

	// list returns the names of all running processes. Tests replace it.
	list func(ctx context.Context) ([]string, error)
}

// NewChecker returns a Checker backed by gopsutil.
func NewChecker(names []string) *Checker {
	return &Checker{Names: names, list: runningNames}
}

// Running reports whether any running process matches. An empty Names list
// never matches.
func (c *Checker) Running(ctx context.Context) (bool, error) {
	found, err := c.Find(ctx)
	return found != "", err
}

// Find returns the name of the first running process that matches, or ""
// if none does.
func (c *Checker) Find(ctx context.Context) (string, error) {
	if len(c.Names) == 0 {
		return "", nil
	}

	list := c.list
	if list == nil {
		list = runningNames
	}
	procs, err := list(ctx)
	if err != nil {
		return "", fmt.Errorf("list processes: %w", err)
	}

	for _, name := range procs {
		if Matches(name, c.Names) {
			return name, nil
		}
	}
	return "", nil
}

// Matches reports whether procName equals or contains one of names,
// ignoring case.
func Matches(procName string, names []string) bool {
	p := strings.ToLower(procName)
	if p == "" {
		return false
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if strings.Contains(p, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// runningNames lists process names through gopsutil. Processes that exit
// or deny access mid-scan are skipped.
func runningNames(ctx context.Context) ([]string, error) {
	procs, err := ps.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// ExecLauncher starts the game as a detached child with the patcher's
// standard streams.
type ExecLauncher struct{}

// Launch starts exe with args and returns once it is running. The child
// outlives the patcher.
func (ExecLauncher) Launch(ctx context.Context, exe string, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", exe, err)
	}
	return cmd.Process.Release()
}
