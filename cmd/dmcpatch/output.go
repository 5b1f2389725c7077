package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcher"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patchstate"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	noticeColor  = color.New(color.FgYellow)
)

const bannerArt = `▒▒▒▒▒▒▒▒▒▒▒     ▒▒▒▒▒▒▒▒▒▒▒   ░▒▒▒▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒▒▒▒░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒░░▒▒▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒▒▒░░░▒░▒▒▒▒▒▒▒▒▒▒▒▒░▒░░▒▒▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒▒▒░░░▒░░▒▒▒▒▒▒▒▒▒▒░░▒░░░▒▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒▒░░░░▒░░▒▒▒▒▒▒▒▒▒░░░▒░░░▒▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒▒░░░░░░░░▒▒▒▒▒▒▒▒░░░▒░░░░▒▒▒▒▒▒▒▒▒▒
░░▒▒▒▒▒▒▒▒░░░░░░░░░▒▒▒▒▒▒▒░░░░▒░░░░▒▒▒▒▒▒▒▒░▒
░░░▒▒▒▒▒▒▒░░░░▒▒░░░░▒▒▒▒▒░░░░░▒░░░░░▒▒▒▒▒▒▒▒
░░░▒▒▒▒▒▒░░░░░▒▒░░░░░▒▒▒▒░░░░▒▒░░░░░▒▒▒▒▒▒▒▓
░░░▒▒▒▒▒▒░░░░░▒▒▒░░░░▒▒▒░░░░░▒▒░░░░░░▒▒▒▒▒▒▒▒
 ░░▒▒▒▒▒░░░░░░▒▒▒▒░░░░▒░░░░░▒▒▒▒░░░░░▒▒▒▒▒▒▒▒
 ░░░▒▒▒▒░░░░░░▒▒▒▒▒░░░▒░░░░▒▒▒▒▒░░░░░░▒▒▒▒▒▒▒
░▒▒▒▒▒▒▒░░░░░░▒▒▒▒▒░░░▒░░░▒▒▒▒▒▒░░░░░░▒▒▒▒▒▒
░░░▒▒▒▒░░░░░░░▒▒▒▒▒▒░░▒░░░▒▒▒▒▒▒░░░░░░░▒▒▒▒▒▒
 ░░▒▒▒▒░░░░░░░▒▒▒▒▒▒▒░▒░░▒▒▒▒▒▒▒░░░░░░░▒▒▒▒▒▒
 ░░░▒▒░░░░░░░▒▒▒▒▒▒▒▒░▒░▒▒▒▒▒▒▒▒░░░░░░░▒▒▒▒▒▒
 ░░▒▒▒░░░░░░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒░░░░░░░▒▒▒▒▒
 ░░▒▒░░░░░░░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒░░░░░░░▒▒▒▒▒
░░░▒▒▒▒░░░░░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒░░░░░░░▒▒▒▒▒
░░░▒▒▒▒▒▒░░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒░░░▒▒▒▒▒▒▒▒
░░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒
░░░░░░░░░░░░░░░░░░▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒░░░▒
  ░░            ░░░░░░░░░░░░░░░░░░░░░░░░░`

func printBanner(w io.Writer, version string) {
	fmt.Fprintf(w, "   Dota Modding Community Patcher v%s\n", version)
	fmt.Fprintln(w, bannerArt)
	fmt.Fprintln(w)
}

func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}

func printResult(w io.Writer, res *patcher.Result) {
	switch res.Action {
	case patchstate.ActionNone:
		successColor.Fprintln(w, "Already patched, nothing to do.")
	case patchstate.ActionAppendManifest:
		noticeColor.Fprintln(w, "Config was already patched; recorded its checksum in dota.signatures.")
		successColor.Fprintln(w, "Patch successful!")
	default:
		successColor.Fprintln(w, "Patch successful!")
	}

	if res.ConfigBackup.Created {
		fmt.Fprintf(w, "  backup: %s\n", res.ConfigBackup.Path)
	}
	if res.ManifestBackup.Created {
		fmt.Fprintf(w, "  backup: %s\n", res.ManifestBackup.Path)
	}
	if res.ModsDirCreated {
		fmt.Fprintf(w, "  created: %s\n", res.Paths.ModsDir)
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
