package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/checksum"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcher"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/steam"
)

// statusView is the serialized form of patcher.Status.
type statusView struct {
	State          string           `yaml:"state"`
	Action         string           `yaml:"action"`
	Paths          steam.Paths      `yaml:"paths"`
	ConfigChecksum checksum.Record  `yaml:"config_checksum"`
	ManifestRecord *checksum.Record `yaml:"manifest_record,omitempty"`
	Backups        backupView       `yaml:"backups"`
	ModsDirExists  bool             `yaml:"mods_dir_exists"`
}

type backupView struct {
	Config   bool `yaml:"config"`
	Manifest bool `yaml:"manifest"`
}

func newStatusView(st *patcher.Status) statusView {
	v := statusView{
		State:          st.Report.State.String(),
		Action:         st.Action.String(),
		Paths:          st.Paths,
		ConfigChecksum: st.Report.Current,
		Backups:        backupView{Config: st.ConfigBackup, Manifest: st.ManifestBackup},
		ModsDirExists:  st.ModsDir,
	}
	if st.Report.HasRecord {
		rec := st.Report.Recorded
		v.ManifestRecord = &rec
	}
	return v
}

func (a *app) newStatusCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the installation is patched, without changing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return fmt.Errorf("unknown output format %q (expected text or yaml)", output)
			}

			s, err := a.setup(cmd)
			if err != nil {
				return err
			}
			st, err := s.engine.Status(cmd.Context())
			if err != nil {
				return err
			}

			view := newStatusView(st)
			if output == "yaml" {
				enc := yaml.NewEncoder(a.stdout)
				enc.SetIndent(2)
				if err := enc.Encode(view); err != nil {
					return fmt.Errorf("encode status: %w", err)
				}
				return enc.Close()
			}
			printStatus(a.stdout, view)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, yaml)")
	return cmd
}

func printStatus(w io.Writer, v statusView) {
	fmt.Fprintf(w, "State:      %s\n", v.State)
	fmt.Fprintf(w, "Next step:  %s\n", v.Action)
	fmt.Fprintf(w, "Game:       %s\n", v.Paths.GameDir)
	fmt.Fprintf(w, "Config:     %s (%s)\n", v.Paths.GameInfo, v.ConfigChecksum)
	if v.ManifestRecord != nil {
		fmt.Fprintf(w, "Manifest:   %s (last record %s)\n", v.Paths.Signatures, *v.ManifestRecord)
	} else {
		fmt.Fprintf(w, "Manifest:   %s (no record)\n", v.Paths.Signatures)
	}
	fmt.Fprintf(w, "Backups:    config=%t manifest=%t\n", v.Backups.Config, v.Backups.Manifest)
	fmt.Fprintf(w, "Mods dir:   %t\n", v.ModsDirExists)
}
