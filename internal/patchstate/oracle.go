package patchstate

import (
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/checksum"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/gameinfo"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/manifest"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

// Report is the full outcome of a classification, for callers that want to
// show why a state was chosen.
type Report struct {
	State State
	// Current is the checksum of the config bytes that were classified.
	Current checksum.Record
	// Recorded is the manifest's last record; zero when HasRecord is false.
	Recorded  checksum.Record
	HasRecord bool
}

// Classify returns the patch state of a config/manifest pair. It performs no
// I/O. A malformed last manifest record is reported as *patcherr.FormatError;
// a missing record is simply "manifest not patched".
func Classify(config []byte, manifestText string) (State, error) {
	report, err := Analyze(config, manifestText)
	if err != nil {
		return StateNeither, err
	}
	return report.State, nil
}

// Analyze is Classify with the intermediate checksums kept.
//
// A record that is present but does not match the current config is treated
// the same as no record: the manifest needs a new record appended. Stale
// records are never removed.
func Analyze(config []byte, manifestText string) (Report, error) {
	recorded, hasRecord, err := manifest.ParseLast(manifestText)
	if err != nil {
		return Report{}, err
	}

	current := checksum.FromBytes(config)
	configPatched := gameinfo.IsPatched(config)
	manifestPatched := hasRecord && recorded.Equal(current)

	return Report{
		State:     fromFlags(configPatched, manifestPatched),
		Current:   current,
		Recorded:  recorded,
		HasRecord: hasRecord,
	}, nil
}

// Inspect reads both files and classifies them.
func Inspect(configPath, manifestPath string) (Report, error) {
	config, err := os.ReadFile(configPath)
	if err != nil {
		return Report{}, &patcherr.IOError{Op: "read", Path: configPath, Cause: err}
	}

	manifestText, err := os.ReadFile(manifestPath)
	if err != nil {
		return Report{}, &patcherr.IOError{Op: "read", Path: manifestPath, Cause: err}
	}

	report, err := Analyze(config, string(manifestText))
	if err != nil {
		if fe, ok := err.(*patcherr.FormatError); ok {
			fe.Path = manifestPath
		}
		return Report{}, fmt.Errorf("classify patch state: %w", err)
	}

	return report, nil
}
