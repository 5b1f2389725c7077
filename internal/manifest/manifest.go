// Package manifest reads and extends dota.signatures, the integrity manifest
// the game checks gameinfo_branchspecific.gi against.
//
// The manifest is append-only and line oriented. Only its last line is
// interpreted, and only when it starts with RecordPrefix:
//
//	...\..\..\dota\gameinfo_branchspecific.gi~SHA1:<40 hex>;CRC:<8 hex>
//
// Older records stay in the file untouched.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/checksum"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/fsutil"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/lines"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

const (
	// RecordPrefix marks a line as a checksum record candidate.
	RecordPrefix = "..."

	// Reference is the path of gameinfo_branchspecific.gi relative to the
	// manifest directory (game/bin/win64). It is a fixed part of the record
	// format, not computed from the filesystem.
	Reference = `...\..\..\dota\gameinfo_branchspecific.gi`

	// BackupExt is the extension given to the one-time manifest backup.
	BackupExt = "signatures_backup"
)

// Field separators within a record line.
const (
	refSeparator   = "~"
	fieldSeparator = ";"
	valueSeparator = ":"
)

// ParseLast extracts the checksum record from the last line of text.
//
// ok is false with a nil error when the last line is not a record (or text is
// empty): an unpatched manifest is a valid state. A last line that starts
// with RecordPrefix but is missing a separator returns a *patcherr.FormatError.
func ParseLast(text string) (rec checksum.Record, ok bool, err error) {
	last, lineNo, found := lines.Last(text)
	if !found || !strings.HasPrefix(last, RecordPrefix) {
		return checksum.Record{}, false, nil
	}

	rec, err = parseRecord(last)
	if err != nil {
		return checksum.Record{}, false, &patcherr.FormatError{Line: lineNo, Message: err.Error()}
	}
	return rec, true, nil
}

// parseRecord splits a record line into its SHA1 and CRC values.
func parseRecord(line string) (checksum.Record, error) {
	_, info, found := strings.Cut(line, refSeparator)
	if !found {
		return checksum.Record{}, fmt.Errorf("missing '~' between reference and checksums in %q", line)
	}

	fields := strings.Split(info, fieldSeparator)
	if len(fields) < 2 {
		return checksum.Record{}, fmt.Errorf("missing ';' between SHA1 and CRC in %q", info)
	}

	sha, err := fieldValue(fields[0])
	if err != nil {
		return checksum.Record{}, err
	}
	crc, err := fieldValue(fields[1])
	if err != nil {
		return checksum.Record{}, err
	}

	return checksum.Record{SHA1: sha, CRC: crc}, nil
}

// fieldValue returns the token after the first ':' of a "NAME:value" field.
func fieldValue(field string) (string, error) {
	parts := strings.Split(field, valueSeparator)
	if len(parts) < 2 {
		return "", fmt.Errorf("missing ':' in field %q", field)
	}
	return strings.TrimSpace(parts[1]), nil
}

// LastLine returns the authoritative line of a manifest, or "" when text has
// no lines.
func LastLine(text string) string {
	last, _, _ := lines.Last(text)
	return last
}

// FormatRecord renders the record line that references gameinfo.
func FormatRecord(rec checksum.Record) string {
	return Reference + refSeparator + rec.String()
}

// CountRecords returns how many lines of text are record candidates.
func CountRecords(text string) int {
	n := 0
	for _, l := range lines.Split(text) {
		if strings.HasPrefix(l, RecordPrefix) {
			n++
		}
	}
	return n
}

// Append computes the record of the config file at configPath and appends it
// as a new last line of the manifest at manifestPath. It must run after the
// config has been patched so the record describes the patched content.
//
// The record is computed before anything is written, and the manifest is
// replaced in one atomic write, so a failure never leaves a partial line.
func Append(manifestPath, configPath string) (checksum.Record, error) {
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return checksum.Record{}, &patcherr.IOError{Op: "read", Path: manifestPath, Cause: err}
	}

	rec, err := checksum.FromFile(configPath)
	if err != nil {
		return checksum.Record{}, err
	}

	var sb strings.Builder
	sb.Grow(len(content) + len(Reference) + 64)
	sb.Write(content)
	sb.WriteString("\n")
	sb.WriteString(FormatRecord(rec))

	if err := fsutil.WriteFileAtomic(manifestPath, []byte(sb.String()), 0o644); err != nil {
		return checksum.Record{}, &patcherr.IOError{Op: "write", Path: manifestPath, Cause: err}
	}

	return rec, nil
}
