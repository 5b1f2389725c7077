// Package checksum computes the (SHA-1, CRC-32) pair the integrity manifest
// stores for gameinfo_branchspecific.gi.
//
// Both values are produced in a single pass over the same byte stream:
//   - SHA-1 as 40 uppercase hex characters
//   - CRC-32 (IEEE polynomial, a.k.a. CRC-32/ISO-HDLC) as its four bytes in
//     little-endian order, each rendered as uppercase hex
package checksum

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcherr"
)

// DefaultChunkSize is the read buffer used by FromFile.
const DefaultChunkSize = 4096

// Record is a checksum pair over a file's full contents at a point in time.
type Record struct {
	SHA1 string `yaml:"sha1"`
	CRC  string `yaml:"crc"`
}

// Equal reports whether both fields match exactly.
func (r Record) Equal(other Record) bool {
	return r.SHA1 == other.SHA1 && r.CRC == other.CRC
}

// IsZero reports whether the record is empty.
func (r Record) IsZero() bool {
	return r.SHA1 == "" && r.CRC == ""
}

// String renders the record the way the manifest stores it.
func (r Record) String() string {
	return "SHA1:" + r.SHA1 + ";CRC:" + r.CRC
}

// FromFile streams the file at path and returns its checksum record.
// Open and read failures are reported as *patcherr.IOError.
func FromFile(path string) (Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return Record{}, &patcherr.IOError{Op: "open", Path: path, Cause: err}
	}
	defer file.Close()

	rec, err := FromReader(file, DefaultChunkSize)
	if err != nil {
		return Record{}, &patcherr.IOError{Op: "read", Path: path, Cause: err}
	}
	return rec, nil
}

// FromReader consumes r in chunks of chunkSize bytes, feeding every chunk to
// both hashes. A chunkSize <= 0 selects DefaultChunkSize. On a read error no
// record is returned.
func FromReader(r io.Reader, chunkSize int) (Record, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	sha := sha1.New()
	crc := crc32.NewIEEE()
	buf := make([]byte, chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			sha.Write(buf[:n])
			crc.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Record{}, err
		}
	}

	return Record{
		SHA1: encodeUpper(sha.Sum(nil)),
		CRC:  formatCRC(crc.Sum32()),
	}, nil
}

// FromBytes computes the record of an in-memory buffer.
func FromBytes(b []byte) Record {
	sum := sha1.Sum(b)
	return Record{
		SHA1: encodeUpper(sum[:]),
		CRC:  formatCRC(crc32.ChecksumIEEE(b)),
	}
}

// formatCRC renders v as its little-endian bytes in uppercase hex.
func formatCRC(v uint32) string {
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], v)
	return encodeUpper(le[:])
}

func encodeUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
