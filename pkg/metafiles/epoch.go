// Package metafiles reads and writes the small per-file metadata files
// that live alongside object files in a leaf directory: the truncate
// epoch, the master epoch, and the truncate log. All are excluded from
// object enumeration by their leading dot.
package metafiles

import (
	"encoding/binary"
	"errors"
	"os"
)

// ErrTruncated is returned by ReadTruncateEpoch when the file is
// shorter than its fixed 8-byte record. A short master epoch file is
// read as 0 instead.
var ErrTruncated = errors.New("metadata file truncated")

// TruncateEpochFileName is the on-disk name of the truncate epoch file.
const TruncateEpochFileName = ".tepoch"

// MasterEpochFileName is the on-disk name of the master epoch file.
const MasterEpochFileName = ".mepoch"

// ReadTruncateEpoch reads the 8-byte big-endian signed truncate epoch at
// path. A missing file is reported as the os.ReadFile not-exist error;
// callers check it with os.IsNotExist and treat it as "never truncated".
func ReadTruncateEpoch(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) < 8 {
		return 0, ErrTruncated
	}
	return int64(binary.BigEndian.Uint64(data[:8])), nil
}

// WriteTruncateEpoch writes epoch as an 8-byte big-endian signed value.
func WriteTruncateEpoch(path string, epoch int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(epoch))
	return os.WriteFile(path, buf[:], 0o644)
}

// ReadMasterEpoch reads the 4-byte big-endian signed master epoch at
// path. Absence of the file means "never set": value 0.
func ReadMasterEpoch(path string) (int32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if len(data) < 4 {
		return 0, nil
	}
	return int32(binary.BigEndian.Uint32(data[:4])), nil
}

// WriteMasterEpoch writes epoch as a 4-byte big-endian signed value.
func WriteMasterEpoch(path string, epoch int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(epoch))
	return os.WriteFile(path, buf[:], 0o644)
}
