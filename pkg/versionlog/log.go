// Package versionlog implements the FileVersionLog: a persistent,
// append-only sequence of whole-file snapshots (size, object count,
// timestamp) written on every copy-on-write commit. Its presence on
// disk is what turns versioning on for a file.
package versionlog

import (
	"encoding/binary"
	"os"

	"golang.org/x/sys/unix"
)

// VlogFileName is the on-disk name of a file's version log.
const VlogFileName = ".vlog"

// recordSize is FileSize(8) + NumObjects(8) + Timestamp(8).
const recordSize = 24

// Entry is one whole-file snapshot.
type Entry struct {
	FileSize   uint64
	NumObjects uint64
	Timestamp  int64
}

// Log is the in-memory, ascending-by-Timestamp view of a .vlog file.
// Entries are expected to arrive in non-decreasing timestamp order
// since they are only ever appended on commit; Append does not
// re-sort.
type Log struct {
	path    string
	entries []Entry
}

// Load reads path if it exists, dropping any trailing partial record
// (a length not a multiple of recordSize, the signature of a crash
// mid-append). A missing file yields an empty, valid Log — versioning
// is then considered disabled for the caller, who decides that from
// whether the file existed, not from Log itself.
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Log{path: path}, nil
		}
		return nil, err
	}

	usable := (len(data) / recordSize) * recordSize
	entries := make([]Entry, 0, usable/recordSize)
	for off := 0; off < usable; off += recordSize {
		rec := data[off : off+recordSize]
		entries = append(entries, Entry{
			FileSize:   binary.LittleEndian.Uint64(rec[0:8]),
			NumObjects: binary.LittleEndian.Uint64(rec[8:16]),
			Timestamp:  int64(binary.LittleEndian.Uint64(rec[16:24])),
		})
	}

	return &Log{path: path, entries: entries}, nil
}

// Exists reports whether the log file exists on disk. The FileMetadata
// loader uses this to decide whether versioning is enabled.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Append writes a new entry to the end of the log file, creating it if
// necessary. When sync is true the write is flushed to stable storage
// before returning, matching the durability the layout gives ordinary
// object writes.
func (l *Log) Append(e Entry, sync bool) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var rec [recordSize]byte
	binary.LittleEndian.PutUint64(rec[0:8], e.FileSize)
	binary.LittleEndian.PutUint64(rec[8:16], e.NumObjects)
	binary.LittleEndian.PutUint64(rec[16:24], uint64(e.Timestamp))

	if _, err := f.Write(rec[:]); err != nil {
		return err
	}

	if sync {
		if err := unix.Fdatasync(int(f.Fd())); err != nil {
			return err
		}
	}

	l.entries = append(l.entries, e)
	return nil
}

// GetLatestFileVersionBefore returns the most recent entry with
// Timestamp <= ts. ok is false if no such entry exists.
func (l *Log) GetLatestFileVersionBefore(ts int64) (Entry, bool) {
	var best Entry
	found := false
	for _, e := range l.entries {
		if e.Timestamp <= ts && (!found || e.Timestamp > best.Timestamp) {
			best, found = e, true
		}
	}
	return best, found
}

// Entries returns the full, ordered snapshot list.
func (l *Log) Entries() []Entry {
	return l.entries
}
