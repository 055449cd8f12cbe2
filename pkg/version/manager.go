// Package version keeps the in-memory index of object versions present
// in a file's leaf directory: for every object number, the set of
// (version, timestamp, checksum) triples currently on disk. It is a
// cache derived from the filesystem, never a source of truth — losing
// it costs a directory rescan, nothing more.
package version

import (
	"sort"

	"github.com/xtreemfs-go/osd-storage/pkg/logicerr"
)

// ObjectNumber identifies a fixed-size stripe within a striped file.
type ObjectNumber = uint64

// Infinity is the tsUpper value that makes GetLatestObjectVersionBefore
// consider every recorded timestamp, used by write paths that want
// "the latest version, period" subject only to the COW truncation cap.
const Infinity int64 = 1<<62 - 1

// Info identifies a single on-disk object file.
type Info struct {
	ObjNo     ObjectNumber
	Version   uint64
	Timestamp int64
	Checksum  uint64
}

// ErrNotFound is wrapped by logicerr and returned when an exact lookup
// misses.
var ErrNotFound = logicerr.New("object version not found")

// Manager is the VersionManager for one open file: an index from object
// number to its known versions, sorted ascending by (Version,
// Timestamp). Not safe for concurrent use — callers invoke a Manager
// for exactly one open fileID at a time, serialized by the layer above.
type Manager struct {
	versions          map[ObjectNumber][]Info
	versioningEnabled bool
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{versions: make(map[ObjectNumber][]Info)}
}

func less(a, b Info) bool {
	if a.Version != b.Version {
		return a.Version < b.Version
	}
	return a.Timestamp < b.Timestamp
}

// AddObjectVersionInfo records a new (objNo, version, timestamp,
// checksum) tuple, keeping the per-object slice sorted.
func (m *Manager) AddObjectVersionInfo(n ObjectNumber, v uint64, ts int64, checksum uint64) {
	info := Info{ObjNo: n, Version: v, Timestamp: ts, Checksum: checksum}
	list := m.versions[n]

	idx := sort.Search(len(list), func(i int) bool { return !less(list[i], info) })
	if idx < len(list) && list[idx].Version == v && list[idx].Timestamp == ts {
		list[idx] = info // already present: replace (e.g. checksum update).
		return
	}

	list = append(list, Info{})
	copy(list[idx+1:], list[idx:])
	list[idx] = info
	m.versions[n] = list
}

// RemoveObjectVersionInfo removes the (n, v, ts) entry if present. It is
// a no-op if the triple isn't found, mirroring a fire-and-forget file
// delete in the layer above.
func (m *Manager) RemoveObjectVersionInfo(n ObjectNumber, v uint64, ts int64) {
	list, ok := m.versions[n]
	if !ok {
		return
	}

	for i, info := range list {
		if info.Version == v && info.Timestamp == ts {
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(m.versions, n)
			} else {
				m.versions[n] = list
			}
			return
		}
	}
}

// GetObjectVersionInfo does an exact (n, v, ts) lookup.
func (m *Manager) GetObjectVersionInfo(n ObjectNumber, v uint64, ts int64) (Info, error) {
	for _, info := range m.versions[n] {
		if info.Version == v && info.Timestamp == ts {
			return info, nil
		}
	}
	return Info{}, ErrNotFound
}

// GetLargestObjectVersion returns the largest-version entry known for n.
func (m *Manager) GetLargestObjectVersion(n ObjectNumber) (Info, error) {
	list := m.versions[n]
	if len(list) == 0 {
		return Info{}, ErrNotFound
	}
	return list[len(list)-1], nil
}

// GetLargestObjectVersionBefore returns the largest entry with
// Version < vUpper.
func (m *Manager) GetLargestObjectVersionBefore(n ObjectNumber, vUpper uint64) (Info, error) {
	list := m.versions[n]
	var best Info
	found := false
	for _, info := range list {
		if info.Version < vUpper && (!found || info.Version > best.Version) {
			best, found = info, true
		}
	}
	if !found {
		return Info{}, ErrNotFound
	}
	return best, nil
}

// GetLatestObjectVersionBefore is the COW-aware lookup used on the
// write path. If n has already been truncated away (n >= objectCountCap)
// it returns a synthetic does-not-exist entry instead of ErrNotFound;
// otherwise it scans for the entry with the largest Timestamp < tsUpper,
// breaking ties by the largest Version.
func (m *Manager) GetLatestObjectVersionBefore(n ObjectNumber, tsUpper int64, objectCountCap uint64) Info {
	if n >= objectCountCap {
		return Info{ObjNo: n}
	}

	var best Info
	found := false
	for _, info := range m.versions[n] {
		if info.Timestamp >= tsUpper {
			continue
		}
		if !found || info.Timestamp > best.Timestamp ||
			(info.Timestamp == best.Timestamp && info.Version > best.Version) {
			best, found = info, true
		}
	}
	if !found {
		return Info{ObjNo: n}
	}
	return best
}

// GetLastObjectID returns the largest object number present in the
// index, or -1 (as int64) if the index is empty. Object counts per file
// are small enough that a live scan beats maintaining a separately
// invalidated cursor.
func (m *Manager) GetLastObjectID() int64 {
	last := int64(-1)
	for n, list := range m.versions {
		if len(list) == 0 {
			continue
		}
		if int64(n) > last {
			last = int64(n)
		}
	}
	return last
}

// All returns every recorded object number's version list, sorted
// ascending by (Version, Timestamp). Intended for read-only inspection
// tools; the returned slices alias internal storage and must not be
// mutated.
func (m *Manager) All() map[ObjectNumber][]Info {
	return m.versions
}

// IsVersioningEnabled reports whether this file has an associated
// FileVersionLog. Set once by the loader from whether a .vlog file was
// found for the file.
func (m *Manager) IsVersioningEnabled() bool {
	return m.versioningEnabled
}

// SetVersioningEnabled is called once by the FileMetadata loader.
func (m *Manager) SetVersioningEnabled(enabled bool) {
	m.versioningEnabled = enabled
}
