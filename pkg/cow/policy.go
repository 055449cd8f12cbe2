// Package cow implements the per-open-file copy-on-write oracle: once
// COW is enabled for a file, each object is copied at most once during
// the file's open lifetime — the first write to an object copies it,
// every subsequent write updates it in place.
package cow

import "github.com/xtreemfs-go/osd-storage/pkg/version"

// Policy is the CowPolicy for one open file. Zero value is COW
// disabled. Not safe for concurrent use, matching the
// single-threaded-per-file execution model the rest of the layout
// assumes.
type Policy struct {
	enabled bool
	dirty   map[version.ObjectNumber]struct{}
}

// New returns a Policy with COW enabled or disabled for the file's
// lifetime, as decided once at open time by configuration.
func New(enabled bool) *Policy {
	return &Policy{enabled: enabled, dirty: make(map[version.ObjectNumber]struct{})}
}

// CowEnabled reports the file-wide configured/global decision.
func (p *Policy) CowEnabled() bool {
	return p.enabled
}

// IsCOW reports whether writing to n right now must copy rather than
// overwrite: true when COW is enabled and n has not yet been written
// during this open lifetime.
func (p *Policy) IsCOW(n version.ObjectNumber) bool {
	if !p.enabled {
		return false
	}
	_, dirty := p.dirty[n]
	return !dirty
}

// ObjectChanged marks n dirty: future writes to it in this open
// lifetime no longer copy.
func (p *Policy) ObjectChanged(n version.ObjectNumber) {
	p.dirty[n] = struct{}{}
}
