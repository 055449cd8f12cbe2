// Package striping supplies the StripingPolicy collaborator: given an
// object number, how large is that stripe, and where does it end in
// the logical file. HashStorageLayout never picks the policy itself —
// it is handed one per open file by the layer that knows the file's
// striping width, the same separation of concerns the wider example
// pack uses for fixed-width stripe addressing.
package striping

import "github.com/xtreemfs-go/osd-storage/pkg/version"

// Policy answers the two questions the storage layout needs about a
// file's striping to size reads, writes, and padding objects.
type Policy interface {
	// StripeSizeForObject returns the size, in bytes, of the stripe
	// occupied by object number n.
	StripeSizeForObject(n version.ObjectNumber) int
	// ObjectEndOffset returns the logical file offset of the last byte
	// of object number n (inclusive).
	ObjectEndOffset(n version.ObjectNumber) int64
}

// FixedPolicy is a Policy where every stripe has the same width. It
// covers the common case (and every unit test in this module); a
// variable-width policy would be a distinct implementation of the same
// interface.
type FixedPolicy struct {
	stripeSize int
}

// NewFixedPolicy returns a FixedPolicy with the given constant stripe
// size in bytes. Panics on a non-positive size: a zero-width stripe
// makes every other layout invariant meaningless.
func NewFixedPolicy(stripeSize int) FixedPolicy {
	if stripeSize <= 0 {
		panic("striping: stripe size must be positive")
	}
	return FixedPolicy{stripeSize: stripeSize}
}

// StripeSizeForObject always returns the configured constant width.
func (p FixedPolicy) StripeSizeForObject(version.ObjectNumber) int {
	return p.stripeSize
}

// ObjectEndOffset returns (n+1)*stripeSize - 1: the offset of the last
// byte belonging to object n.
func (p FixedPolicy) ObjectEndOffset(n version.ObjectNumber) int64 {
	return int64(n+1)*int64(p.stripeSize) - 1
}

var _ Policy = FixedPolicy{}
