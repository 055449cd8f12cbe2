package layout

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xtreemfs-go/osd-storage/pkg/objectname"
)

// Invariant 4: with COW enabled, a partial write to an object preserves
// the predecessor file byte-identically under its own name, alongside
// the newly published version. The predecessor is created under a
// separate CowPolicy, matching real usage where a Policy is scoped to
// one file open: the write under test must be the first touch of this
// object under its own Policy for COW to apply.
func TestCowWritePreservesPredecessorByteIdentical(t *testing.T) {
	l := newTestLayout(t, false)
	md := newTestMetadata()

	full := bytes.Repeat([]byte{0x00}, testStripeSize)
	require.NoError(t, l.WriteObject("F1", md, full, 0, 0, 1, 0, false, newCowPolicy(false)))

	dir := joinDir(l, "F1")
	predecessorName := objectname.Encode(0, 1, 0, 0)
	predecessorPath := filepath.Join(dir, predecessorName)
	predecessorBefore := mustReadFile(t, predecessorPath)

	cowPolicy := newCowPolicy(true)
	patch := bytes.Repeat([]byte{0xFF}, 1024)
	require.NoError(t, l.WriteObject("F1", md, patch, 0, 4096, 2, 0, false, cowPolicy))

	names := objectFilesIn(t, dir)
	require.Len(t, names, 2, "COW must keep both predecessor and new version on disk")

	predecessorAfter := mustReadFile(t, predecessorPath)
	require.Equal(t, predecessorBefore, predecessorAfter, "predecessor must be untouched by the COW write")
	require.Equal(t, full, predecessorAfter)

	newName := objectname.Encode(0, 2, 0, 0)
	newData := mustReadFile(t, filepath.Join(dir, newName))
	require.Equal(t, patch, newData[4096:5120])
	require.True(t, bytes.Equal(newData[:4096], full[:4096]))

	largest, err := md.Versions.GetLargestObjectVersion(0)
	require.NoError(t, err)
	require.EqualValues(t, 2, largest.Version)

	predecessorInfo, err := md.Versions.GetObjectVersionInfo(0, 1, 0)
	require.NoError(t, err, "predecessor entry must remain in the VersionManager")
	require.EqualValues(t, 1, predecessorInfo.Version)
}

// Invariant 4, complete-write path: a full-stripe rewrite of an object
// that already has a predecessor must keep that predecessor on disk
// and in the VersionManager when COW is enabled, the same as a partial
// COW write does. WriteObject dispatches a full-stripe write to
// completeWrite, not partialWriteCOW, so this exercises a different
// call path than the test above for the same invariant.
func TestCowCompleteWritePreservesPredecessor(t *testing.T) {
	l := newTestLayout(t, false)
	md := newTestMetadata()

	v1 := bytes.Repeat([]byte{0x00}, testStripeSize)
	require.NoError(t, l.WriteObject("F1", md, v1, 0, 0, 1, 0, false, newCowPolicy(false)))

	dir := joinDir(l, "F1")
	predecessorName := objectname.Encode(0, 1, 0, 0)
	predecessorPath := filepath.Join(dir, predecessorName)
	predecessorBefore := mustReadFile(t, predecessorPath)

	cowPolicy := newCowPolicy(true)
	v2 := bytes.Repeat([]byte{0xFF}, testStripeSize)
	require.NoError(t, l.WriteObject("F1", md, v2, 0, 0, 2, 0, false, cowPolicy))

	names := objectFilesIn(t, dir)
	require.Len(t, names, 2, "a complete rewrite under COW must keep both predecessor and new version on disk")

	predecessorAfter := mustReadFile(t, predecessorPath)
	require.Equal(t, predecessorBefore, predecessorAfter, "predecessor must be untouched by the complete COW write")
	require.Equal(t, v1, predecessorAfter)

	newName := objectname.Encode(0, 2, 0, 0)
	require.Contains(t, names, newName)
	require.Equal(t, v2, mustReadFile(t, filepath.Join(dir, newName)))

	predecessorInfo, err := md.Versions.GetObjectVersionInfo(0, 1, 0)
	require.NoError(t, err, "predecessor entry must remain in the VersionManager")
	require.EqualValues(t, 1, predecessorInfo.Version)

	largest, err := md.Versions.GetLargestObjectVersion(0)
	require.NoError(t, err)
	require.EqualValues(t, 2, largest.Version)
}

// A second write to the same object during the same open lifetime no
// longer copies: cow.Policy marks the object dirty after ANY successful
// write to it (complete or partial) while isCow was true, so once an
// object has been copied once under a given Policy, every later write
// to it that session updates in place instead.
func TestCowWriteOnlyFirstWriteToObjectCopies(t *testing.T) {
	l := newTestLayout(t, false)
	md := newTestMetadata()

	v1 := bytes.Repeat([]byte{0x00}, testStripeSize)
	require.NoError(t, l.WriteObject("F1", md, v1, 0, 0, 1, 0, false, newCowPolicy(false)))

	dir := joinDir(l, "F1")
	require.Len(t, objectFilesIn(t, dir), 1)

	cowPolicy := newCowPolicy(true)

	// First write to object 0 under this Policy: must copy.
	require.NoError(t, l.WriteObject("F1", md, bytes.Repeat([]byte{0xAA}, 1024), 0, 0, 2, 0, false, cowPolicy))
	require.Len(t, objectFilesIn(t, dir), 2, "first write under COW must copy")

	// Second write to the same object, same Policy: must not copy again.
	require.NoError(t, l.WriteObject("F1", md, bytes.Repeat([]byte{0xBB}, 1024), 0, 2048, 3, 0, false, cowPolicy))
	names := objectFilesIn(t, dir)
	require.Len(t, names, 2, "second write to the same object must not copy again")

	require.Contains(t, names, objectname.Encode(0, 1, 0, 0))
	require.Contains(t, names, objectname.Encode(0, 3, 0, 0))
}

// Invariant 5: a non-COW write that republishes an object under the
// same (version, timestamp) it already has performs no rename.
func TestNonCowWriteUnchangedIdentityNoRename(t *testing.T) {
	l := newTestLayout(t, false)
	md := newTestMetadata()
	cowPolicy := newCowPolicy(false)

	full := bytes.Repeat([]byte{0x00}, testStripeSize)
	require.NoError(t, l.WriteObject("F1", md, full, 0, 0, 1, 0, false, cowPolicy))

	dir := joinDir(l, "F1")
	before := objectFilesIn(t, dir)
	require.Len(t, before, 1)

	patch := bytes.Repeat([]byte{0xFF}, 1024)
	require.NoError(t, l.WriteObject("F1", md, patch, 0, 4096, 1, 0, false, cowPolicy))

	after := objectFilesIn(t, dir)
	require.Equal(t, before, after, "unchanged (version, timestamp) must not rename the object")

	data := mustReadFile(t, filepath.Join(dir, after[0]))
	require.Equal(t, patch, data[4096:5120])
}

// Invariant 6: truncating to the object's current length is a no-op on
// both the directory contents and the VersionManager state.
func TestTruncateToCurrentLengthIsNoop(t *testing.T) {
	l := newTestLayout(t, false)
	md := newTestMetadata()
	cowPolicy := newCowPolicy(false)

	data := bytes.Repeat([]byte{0x11}, 10000)
	require.NoError(t, l.WriteObject("F1", md, data, 0, 0, 1, 0, false, cowPolicy))

	dir := joinDir(l, "F1")
	before := objectFilesIn(t, dir)
	versionBefore, err := md.Versions.GetLargestObjectVersion(0)
	require.NoError(t, err)

	require.NoError(t, l.TruncateObject("F1", md, 0, 10000, 9, 12345, false))

	after := objectFilesIn(t, dir)
	require.Equal(t, before, after, "truncate to the current length must not touch the directory")

	versionAfter, err := md.Versions.GetLargestObjectVersion(0)
	require.NoError(t, err)
	require.Equal(t, versionBefore, versionAfter, "truncate to the current length must not touch the VersionManager")
}
