package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xtreemfs-go/osd-storage/pkg/cow"
	"github.com/xtreemfs-go/osd-storage/pkg/logicerr"
	"github.com/xtreemfs-go/osd-storage/pkg/objectname"
	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
	"github.com/xtreemfs-go/osd-storage/pkg/version"
	"github.com/xtreemfs-go/osd-storage/pkg/versionlog"
)

// WriteObject writes data at offset into object objNo of fileID under
// the (newVersion, newTimestamp) identity, dispatching to one of the
// three write paths spec.md distinguishes: a full-stripe single-shot
// write, a partial write that copies the stripe (COW or checksums
// enabled), or a partial in-place write.
func (l *Layout) WriteObject(fileID string, md *FileMetadata, data []byte, objNo version.ObjectNumber, offset int64, newVersion uint64, newTimestamp int64, sync bool, cowPolicy *cow.Policy) error {
	assertf(newVersion > 0, "writeObject: newVersion must be > 0, got %d", newVersion)

	if len(data) == 0 {
		return nil
	}

	stripeSize := md.Striping.StripeSizeForObject(objNo)
	isRangeWrite := offset > 0 || len(data) < stripeSize

	// isCow is decided once, before dispatch, and applies to whichever
	// path runs: it gates completeWrite's predecessor deletion the same
	// way it picks partialWriteCOW over partialWriteNoCOW below, and the
	// dirty bit it sets afterward must reflect this same decision
	// regardless of which path actually wrote the object.
	isCow := cowPolicy.IsCOW(objNo)

	var err error
	switch {
	case !isRangeWrite:
		err = l.completeWrite(fileID, md, data, objNo, newVersion, newTimestamp, sync, !isCow)
	case isCow || l.checksums.Enabled():
		err = l.partialWriteCOW(fileID, md, data, objNo, offset, newVersion, newTimestamp, sync, !isCow)
	default:
		err = l.partialWriteNoCOW(fileID, md, data, objNo, offset, newVersion, newTimestamp, sync, cowPolicy)
	}
	if err != nil {
		return err
	}

	if isCow {
		cowPolicy.ObjectChanged(objNo)
	}

	if int64(objNo) > md.LastObjectNumber {
		md.LastObjectNumber = int64(objNo)
	}
	return nil
}

// partialWriteCOW materializes the full stripe, splices data into it,
// and publishes the result under a brand-new name. deleteOldVersion is
// the caller's !isCow decision (HashStorageLayout.java's
// partialWriteCOW(..., sync, !isCow) call): this path is also taken
// when checksums are enabled without COW, in which case the
// predecessor is not being preserved for any COW purpose and must
// still be cleaned up.
func (l *Layout) partialWriteCOW(fileID string, md *FileMetadata, data []byte, objNo version.ObjectNumber, offset int64, newVersion uint64, newTimestamp int64, sync bool, deleteOldVersion bool) error {
	objectCountCap := uint64(md.LastObjectNumber + 1)
	predecessor := md.Versions.GetLatestObjectVersionBefore(objNo, version.Infinity, objectCountCap)

	full, err := l.unwrapObjectData(fileID, md, objNo, predecessor)
	if err != nil {
		return err
	}
	copy(full[offset:], data)

	checksum := l.checksums.Calc(full)
	name := objectname.Encode(objNo, newVersion, checksum, newTimestamp)

	if err := l.writeFileAtomic(l.fileDir(fileID), name, full, sync); err != nil {
		return err
	}

	if deleteOldVersion && predecessor.Version != 0 {
		l.deletePredecessor(fileID, predecessor)
		md.Versions.RemoveObjectVersionInfo(predecessor.ObjNo, predecessor.Version, predecessor.Timestamp)
	}

	md.Versions.AddObjectVersionInfo(objNo, newVersion, newTimestamp, checksum)

	return l.appendVersionLogEntry(fileID, md, objNo, newTimestamp, sync)
}

// appendVersionLogEntry records a whole-file snapshot after a COW
// commit, per spec.md §4.E. It is called at the end of partialWriteCOW
// and truncateWithCopy; completeWrite does not append, even when COW
// keeps its predecessor.
// deriveSizeFromVersionLog trusts this to be current for every
// versioning-enabled file, so it runs on every commit, not just the
// ones a caller happens to inspect afterward.
//
// A nil Log or versioning disabled for this file means there's nothing
// to append to: FileMetadata built directly (rather than through
// LoadFileMetadata) never gets a Log, and most files never turn
// versioning on in the first place.
func (l *Layout) appendVersionLogEntry(fileID string, md *FileMetadata, objNo version.ObjectNumber, ts int64, sync bool) error {
	if md.Log == nil || !md.Versions.IsVersioningEnabled() {
		return nil
	}

	lastObjNo := md.LastObjectNumber
	if int64(objNo) > lastObjNo {
		lastObjNo = int64(objNo)
	}

	fileSize, err := l.computeFileSizeFromFilesystem(fileID, md, lastObjNo)
	if err != nil {
		return err
	}

	return md.Log.Append(versionlog.Entry{
		FileSize:   uint64(fileSize),
		NumObjects: uint64(lastObjNo + 1),
		Timestamp:  ts,
	}, sync)
}

// partialWriteNoCOW seeks and writes in place, only renaming when the
// object's identity actually changes. An object with no version yet is
// created as a new file instead.
//
// spec.md §9 note 4: when (newVersion, newTimestamp) match the
// predecessor exactly, the VersionManager entry is intentionally left
// untouched even though the in-place write just made its checksum
// field stale. That's only safe because this path asserts checksums
// disabled, so nothing ever re-derives a checksum from the stale entry.
func (l *Layout) partialWriteNoCOW(fileID string, md *FileMetadata, data []byte, objNo version.ObjectNumber, offset int64, newVersion uint64, newTimestamp int64, sync bool, cowPolicy *cow.Policy) error {
	assertf(!l.checksums.Enabled(), "partialWriteNoCOW: checksums must be disabled on this path")

	predecessor, err := l.resolvePredecessorForInPlaceWrite(md, objNo, cowPolicy)
	if errors.Is(err, version.ErrNotFound) {
		// No version of objNo exists yet: publish a fresh file holding
		// data at offset, zero-filled before it.
		buf := make([]byte, offset+int64(len(data)))
		copy(buf[offset:], data)
		if err := l.writeFileAtomic(l.fileDir(fileID), objectname.Encode(objNo, newVersion, 0, newTimestamp), buf, sync); err != nil {
			return err
		}
		md.Versions.AddObjectVersionInfo(objNo, newVersion, newTimestamp, 0)
		return nil
	}
	if err != nil {
		return err
	}

	dir := l.fileDir(fileID)
	oldName := objectname.Encode(predecessor.ObjNo, predecessor.Version, predecessor.Checksum, predecessor.Timestamp)
	oldPath := filepath.Join(dir, oldName)

	flags := os.O_WRONLY
	if sync && !l.noSync {
		flags |= os.O_SYNC
	}
	f, err := os.OpenFile(oldPath, flags, l.perm)
	if err != nil {
		return fmt.Errorf("open object %q for in-place write: %w", oldPath, err)
	}
	if _, err := f.WriteAt(data, offset); err != nil {
		_ = f.Close()
		return fmt.Errorf("in-place write to %q: %w", oldPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q after in-place write: %w", oldPath, err)
	}

	if newVersion == predecessor.Version && newTimestamp == predecessor.Timestamp {
		return nil
	}

	newName := objectname.Encode(objNo, newVersion, 0, newTimestamp)
	newPath := filepath.Join(dir, newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename file %q->%q: %w", oldPath, newPath, err)
	}

	md.Versions.RemoveObjectVersionInfo(predecessor.ObjNo, predecessor.Version, predecessor.Timestamp)
	md.Versions.AddObjectVersionInfo(objNo, newVersion, newTimestamp, 0)
	return nil
}

func (l *Layout) resolvePredecessorForInPlaceWrite(md *FileMetadata, objNo version.ObjectNumber, cowPolicy *cow.Policy) (version.Info, error) {
	if cowPolicy.CowEnabled() {
		objectCountCap := uint64(md.LastObjectNumber + 1)
		info := md.Versions.GetLatestObjectVersionBefore(objNo, version.Infinity, objectCountCap)
		if info.Version == 0 {
			return version.Info{}, logicerr.Wrap(fmt.Errorf("partialWriteNoCOW: %w", version.ErrNotFound))
		}
		return info, nil
	}
	return md.Versions.GetLargestObjectVersion(objNo)
}

// completeWrite publishes a brand-new, full-stripe object file.
// deleteOldVersion is the caller's !isCow decision (HashStorageLayout.java's
// completeWrite(..., !isCow) call): under COW the predecessor must
// survive a full-stripe rewrite exactly as it does under a partial one,
// so the identity-mismatch check below only runs when it's set.
func (l *Layout) completeWrite(fileID string, md *FileMetadata, data []byte, objNo version.ObjectNumber, newVersion uint64, newTimestamp int64, sync bool, deleteOldVersion bool) error {
	predecessor, err := md.Versions.GetLargestObjectVersion(objNo)
	predecessorFound := err == nil

	checksum := l.checksums.Calc(data)
	name := objectname.Encode(objNo, newVersion, checksum, newTimestamp)

	if err := l.writeFileAtomic(l.fileDir(fileID), name, data, sync); err != nil {
		return err
	}

	if deleteOldVersion && predecessorFound &&
		(predecessor.Version != newVersion || predecessor.Timestamp != newTimestamp || predecessor.Checksum != checksum) {
		l.deletePredecessor(fileID, predecessor)
		md.Versions.RemoveObjectVersionInfo(predecessor.ObjNo, predecessor.Version, predecessor.Timestamp)
	}

	md.Versions.AddObjectVersionInfo(objNo, newVersion, newTimestamp, checksum)
	return nil
}

// deletePredecessor removes a superseded object file. Failure is
// logged but not retried or propagated: spec.md §7 treats a failed
// predecessor delete during COW as non-fatal.
func (l *Layout) deletePredecessor(fileID string, info version.Info) {
	name := objectname.Encode(info.ObjNo, info.Version, info.Checksum, info.Timestamp)
	path := filepath.Join(l.fileDir(fileID), name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		l.log.Warn("failed to delete predecessor object",
			logger.FieldString("path", path),
			logger.FieldError(err))
	}
}
