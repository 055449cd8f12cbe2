package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/xtreemfs-go/osd-storage/pkg/objectname"
	"github.com/xtreemfs-go/osd-storage/pkg/version"
)

// DeleteObject removes one object version. Which one is selected by
// (ver, ts): ver == 0 deletes the largest known version; ver != 0 with
// ts == 0 deletes the largest version before ver; otherwise the exact
// (objNo, ver, ts) triple is deleted.
func (l *Layout) DeleteObject(fileID string, md *FileMetadata, objNo version.ObjectNumber, ver uint64, ts int64) error {
	var (
		target version.Info
		err    error
	)

	switch {
	case ver == 0:
		target, err = md.Versions.GetLargestObjectVersion(objNo)
	case ts == 0:
		target, err = md.Versions.GetLargestObjectVersionBefore(objNo, ver)
	default:
		target, err = md.Versions.GetObjectVersionInfo(objNo, ver, ts)
	}
	if err != nil {
		return err
	}

	name := objectname.Encode(target.ObjNo, target.Version, target.Checksum, target.Timestamp)
	path := filepath.Join(l.fileDir(fileID), name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object %q: %w", path, err)
	}

	md.Versions.RemoveObjectVersionInfo(target.ObjNo, target.Version, target.Timestamp)
	return nil
}

// DeleteFile removes every object file in fileID's leaf directory. When
// deleteMetadata is set, the dotfiles (.tepoch, .mepoch, .tlog, .vlog)
// are removed too and the now-empty directory, along with any empty
// hash-fanout ancestor directories, is walked up and deleted, stopping
// at the storage root.
func (l *Layout) DeleteFile(fileID string, deleteMetadata bool) error {
	dir := l.fileDir(fileID)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read directory %q: %w", dir, err)
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") && !deleteMetadata {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("delete %q: %w", filepath.Join(dir, e.Name()), err)
		}
	}

	if !deleteMetadata {
		return nil
	}

	return l.removeEmptyAncestors(dir)
}

// removeEmptyAncestors deletes dir and walks up removing empty parent
// directories, stopping at (and never removing) the storage root.
func (l *Layout) removeEmptyAncestors(dir string) error {
	root := filepath.Clean(l.root)

	for {
		dir = filepath.Clean(dir)
		if dir == root || !strings.HasPrefix(dir, root) {
			return nil
		}

		if err := os.Remove(dir); err != nil {
			if os.IsNotExist(err) {
				// Already gone; keep walking up in case a sibling
				// cleanup raced us to the parent.
			} else if isDirNotEmpty(err) {
				return nil
			} else {
				return fmt.Errorf("delete empty ancestor %q: %w", dir, err)
			}
		}

		dir = filepath.Dir(dir)
	}
}

func isDirNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY)
}
