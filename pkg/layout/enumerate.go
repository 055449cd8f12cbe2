package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xtreemfs-go/osd-storage/pkg/hashpath"
	"github.com/xtreemfs-go/osd-storage/pkg/objectname"
)

// GetFileIDList walks the storage root depth-first, descending into a
// directory iff its name does not contain ':' (the hash-fanout
// directories never do; a leaf fileID directory containing a literal
// ':' on a host that doesn't reserve it can). Files whose names contain
// '.' or end in ".ser" are skipped.
//
// Caveat, reproduced faithfully from the original: this returns
// object-file basenames, not fileIDs. A caller expecting fileIDs back
// is relying on a documented bug (spec.md §9, open question 1) rather
// than this method's actual contract; that ambiguity is out of scope
// here since the RPC-facing caller is excluded from this module (§1).
func (l *Layout) GetFileIDList() ([]string, error) {
	var out []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() {
				if strings.Contains(name, ":") {
					continue
				}
				if err := walk(filepath.Join(dir, name)); err != nil {
					return err
				}
				continue
			}
			if strings.Contains(name, ".") || strings.HasSuffix(name, ".ser") {
				continue
			}
			out = append(out, name)
		}
		return nil
	}

	if err := walk(l.root); err != nil {
		return nil, err
	}
	return out, nil
}

// FileListEntry is one row of a GetFileList page.
type FileListEntry struct {
	FileID       string
	FileSize     int64
	ObjectSizeKB int64
}

// GetFileList performs a resumable paged walk of the storage tree,
// picking up where a previous call's returned stack left off, and
// returns at most maxN entries. stripeSize is the fixed stripe width
// used to estimate file sizes from the objects found on disk, since
// enumeration does not load full per-file metadata.
func (l *Layout) GetFileList(stack []string, maxN int, stripeSize int) ([]FileListEntry, []string, error) {
	if stack == nil {
		stack = []string{l.root}
	}

	var out []FileListEntry
	for len(stack) > 0 && len(out) < maxN {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, nil, err
		}

		var subdirs []string
		var objectFiles []os.DirEntry
		for _, e := range entries {
			if e.IsDir() {
				subdirs = append(subdirs, filepath.Join(dir, e.Name()))
				continue
			}
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			objectFiles = append(objectFiles, e)
		}

		if len(subdirs) > 0 {
			// Intermediate hash-fanout directory: push children and
			// keep walking. Reverse order preserves left-to-right
			// visitation across resumptions.
			for i := len(subdirs) - 1; i >= 0; i-- {
				stack = append(stack, subdirs[i])
			}
			continue
		}

		entry, ok := l.summarizeLeafDirectory(dir, objectFiles, stripeSize)
		if ok {
			out = append(out, entry)
		}
	}

	return out, stack, nil
}

func (l *Layout) summarizeLeafDirectory(dir string, files []os.DirEntry, stripeSize int) (FileListEntry, bool) {
	type parsed struct {
		name string
		info objectname.Info
	}

	var parsedFiles []parsed
	for _, f := range files {
		info, err := objectname.Decode(f.Name())
		if err != nil {
			l.warnParseFault(f.Name(), err)
			continue
		}
		parsedFiles = append(parsedFiles, parsed{name: f.Name(), info: info})
	}
	if len(parsedFiles) == 0 {
		return FileListEntry{}, false
	}

	var maxVersion uint64
	for _, p := range parsedFiles {
		if p.info.Version > maxVersion {
			maxVersion = p.info.Version
		}
	}

	var head, tail parsed
	haveHead, haveTail := false, false
	for _, p := range parsedFiles {
		if p.info.Version != maxVersion {
			continue
		}
		if !haveHead || p.info.ObjNo < head.info.ObjNo {
			head, haveHead = p, true
		}
		if !haveTail || p.info.ObjNo > tail.info.ObjNo {
			tail, haveTail = p, true
		}
	}

	// tailObjNo mirrors the original's own "stripCount" local: the
	// tail object's number, deliberately left un-incremented rather
	// than turned into an object count.
	tailObjNo := tail.info.ObjNo

	// HashStorageLayout.java's getFileList special-cases stripCount == 1
	// — i.e. exactly two objects present, numbered 0 and 1 — by
	// returning the head object's length alone and discarding the tail.
	// It reads like an off-by-one against the single-object case
	// (stripCount == 0, handled by the general formula below), but
	// original_source is the tie-breaker for spec.md's ambiguous
	// stripeCount wording here, so it is reproduced rather than fixed.
	if tailObjNo == 1 {
		headStat, err := os.Stat(filepath.Join(dir, head.name))
		if err != nil {
			return FileListEntry{}, false
		}
		return l.fileListEntry(dir, headStat.Size(), stripeSize), true
	}

	tailStat, err := os.Stat(filepath.Join(dir, tail.name))
	if err != nil {
		return FileListEntry{}, false
	}
	fileSize := int64(tailObjNo)*int64(stripeSize) + tailStat.Size()

	return l.fileListEntry(dir, fileSize, stripeSize), true
}

func (l *Layout) fileListEntry(dir string, fileSize int64, stripeSize int) FileListEntry {
	return FileListEntry{
		FileID:       hashpath.UnsafeFileID(filepath.Base(dir)),
		FileSize:     fileSize,
		ObjectSizeKB: int64(stripeSize) / 1024,
	}
}
