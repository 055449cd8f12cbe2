// Package layout implements the object storage engine that maps
// (fileID, objectNumber) pairs onto individual files inside a
// hash-fanout directory tree, with per-object versioning, optional
// copy-on-write, and optional checksumming.
//
// Every exported method assumes single-threaded-per-fileID invocation:
// an upstream executor serializes operations against the same fileID,
// and the layout takes no internal locks. Operations against different
// fileIDs may run concurrently, provided the injected BufferPool and
// ChecksumEngine are themselves safe for that (bufferpool.SyncPool is;
// checksum.Engine is not and must be constructed per goroutine or
// otherwise serialized externally).
package layout

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xtreemfs-go/osd-storage/pkg/bufferpool"
	"github.com/xtreemfs-go/osd-storage/pkg/checksum"
	"github.com/xtreemfs-go/osd-storage/pkg/hashpath"
	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
)

// VersionTag identifies the current on-disk layout revision.
const VersionTag uint32 = 0x00000002

// IsCompatibleVersion reports whether tag is readable by this
// implementation: the current tag, or 1, the legacy integer-version
// layout that predates the hex-hash fanout scheme's second revision.
func IsCompatibleVersion(tag uint32) bool {
	return tag == 1 || tag == VersionTag
}

// Layout is the object storage engine for one storage root.
type Layout struct {
	root string
	perm fs.FileMode

	maxSubdirsPerDir int
	maxDirDepth      int

	hasher     *hashpath.Hasher
	checksums  *checksum.Engine
	pool       bufferpool.Pool
	log        *logger.Logger
	noSync     bool
	cowEnabled bool
}

// Option configures a Layout at construction time.
type Option func(*Layout)

// WithRoot sets the storage root directory. Required.
func WithRoot(root string) Option {
	return func(l *Layout) { l.root = root }
}

// WithPerm sets the permission bits used for created object files.
// Defaults to 0644. Directories are always created with 0755,
// regardless of this option.
func WithPerm(perm fs.FileMode) Option {
	return func(l *Layout) { l.perm = perm }
}

// WithChecksumAlgorithm selects the named checksum algorithm from
// checksum.Factory. Passing "" or an unknown name disables checksums
// for the layout's lifetime (logged at ERROR, per spec).
func WithChecksumAlgorithm(name string) Option {
	return func(l *Layout) {
		if name == "" {
			l.checksums = checksum.Disabled()
			return
		}
		l.checksums = checksum.NewEngine(name, l.log)
	}
}

// WithNoSync disables write-through durability: writes are buffered by
// the OS rather than forced to stable storage before returning.
func WithNoSync(noSync bool) Option {
	return func(l *Layout) { l.noSync = noSync }
}

// WithCOW records a copy-on-write setting on the Layout. The Layout
// does not read it: whether a write copies is decided only by the
// cow.Policy passed to WriteObject, and whether a truncate copies by
// TruncateObject's cowEnabled argument.
func WithCOW(enabled bool) Option {
	return func(l *Layout) { l.cowEnabled = enabled }
}

// WithMaxSubdirsPerDir and WithMaxDirDepth configure the underlying
// hashpath.Hasher fanout. Both fall back to hashpath.New's own
// defaults (255, 4) when omitted.
func WithMaxSubdirsPerDir(n int) Option {
	return func(l *Layout) { l.maxSubdirsPerDir = n }
}

func WithMaxDirDepth(n int) Option {
	return func(l *Layout) { l.maxDirDepth = n }
}

// WithBufferPool injects the BufferPool collaborator. Defaults to a
// fresh bufferpool.SyncPool if omitted.
func WithBufferPool(p bufferpool.Pool) Option {
	return func(l *Layout) { l.pool = p }
}

// WithLogger injects the Logger collaborator. Must be called before
// WithChecksumAlgorithm if both are used, since checksum construction
// logs through it.
func WithLogger(log *logger.Logger) Option {
	return func(l *Layout) { l.log = log }
}

// defaultPerm matches the teacher's own fstree default file mode.
const defaultPerm = fs.FileMode(0o644)

// New constructs a Layout. WithRoot is mandatory; every other option
// has a workable default. New does not touch the filesystem — call
// Open or Init once the Layout is built.
func New(opts ...Option) (*Layout, error) {
	l := &Layout{perm: defaultPerm}
	for _, opt := range opts {
		opt(l)
	}

	if l.root == "" {
		return nil, fmt.Errorf("layout: storage root is required")
	}
	if l.log == nil {
		l.log = &logger.Logger{}
		l.log.Init(nil)
	}
	if l.checksums == nil {
		l.checksums = checksum.Disabled()
	}
	if l.pool == nil {
		l.pool = bufferpool.NewSyncPool()
	}

	l.hasher = hashpath.New(l.maxSubdirsPerDir, l.maxDirDepth)

	return l, nil
}

// Init creates the storage root directory if it doesn't already exist,
// matching common.Storage's Init/Open split: Init prepares a brand-new
// root, Open attaches to an existing one.
func (l *Layout) Init() error {
	return os.MkdirAll(l.root, 0o755)
}

// Open verifies the storage root exists and is a directory. readOnly is
// accepted for symmetry with the wider storage stack's common.Storage
// shape; the layout itself does not currently reject writes in
// read-only mode, since nothing in this module opens a Layout that way.
func (l *Layout) Open(readOnly bool) error {
	_ = readOnly

	info, err := os.Stat(l.root)
	if err != nil {
		return fmt.Errorf("open storage root %q: %w", l.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("open storage root %q: not a directory", l.root)
	}
	return nil
}

// Close releases resources held by the Layout. There is currently
// nothing to release beyond what the garbage collector already
// reclaims, but the method exists so callers can treat Layout
// uniformly with the other common.Storage-shaped components in this
// module.
func (l *Layout) Close() error {
	return nil
}

// Root returns the configured storage root.
func (l *Layout) Root() string {
	return l.root
}

// fileDir returns the absolute leaf directory for fileID.
func (l *Layout) fileDir(fileID string) string {
	return filepath.Join(l.root, l.hasher.RelativePath(fileID))
}

// FileExists reports whether fileID's leaf directory exists.
func (l *Layout) FileExists(fileID string) bool {
	info, err := os.Stat(l.fileDir(fileID))
	return err == nil && info.IsDir()
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
