package layout

import (
	"github.com/xtreemfs-go/osd-storage/pkg/striping"
	"github.com/xtreemfs-go/osd-storage/pkg/version"
	"github.com/xtreemfs-go/osd-storage/pkg/versionlog"
)

// FileMetadata is the per-open-file record every layout operation
// mutates: the striping policy, the version index, the version log,
// and the cached size/object-number bookkeeping loadFileMetadata
// reconstructs on first open.
type FileMetadata struct {
	Striping striping.Policy
	Versions *version.Manager
	Log      *versionlog.Log

	FileSize               int64
	LastObjectNumber       int64
	GlobalLastObjectNumber int64
	TruncateEpoch          int64
}

// NewFileMetadata returns a zeroed FileMetadata ready to be populated
// by LoadFileMetadata.
func NewFileMetadata(sp striping.Policy) *FileMetadata {
	return &FileMetadata{
		Striping:               sp,
		Versions:               version.NewManager(),
		LastObjectNumber:       -1,
		GlobalLastObjectNumber: -1,
	}
}
