package layout

import (
	"os"
	"path/filepath"

	"github.com/xtreemfs-go/osd-storage/pkg/metafiles"
)

// GetTruncateEpoch reads the .tepoch file for fileID. Absence is
// treated the same as never having truncated: 0.
func (l *Layout) GetTruncateEpoch(fileID string) (int64, error) {
	path := filepath.Join(l.fileDir(fileID), metafiles.TruncateEpochFileName)
	epoch, err := metafiles.ReadTruncateEpoch(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return epoch, nil
}

// SetTruncateEpoch writes the .tepoch file for fileID, creating the
// file's leaf directory if this is the first metadata written for it
// (spec.md's "directory created lazily on first write or on
// setTruncateEpoch" lifecycle rule).
func (l *Layout) SetTruncateEpoch(fileID string, epoch int64) error {
	dir := l.fileDir(fileID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return metafiles.WriteTruncateEpoch(filepath.Join(dir, metafiles.TruncateEpochFileName), epoch)
}

// GetMasterEpoch reads the .mepoch file for fileID. Absence yields 0.
func (l *Layout) GetMasterEpoch(fileID string) (int32, error) {
	path := filepath.Join(l.fileDir(fileID), metafiles.MasterEpochFileName)
	return metafiles.ReadMasterEpoch(path)
}

// SetMasterEpoch writes the .mepoch file for fileID.
func (l *Layout) SetMasterEpoch(fileID string, epoch int32) error {
	dir := l.fileDir(fileID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return metafiles.WriteMasterEpoch(filepath.Join(dir, metafiles.MasterEpochFileName), epoch)
}

// GetTruncateLog reads the .tlog file for fileID. Absence yields an
// empty log.
func (l *Layout) GetTruncateLog(fileID string) (metafiles.TruncateLog, error) {
	path := filepath.Join(l.fileDir(fileID), metafiles.TruncateLogFileName)
	return metafiles.ReadTruncateLog(path)
}

// SetTruncateLog writes the .tlog file for fileID.
func (l *Layout) SetTruncateLog(fileID string, log metafiles.TruncateLog) error {
	dir := l.fileDir(fileID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return metafiles.WriteTruncateLog(filepath.Join(dir, metafiles.TruncateLogFileName), log)
}
