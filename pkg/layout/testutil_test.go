package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xtreemfs-go/osd-storage/pkg/cow"
	"github.com/xtreemfs-go/osd-storage/pkg/striping"
	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
)

const testStripeSize = 128 * 1024

func newTestLayout(t *testing.T, checksumsOn bool) *Layout {
	t.Helper()

	log := &logger.Logger{}
	log.Init(nil)

	opts := []Option{
		WithRoot(t.TempDir()),
		WithLogger(log),
	}
	if checksumsOn {
		opts = append(opts, WithChecksumAlgorithm("crc64nvme"))
	}

	l, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, l.Init())
	return l
}

func newTestMetadata() *FileMetadata {
	return NewFileMetadata(striping.NewFixedPolicy(testStripeSize))
}

func objectFilesIn(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func newCowPolicy(enabled bool) *cow.Policy {
	return cow.New(enabled)
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func joinDir(l *Layout, fileID string) string {
	return filepath.Join(l.root, l.hasher.RelativePath(fileID))
}
