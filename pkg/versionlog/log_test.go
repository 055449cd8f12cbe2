package versionlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "does-not-exist.vlog"))
	require.NoError(t, err)
	require.Empty(t, l.Entries())
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.vlog")

	l, err := Load(path)
	require.NoError(t, err)
	require.False(t, Exists(path))

	require.NoError(t, l.Append(Entry{FileSize: 100, NumObjects: 1, Timestamp: 1}, false))
	require.NoError(t, l.Append(Entry{FileSize: 200, NumObjects: 2, Timestamp: 5}, true))
	require.True(t, Exists(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, l.Entries(), reloaded.Entries())
}

func TestGetLatestFileVersionBefore(t *testing.T) {
	l := &Log{entries: []Entry{
		{FileSize: 10, Timestamp: 1},
		{FileSize: 20, Timestamp: 5},
		{FileSize: 30, Timestamp: 9},
	}}

	e, ok := l.GetLatestFileVersionBefore(5)
	require.True(t, ok)
	require.EqualValues(t, 20, e.FileSize)

	e, ok = l.GetLatestFileVersionBefore(0)
	require.False(t, ok)
	_ = e

	e, ok = l.GetLatestFileVersionBefore(100)
	require.True(t, ok)
	require.EqualValues(t, 30, e.FileSize)
}

func TestLoadDropsTruncatedTailRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.vlog")

	l, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(Entry{FileSize: 1, NumObjects: 1, Timestamp: 1}, false))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte{1, 2, 3}) // partial trailing record
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Entries(), 1)
}
