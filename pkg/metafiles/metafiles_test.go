package metafiles

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateEpochRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tepoch")
	require.NoError(t, WriteTruncateEpoch(path, -7))

	got, err := ReadTruncateEpoch(path)
	require.NoError(t, err)
	require.EqualValues(t, -7, got)
}

func TestMasterEpochAbsentIsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mepoch")
	got, err := ReadMasterEpoch(path)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
}

func TestMasterEpochRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mepoch")
	require.NoError(t, WriteMasterEpoch(path, 42))

	got, err := ReadMasterEpoch(path)
	require.NoError(t, err)
	require.EqualValues(t, 42, got)
}

func TestTruncateLogAbsentIsEmpty(t *testing.T) {
	log, err := ReadTruncateLog(filepath.Join(t.TempDir(), ".tlog"))
	require.NoError(t, err)
	require.Empty(t, log.Entries)
}

func TestTruncateLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tlog")
	want := TruncateLog{Entries: []TruncateRecord{
		{Epoch: 1, ObjectCount: 10},
		{Epoch: 2, ObjectCount: 0},
		{Epoch: -1, ObjectCount: 999999},
	}}

	require.NoError(t, WriteTruncateLog(path, want))

	got, err := ReadTruncateLog(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecodeTruncateLogRejectsGarbage(t *testing.T) {
	_, err := DecodeTruncateLog([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
}
