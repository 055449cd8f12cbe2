package objectname

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip48And64(t *testing.T) {
	cases := []struct {
		objNo, version, checksum uint64
		ts                       int64
	}{
		{0, 1, 0, NoTimestamp},
		{5, 2, 0xdeadbeef, NoTimestamp},
		{5, 2, 0xdeadbeef, 0},
		{5, 2, 0xdeadbeef, 42},
		{^uint64(0), ^uint64(0), ^uint64(0), 0},
	}

	for _, c := range cases {
		name := Encode(c.objNo, c.version, c.checksum, c.ts)
		if c.ts == NoTimestamp {
			require.Len(t, name, 48)
		} else {
			require.Len(t, name, 64)
		}

		got, err := Decode(name)
		require.NoError(t, err)
		require.Equal(t, c.objNo, got.ObjNo)
		require.Equal(t, c.version, got.Version)
		require.Equal(t, c.checksum, got.Checksum)
		require.Equal(t, c.ts, got.Timestamp)
	}
}

func TestDecodeLegacy32(t *testing.T) {
	// objNo(16) version(8) checksum(8)
	name := "0000000000000001" + "00000002" + "0000dead"
	got, err := Decode(name)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.ObjNo)
	require.EqualValues(t, 2, got.Version)
	require.EqualValues(t, 0xdead, got.Checksum)
	require.Equal(t, NoTimestamp, got.Timestamp)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode("not-hex-and-wrong-length")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = Decode("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz") // 48 chars, non-hex
	require.ErrorIs(t, err, ErrMalformed)
}
