package striping

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedPolicy(t *testing.T) {
	p := NewFixedPolicy(1024)

	require.Equal(t, 1024, p.StripeSizeForObject(0))
	require.Equal(t, 1024, p.StripeSizeForObject(41))

	require.EqualValues(t, 1023, p.ObjectEndOffset(0))
	require.EqualValues(t, 2047, p.ObjectEndOffset(1))
}

func TestFixedPolicyPanicsOnNonPositiveSize(t *testing.T) {
	require.Panics(t, func() { NewFixedPolicy(0) })
	require.Panics(t, func() { NewFixedPolicy(-1) })
}
