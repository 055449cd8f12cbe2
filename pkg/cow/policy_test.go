package cow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledPolicyNeverCOWs(t *testing.T) {
	p := New(false)
	require.False(t, p.CowEnabled())
	require.False(t, p.IsCOW(1))
	p.ObjectChanged(1)
	require.False(t, p.IsCOW(1))
}

func TestEnabledPolicyOnlyFirstWriteCopies(t *testing.T) {
	p := New(true)
	require.True(t, p.CowEnabled())

	require.True(t, p.IsCOW(1))
	p.ObjectChanged(1)
	require.False(t, p.IsCOW(1))

	// a different object is independent.
	require.True(t, p.IsCOW(2))
}
