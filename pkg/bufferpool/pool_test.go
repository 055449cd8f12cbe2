package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsRequestedLength(t *testing.T) {
	p := NewSyncPool()

	buf := p.Get(100)
	require.Len(t, buf, 100)

	buf2 := p.Get(1 << 20)
	require.Len(t, buf2, 1<<20)
}

func TestGetOversizeFallsBackToDirectAlloc(t *testing.T) {
	p := NewSyncPool()
	buf := p.Get(1 << 30)
	require.Len(t, buf, 1<<30)
}

func TestPutAndReuse(t *testing.T) {
	p := NewSyncPool()

	buf := p.Get(1 << minClassShift)
	buf[0] = 0xAB
	p.Put(buf)

	buf2 := p.Get(1 << minClassShift)
	require.Len(t, buf2, 1<<minClassShift)
}

func TestPutIgnoresUnrecognizedCapacity(t *testing.T) {
	p := NewSyncPool()
	odd := make([]byte, 0, 17)
	p.Put(odd) // must not panic
}
