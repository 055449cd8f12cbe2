package hashpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJavaStringHash(t *testing.T) {
	// Known java.lang.String.hashCode() values.
	require.EqualValues(t, 0, javaStringHash(""))
	require.EqualValues(t, 97, javaStringHash("a"))
	require.EqualValues(t, 96354, javaStringHash("abc"))
	require.EqualValues(t, -1808118735, javaStringHash("Hello, world!"))
}

func TestRelativePathDeterministic(t *testing.T) {
	h := New(255, 4)

	p1 := h.RelativePath("F1")
	p2 := h.RelativePath("F1")
	require.Equal(t, p1, p2)
	require.True(t, strings.HasSuffix(p1, "/"))
	require.True(t, strings.HasSuffix(p1, "F1/"))
}

func TestRelativePathDepthBound(t *testing.T) {
	h := New(255, 4)

	p := h.RelativePath("some-arbitrary-file-identifier")
	// number of hash-chunk components must not exceed maxDirDepth
	parts := strings.Split(strings.TrimSuffix(p, "/"), "/")
	// last component is the leaf (file-id) directory, so subtract one.
	require.LessOrEqual(t, len(parts)-1, h.MaxDirDepth())
}

func TestRelativePathIsFunctionOfConfig(t *testing.T) {
	h1 := New(255, 4)
	h2 := New(255, 4)

	require.Equal(t, h1.RelativePath("xyz"), h2.RelativePath("xyz"))
}

func TestSafeFileIDRoundTrip(t *testing.T) {
	old := windowsReservesColon
	defer func() { windowsReservesColon = old }()

	windowsReservesColon = func() bool { return true }
	safe := SafeFileID("abc:def")
	require.Equal(t, "abc_def", safe)
	require.Equal(t, "abc:def", UnsafeFileID(safe))

	windowsReservesColon = func() bool { return false }
	require.Equal(t, "abc:def", SafeFileID("abc:def"))
}
