// Package hashpath maps opaque file identifiers onto a bounded-fanout
// directory tree, the way HashStorageLayout lays objects out on disk:
// a fixed-width hex hash of the file-id is split into directory-name
// chunks, and the file-id itself becomes the leaf directory.
package hashpath

import (
	"runtime"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// pathCacheSize bounds the memoized file-id -> relative-path map.
	pathCacheSize = 2048

	hashHexWidth = 16 // a 64-bit signed hash rendered as hex is always 16 chars.
)

// Hasher derives the relative on-disk directory for a file-id.
//
// Instances are not safe for concurrent use: the path cache is a plain
// LRU, matching the single-threaded-per-file execution model the
// storage layout is built for.
type Hasher struct {
	prefixLength  int
	hashCutLength int

	cache *lru.Cache[string, string]
}

// New returns a Hasher configured for maxSubdirsPerDir entries per
// fanout level and maxDirDepth fanout levels.
//
// prefixLength is derived as ceil(log16(maxSubdirsPerDir+1)), i.e. the
// number of hex characters needed to enumerate maxSubdirsPerDir values.
// A zero or negative argument falls back to the values HashStorageLayout
// used by default (maxSubdirsPerDir 255, i.e. 256 two-character
// subdirectories per level; depth 4).
func New(maxSubdirsPerDir, maxDirDepth int) *Hasher {
	if maxSubdirsPerDir <= 0 {
		maxSubdirsPerDir = 255
	}
	if maxDirDepth <= 0 {
		maxDirDepth = 4
	}

	prefixLength := len(strconv.FormatInt(int64(maxSubdirsPerDir), 16))

	cache, err := lru.New[string, string](pathCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which pathCacheSize never is.
		panic(err)
	}

	return &Hasher{
		prefixLength:  prefixLength,
		hashCutLength: maxDirDepth * prefixLength,
		cache:         cache,
	}
}

// MaxDirDepth returns the configured fanout depth.
func (h *Hasher) MaxDirDepth() int {
	if h.prefixLength == 0 {
		return 0
	}
	return h.hashCutLength / h.prefixLength
}

// RelativePath returns the directory the file-id lives in, relative to
// the storage root, always ending in "/". Results are memoized by the
// original (unsafe-transformed) fileID.
func (h *Hasher) RelativePath(fileID string) string {
	if cached, ok := h.cache.Get(fileID); ok {
		return cached
	}

	safe := SafeFileID(fileID)

	var b strings.Builder
	hash := hexHash(safe)
	if len(hash) > h.hashCutLength {
		hash = hash[:h.hashCutLength]
	}

	for i := 0; i < len(hash); i += h.prefixLength {
		end := i + h.prefixLength
		if end > len(hash) {
			end = len(hash)
		}
		b.WriteString(hash[i:end])
		b.WriteByte('/')
	}
	b.WriteString(safe)
	b.WriteByte('/')

	rel := b.String()
	h.cache.Add(fileID, rel)
	return rel
}

// hexHash renders the platform string-hash of s as a fixed-width,
// lowercase, sign-extended 16 hex character string.
func hexHash(s string) string {
	h := int64(javaStringHash(s))
	// Sign-extension to 64 bits before hex-rendering is explicit: a
	// negative 32-bit hash must not be reinterpreted as unsigned.
	hex := strconv.FormatUint(uint64(h), 16)
	if len(hex) < hashHexWidth {
		hex = strings.Repeat("0", hashHexWidth-len(hex)) + hex
	}
	return hex
}

// javaStringHash reproduces java.lang.String.hashCode(): the recurrence
// h = 31*h + s[i], evaluated in 32-bit arithmetic (wrapping on
// overflow). Existing on-disk directories were laid out with this exact
// function; changing it requires an offline migration, not a code fix.
func javaStringHash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = 31*h + int32(s[i])
	}
	return h
}

// windowsReservesColon reports whether ':' must be escaped in path
// components on the current platform. It is a function (not a
// constant) purely so tests can be written against both branches
// without a build tag.
var windowsReservesColon = func() bool { return runtime.GOOS == "windows" }

// SafeFileID returns fileID with ':' replaced by '_' on hosts where ':'
// is reserved in filenames. It is the identity function elsewhere.
func SafeFileID(fileID string) string {
	if windowsReservesColon() {
		return strings.ReplaceAll(fileID, ":", "_")
	}
	return fileID
}

// UnsafeFileID reverses SafeFileID for enumeration output.
func UnsafeFileID(safe string) string {
	if windowsReservesColon() {
		return strings.ReplaceAll(safe, "_", ":")
	}
	return safe
}
