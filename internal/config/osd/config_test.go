package osdconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtreemfs-go/osd-storage/internal/config"
	osdconfig "github.com/xtreemfs-go/osd-storage/internal/config/osd"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "osd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultsWhenUnset(t *testing.T) {
	path := writeConfigFile(t, "root: /var/lib/osd\n")

	root, err := config.New(config.Prm{}, config.WithConfigFile(path))
	require.NoError(t, err)
	c := osdconfig.From(root)

	require.Equal(t, "/var/lib/osd", c.Root())
	require.Equal(t, osdconfig.DefaultPerm, c.Perm())
	require.Equal(t, osdconfig.DefaultMaxSubdirsPerDir, c.MaxSubdirsPerDir())
	require.Equal(t, osdconfig.DefaultMaxDirDepth, c.MaxDirDepth())
	require.False(t, c.ChecksumsEnabled())
	require.Equal(t, osdconfig.DefaultChecksumAlgorithm, c.ChecksumAlgorithm())
	require.False(t, c.CowEnabled())
	require.Equal(t, "info", c.LoggerLevel())
}

func TestExplicitValuesOverrideDefaults(t *testing.T) {
	path := writeConfigFile(t, `
root: /data/osd
max_subdirs_per_dir: 16
max_dir_depth: 2
checksums_enabled: true
checksum_algorithm: xxhash64
cow_enabled: true
sync_writes: true
logger:
  level: debug
`)

	root, err := config.New(config.Prm{}, config.WithConfigFile(path))
	require.NoError(t, err)
	c := osdconfig.From(root)

	require.Equal(t, 16, c.MaxSubdirsPerDir())
	require.Equal(t, 2, c.MaxDirDepth())
	require.True(t, c.ChecksumsEnabled())
	require.Equal(t, "xxhash64", c.ChecksumAlgorithm())
	require.True(t, c.CowEnabled())
	require.True(t, c.SyncWrites())
	require.Equal(t, "debug", c.LoggerLevel())
}
