// Package osdconfig is a wrapper over the config section which provides
// typed access to the storage layout's own settings, in the style of
// the teacher's per-component config wrappers (e.g. peapodconfig).
package osdconfig

import (
	"github.com/xtreemfs-go/osd-storage/internal/config"
)

// Config is a wrapper over the config section which provides access to
// storage-layout configuration.
type Config config.Config

// Various OSD layout config defaults.
const (
	// DefaultPerm is the default permission bits new object files are
	// created with.
	DefaultPerm = 0o644
	// DefaultMaxSubdirsPerDir bounds hash-fanout width per level.
	DefaultMaxSubdirsPerDir = 256
	// DefaultMaxDirDepth bounds hash-fanout depth.
	DefaultMaxDirDepth = 4
	// DefaultChecksumAlgorithm names the checksum.Factory entry used
	// when checksums are enabled but no algorithm is configured.
	DefaultChecksumAlgorithm = "crc64nvme"
)

// From wraps a config section into Config.
func From(c *config.Config) *Config {
	return (*Config)(c)
}

// Root returns the value of the "root" config parameter: the storage
// tree's filesystem root, or "" if unset. Panics if the value cannot be
// cast to a string.
func (x *Config) Root() string {
	return config.String((*config.Config)(x), "root")
}

// Perm returns the value of the "perm" config parameter, or
// DefaultPerm if unset.
func (x *Config) Perm() int {
	if p := config.IntSafe((*config.Config)(x), "perm"); p != 0 {
		return p
	}
	return DefaultPerm
}

// MaxSubdirsPerDir returns the value of the "max_subdirs_per_dir"
// config parameter, or DefaultMaxSubdirsPerDir if unset.
func (x *Config) MaxSubdirsPerDir() int {
	if n := config.IntSafe((*config.Config)(x), "max_subdirs_per_dir"); n > 0 {
		return n
	}
	return DefaultMaxSubdirsPerDir
}

// MaxDirDepth returns the value of the "max_dir_depth" config
// parameter, or DefaultMaxDirDepth if unset.
func (x *Config) MaxDirDepth() int {
	if n := config.IntSafe((*config.Config)(x), "max_dir_depth"); n > 0 {
		return n
	}
	return DefaultMaxDirDepth
}

// ChecksumsEnabled returns the value of the "checksums_enabled" config
// parameter.
func (x *Config) ChecksumsEnabled() bool {
	return config.BoolSafe((*config.Config)(x), "checksums_enabled")
}

// ChecksumAlgorithm returns the value of the "checksum_algorithm"
// config parameter, or DefaultChecksumAlgorithm if unset.
func (x *Config) ChecksumAlgorithm() string {
	if a := config.StringSafe((*config.Config)(x), "checksum_algorithm"); a != "" {
		return a
	}
	return DefaultChecksumAlgorithm
}

// CowEnabled returns the value of the "cow_enabled" config parameter.
func (x *Config) CowEnabled() bool {
	return config.BoolSafe((*config.Config)(x), "cow_enabled")
}

// SyncWrites returns the value of the "sync_writes" config parameter.
func (x *Config) SyncWrites() bool {
	return config.BoolSafe((*config.Config)(x), "sync_writes")
}

// LoggerLevel returns the value of the "logger.level" config
// parameter, or "info" if unset.
func (x *Config) LoggerLevel() string {
	if l := config.StringSafe((*config.Config)(x), "logger.level"); l != "" {
		return l
	}
	return "info"
}
