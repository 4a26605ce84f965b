package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// EnsureDirectories creates the store's data directory if missing.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Storage.DataDir, 0755)
}

// VolumePath returns the on-disk path for the Nth volume file.
func (c *Config) VolumePath(index int) string {
	return filepath.Join(c.Storage.DataDir, "vol-"+strconv.Itoa(index)+".dat")
}

// MetaPath returns the on-disk path for the meta-volume file.
func (c *Config) MetaPath() string {
	return filepath.Join(c.Storage.DataDir, "meta.dat")
}

// IsColdVolume reports whether volume index should be wrapped in ColdCodec.
func (c *Config) IsColdVolume(index int) bool {
	for _, idx := range c.Storage.ColdVolumes {
		if idx == index {
			return true
		}
	}
	return false
}
