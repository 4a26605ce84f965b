package config

import (
	"fmt"
	"time"
)

// Config is the complete configuration for a tscore block store process:
// its own volumes/cache, the optional queue backend for lifecycle events,
// the optional etcd endpoint for distributed rotation fencing, and logging.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Etcd    EtcdConfig    `mapstructure:"etcd"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig describes the volume layout a FileBlockStore opens over.
type StorageConfig struct {
	DataDir        string   `mapstructure:"data_dir"`
	VolumeCount    int      `mapstructure:"volume_count"`    // number of rotating volumes (default: 4)
	VolumeCapacity uint32   `mapstructure:"volume_capacity"` // blocks per volume (default: 1000000)
	ColdVolumes    []int    `mapstructure:"cold_volumes"`    // volume indices compressed via ColdCodec
	FlushDirtyOnly bool     `mapstructure:"flush_dirty_only"`
	_              struct{} // (reserved for future on-disk layout fields)
}

// CacheConfig configures the in-process BlockCache and its optional Redis
// mirror.
type CacheConfig struct {
	Bits      uint          `mapstructure:"bits"`       // log2(slot count), default 16
	MirrorURL string        `mapstructure:"mirror_url"` // optional redis:// URL
	MirrorTTL time.Duration `mapstructure:"mirror_ttl"`
}

// EtcdConfig configures the optional distributed rotation fence.
type EtcdConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	LockKey     string        `mapstructure:"lock_key"`
}

// QueueConfig configures the optional lifecycle-event publisher.
type QueueConfig struct {
	Type     string `mapstructure:"type"` // nats (used when empty), redis, memory (config default)
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Subject  string `mapstructure:"subject"`

	RedisDB       int    `mapstructure:"redis_db"`
	RedisStream   string `mapstructure:"redis_stream"`
	RedisGroup    string `mapstructure:"redis_group"`
	RedisConsumer string `mapstructure:"redis_consumer"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}
	if err := c.Etcd.Validate(); err != nil {
		return fmt.Errorf("etcd config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.VolumeCount < 1 {
		return fmt.Errorf("volume_count must be at least 1")
	}
	if c.VolumeCapacity == 0 {
		return fmt.Errorf("volume_capacity must be positive")
	}
	for _, idx := range c.ColdVolumes {
		if idx < 0 || idx >= c.VolumeCount {
			return fmt.Errorf("cold_volumes: index %d out of range for volume_count %d", idx, c.VolumeCount)
		}
	}
	return nil
}

func (c *EtcdConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("etcd.endpoints is required when etcd.enabled is true")
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("etcd.dial_timeout must be positive")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}
	return nil
}
