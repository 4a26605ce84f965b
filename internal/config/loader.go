package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file, falling back to defaults for
// anything the file and environment don't set.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tscore")
	}

	setDefaults(v)

	v.SetEnvPrefix("TSCORE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.volume_count", 4)
	v.SetDefault("storage.volume_capacity", 1000000)
	v.SetDefault("storage.flush_dirty_only", false)

	v.SetDefault("cache.bits", 16)
	v.SetDefault("cache.mirror_ttl", "1h")

	v.SetDefault("etcd.enabled", false)
	v.SetDefault("etcd.endpoints", []string{"http://localhost:2379"})
	v.SetDefault("etcd.dial_timeout", "5s")
	v.SetDefault("etcd.lock_key", "/tscore/rotation")

	v.SetDefault("queue.type", "memory")
	v.SetDefault("queue.url", "nats://localhost:4222")
	v.SetDefault("queue.subject", "tscore.blockstore.events")
	v.SetDefault("queue.redis_stream", "tscore:blockstore:events")
	v.SetDefault("queue.redis_group", "tscore-blockstore")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
	v.SetDefault("logging.time_format", "RFC3339")
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file, falling back to DefaultConfig
// on any error (missing/malformed file, failed validation).
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns the configuration a fresh, unconfigured node runs
// with: a single-machine four-volume store, an in-process memory queue, and
// no distributed rotation fence.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:        "./data",
			VolumeCount:    4,
			VolumeCapacity: 1000000,
			FlushDirtyOnly: false,
		},
		Cache: CacheConfig{
			Bits:      16,
			MirrorTTL: time.Hour,
		},
		Etcd: EtcdConfig{
			Enabled:     false,
			Endpoints:   []string{"http://localhost:2379"},
			DialTimeout: 5 * time.Second,
			LockKey:     "/tscore/rotation",
		},
		Queue: QueueConfig{
			Type:        "memory",
			Subject:     "tscore.blockstore.events",
			RedisStream: "tscore:blockstore:events",
			RedisGroup:  "tscore-blockstore",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			TimeFormat: "RFC3339",
		},
	}
}
