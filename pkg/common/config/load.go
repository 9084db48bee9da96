package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fystack/typed-storage/pkg/common/constant"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("struct validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = constant.EnvDevelopment
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.TimeFormat == "" {
		c.Logger.TimeFormat = time.RFC3339
	}
	c.KVStore.ApplyDefaults()
}

func (k *KVStoreConfig) ApplyDefaults() {
	if k.Type == "" {
		k.Type = enum.KVStoreTypeMemory
	}
	if k.Codec == "" {
		k.Codec = enum.CodecTypeJSON
	}
	if k.Badger.Directory == "" {
		k.Badger.Directory = constant.DefaultBadgerDirectory
	}
	if k.Consul.Scheme == "" {
		k.Consul.Scheme = "http"
	}
	if k.Consul.Address == "" {
		k.Consul.Address = "127.0.0.1:8500"
	}
	if k.NATS.Bucket == "" {
		k.NATS.Bucket = constant.DefaultNATSBucket
	}
	if k.NATS.Timeout == 0 {
		k.NATS.Timeout = constant.DefaultRemoteTimeout
	}
	if k.Redis.Address == "" {
		k.Redis.Address = "127.0.0.1:6379"
	}
	if k.Redis.Timeout == 0 {
		k.Redis.Timeout = constant.DefaultRemoteTimeout
	}
}
