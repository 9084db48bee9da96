package config

import (
	"time"

	"github.com/fystack/typed-storage/pkg/common/enum"
)

type Config struct {
	Environment string        `yaml:"environment" validate:"required,oneof=production development"`
	Logger      LoggerConfig  `yaml:"logger"`
	KVStore     KVStoreConfig `yaml:"kvstore"     validate:"required"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	TimeFormat string `yaml:"time_format"`
}

type KVStoreConfig struct {
	Type   enum.KVStoreType `yaml:"type" validate:"required,oneof=memory badger consul nats redis"`
	Codec  enum.CodecType   `yaml:"codec" validate:"omitempty,oneof=json gob"`
	Badger BadgerConfig     `yaml:"badger"`
	Consul ConsulConfig     `yaml:"consul"`
	NATS   NATSConfig       `yaml:"nats"`
	Redis  RedisConfig      `yaml:"redis"`
	Memory MemoryConfig     `yaml:"memory"`
}

type MemoryConfig struct {
	Prefix string `yaml:"prefix"`
}

type BadgerConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
	InMemory  bool   `yaml:"in_memory"`
}

type ConsulConfig struct {
	Scheme   string         `yaml:"scheme" validate:"omitempty,oneof=http https"`
	Address  string         `yaml:"address"`
	Folder   string         `yaml:"folder"`
	Token    string         `yaml:"token"`
	HttpAuth HttpAuthConfig `yaml:"http_auth"`
}

type HttpAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type NATSConfig struct {
	URL      string        `yaml:"url" validate:"omitempty,url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Bucket   string        `yaml:"bucket"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min=0"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
}
