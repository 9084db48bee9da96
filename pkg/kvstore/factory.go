package kvstore

import (
	"fmt"

	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/fystack/typed-storage/pkg/infra"
)

// NewFromConfig constructs an infra.KVStore based on kvstore configuration.
func NewFromConfig(cfg config.KVStoreConfig) (infra.KVStore, error) {
	switch cfg.Type {
	case enum.KVStoreTypeMemory, "":
		return NewMemoryStore(cfg.Memory.Prefix), nil
	case enum.KVStoreTypeBadger:
		if cfg.Badger.InMemory {
			return NewInMemoryBadgerStore(cfg.Badger.Prefix)
		}
		return NewBadgerStore(cfg.Badger.Directory, cfg.Badger.Prefix)
	case enum.KVStoreTypeConsul:
		return NewConsulStore(cfg.Consul)
	case enum.KVStoreTypeNATS:
		return NewNATSStore(cfg.NATS)
	case enum.KVStoreTypeRedis:
		return NewRedisStore(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported kvstore type: %s", cfg.Type)
	}
}
