package storage

import (
	"fmt"
	"sync"

	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/logger"
	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/fystack/typed-storage/pkg/kvstore"
)

var (
	defaultMu    sync.Mutex
	defaultStore infra.KVStore
	defaultOwned bool // opened by Init or DefaultStore, closed when replaced
	defaultCodec infra.Codec = infra.JSON
)

// Init opens the store described by cfg and installs it, together with the
// configured codec, as the process-wide default. Values only survive a
// restart when Init (or SetDefaultStore) installs a durable store; otherwise
// DefaultStore falls back to memory.
func Init(cfg config.KVStoreConfig) error {
	codec, err := infra.CodecFor(cfg.Codec)
	if err != nil {
		return err
	}

	store, err := kvstore.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Type, err)
	}

	setDefault(store, true)
	SetDefaultCodec(codec)
	logger.Info("Default property store ready", "type", store.GetName(), "codec", cfg.Codec)
	return nil
}

// SetDefaultStore installs store as the process-wide default. The caller keeps
// ownership of store: it is never closed by this package. A store previously
// opened by Init or DefaultStore is closed.
func SetDefaultStore(store infra.KVStore) {
	setDefault(store, false)
}

func setDefault(store infra.KVStore, owned bool) {
	defaultMu.Lock()
	prev, prevOwned := defaultStore, defaultOwned
	defaultStore, defaultOwned = store, owned
	defaultMu.Unlock()

	if prev != nil && prevOwned && prev != store {
		if err := prev.Close(); err != nil {
			logger.Warn("Failed to close previous default store", "type", prev.GetName(), "err", err)
		}
	}
}

// DefaultStore returns the process-wide store, creating an in-memory one on
// first use when none was installed.
func DefaultStore() infra.KVStore {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultStore == nil {
		defaultStore, defaultOwned = kvstore.NewMemoryStore(""), true
		logger.Warn("No default store configured, properties are kept in memory and lost on exit")
	}
	return defaultStore
}

func SetDefaultCodec(codec infra.Codec) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if codec == nil {
		codec = infra.JSON
	}
	defaultCodec = codec
}

func DefaultCodec() infra.Codec {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultCodec
}

// Close forgets the default store, closing it if this package opened it. The
// codec is reset to JSON.
func Close() error {
	defaultMu.Lock()
	store, owned := defaultStore, defaultOwned
	defaultStore, defaultOwned = nil, false
	defaultCodec = infra.JSON
	defaultMu.Unlock()

	if store == nil || !owned {
		return nil
	}
	return store.Close()
}
