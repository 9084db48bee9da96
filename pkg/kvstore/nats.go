package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/fystack/typed-storage/pkg/common/logger"
	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/fystack/typed-storage/pkg/retry"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	bindAttempts      = 3
	bindRetryInterval = time.Second
)

// NATSStore persists entries in a JetStream key-value bucket.
type NATSStore struct {
	nc      *nats.Conn
	kv      jetstream.KeyValue
	prefix  namespace
	timeout time.Duration
}

func NewNATSStore(cfg config.NATSConfig) (*NATSStore, error) {
	nc, err := infra.GetNATSConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	store, err := NewNATSStoreFromConn(nc, cfg)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return store, nil
}

// NewNATSStoreFromConn binds (creating if needed) the configured bucket on an
// existing connection. The store takes ownership of nc.
func NewNATSStoreFromConn(nc *nats.Conn, cfg config.NATSConfig) (*NATSStore, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout*bindAttempts)
	defer cancel()

	var kv jetstream.KeyValue
	err = retry.Constant(ctx, func() error {
		var err error
		kv, err = js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      cfg.Bucket,
			Description: "typed-storage properties",
			History:     1,
			Storage:     jetstream.FileStorage,
		})
		if errors.Is(err, jetstream.ErrJetStreamNotEnabled) || errors.Is(err, jetstream.ErrJetStreamNotEnabledForAccount) {
			return retry.Permanent(err)
		}
		if err != nil {
			logger.Warn("Bind kv bucket failed", "bucket", cfg.Bucket, "err", err)
		}
		return err
	}, bindRetryInterval, bindAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to bind kv bucket %s: %w", cfg.Bucket, err)
	}

	return &NATSStore{
		nc:      nc,
		kv:      kv,
		prefix:  namespace(cfg.Prefix),
		timeout: cfg.Timeout,
	}, nil
}

func (n *NATSStore) GetName() string {
	return string(enum.KVStoreTypeNATS)
}

func (n *NATSStore) GetBytes(key string) ([]byte, error) {
	k, err := n.prefix.fullKey(key)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	entry, err := n.kv.Get(ctx, k)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return entry.Value(), nil
}

func (n *NATSStore) SetBytes(key string, value []byte) error {
	k, err := n.prefix.fullKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	_, err = n.kv.Put(ctx, k, value)
	return err
}

func (n *NATSStore) Remove(key string) error {
	k, err := n.prefix.fullKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	err = n.kv.Delete(ctx, k)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (n *NATSStore) List(prefix string) ([]*infra.KVPair, error) {
	p, err := n.prefix.searchPrefix(prefix)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	lister, err := n.kv.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	defer lister.Stop()

	result := make([]*infra.KVPair, 0)
	for k := range lister.Keys() {
		if !strings.HasPrefix(k, p) {
			continue
		}
		entry, err := n.kv.Get(ctx, k)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, &infra.KVPair{Key: n.prefix.trim(k), Value: entry.Value()})
	}
	return result, nil
}

func (n *NATSStore) Close() error {
	return n.nc.Drain()
}
