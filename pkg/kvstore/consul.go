package kvstore

// Adapted from https://github.com/philippgille/gokv/consul, byte-oriented.

import (
	"context"
	"fmt"
	"time"

	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/constant"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/fystack/typed-storage/pkg/common/logger"
	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/fystack/typed-storage/pkg/retry"
	"github.com/hashicorp/consul/api"
)

// ConsulStore implements infra.KVStore
type ConsulStore struct {
	c      *api.KV
	folder namespace
}

func (c *ConsulStore) GetName() string {
	return string(enum.KVStoreTypeConsul)
}

// GetBytes retrieves the stored value for the given key.
func (c *ConsulStore) GetBytes(key string) ([]byte, error) {
	k, err := c.folder.fullKey(key)
	if err != nil {
		return nil, err
	}

	kvPair, _, err := c.c.Get(k, nil)
	if err != nil {
		return nil, err
	}
	if kvPair == nil {
		return nil, ErrKeyNotFound
	}
	return kvPair.Value, nil
}

// SetBytes stores the given value for the given key.
func (c *ConsulStore) SetBytes(key string, value []byte) error {
	k, err := c.folder.fullKey(key)
	if err != nil {
		return err
	}

	_, err = c.c.Put(&api.KVPair{Key: k, Value: value}, nil)
	return err
}

// Remove deletes the stored value for the given key.
// Deleting a non-existing key-value pair does NOT lead to an error.
func (c *ConsulStore) Remove(key string) error {
	k, err := c.folder.fullKey(key)
	if err != nil {
		return err
	}

	_, err = c.c.Delete(k, nil)
	return err
}

func (c *ConsulStore) List(prefix string) ([]*infra.KVPair, error) {
	p, err := c.folder.searchPrefix(prefix)
	if err != nil {
		return nil, err
	}

	kvPairs, _, err := c.c.List(p, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*infra.KVPair, len(kvPairs))
	for i, kvPair := range kvPairs {
		result[i] = &infra.KVPair{
			Key:   c.folder.trim(kvPair.Key),
			Value: kvPair.Value,
		}
	}
	return result, nil
}

// Close closes the client.
// In the Consul implementation this doesn't have any effect.
func (c *ConsulStore) Close() error {
	return nil
}

// NewConsulStore creates a Consul-backed store and waits for the cluster to
// report a leader.
func NewConsulStore(cfg config.ConsulConfig) (*ConsulStore, error) {
	apiCfg := api.DefaultConfig()
	apiCfg.Scheme = cfg.Scheme
	apiCfg.Address = cfg.Address
	apiCfg.WaitTime = 10 * time.Second
	if cfg.Token != "" {
		apiCfg.Token = cfg.Token
	}
	if cfg.HttpAuth.Username != "" {
		apiCfg.HttpAuth = &api.HttpBasicAuth{
			Username: cfg.HttpAuth.Username,
			Password: cfg.HttpAuth.Password,
		}
	}

	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constant.DefaultConnectTimeout)
	defer cancel()
	err = retry.Exponential(ctx, func() error {
		_, err := client.Status().Leader()
		return err
	}, retry.ExponentialConfig{
		InitialInterval: 500 * time.Millisecond,
		MaxElapsedTime:  constant.DefaultConnectTimeout,
		OnRetry: func(err error, next time.Duration) {
			logger.Warn("Consul not ready, retrying", "address", cfg.Address, "err", err, "next", next)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Consul: %w", err)
	}

	return &ConsulStore{
		c:      client.KV(),
		folder: namespace(cfg.Folder),
	}, nil
}
