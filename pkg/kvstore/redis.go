package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

type RedisStore struct {
	client  *redis.Client
	prefix  namespace
	timeout time.Duration
}

func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client, err := infra.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisStoreFromClient(client, cfg.Prefix, cfg.Timeout), nil
}

// NewRedisStoreFromClient wraps an existing client. The store takes ownership
// of client.
func NewRedisStoreFromClient(client *redis.Client, prefix string, timeout time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  namespace(prefix),
		timeout: timeout,
	}
}

func (r *RedisStore) GetName() string {
	return string(enum.KVStoreTypeRedis)
}

func (r *RedisStore) GetBytes(key string) ([]byte, error) {
	k, err := r.prefix.fullKey(key)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	v, err := r.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *RedisStore) SetBytes(key string, value []byte) error {
	k, err := r.prefix.fullKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Set(ctx, k, value, 0).Err()
}

func (r *RedisStore) Remove(key string) error {
	k, err := r.prefix.fullKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Del(ctx, k).Err()
}

func (r *RedisStore) List(prefix string) ([]*infra.KVPair, error) {
	p, err := r.prefix.searchPrefix(prefix)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var keys []string
	iter := r.client.Scan(ctx, 0, p+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	// SCAN may return a key more than once
	keys = lo.Uniq(keys)
	if len(keys) == 0 {
		return []*infra.KVPair{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]*infra.KVPair, 0, len(keys))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// removed between SCAN and MGET
			continue
		}
		result = append(result, &infra.KVPair{Key: r.prefix.trim(keys[i]), Value: []byte(s)})
	}
	return result, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
