package kvstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/fystack/typed-storage/pkg/infra"
)

// MemoryStore keeps entries in process memory. Values are copied on the way in
// and out so callers cannot mutate stored blobs.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	prefix namespace
	closed bool
}

func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		prefix: namespace(prefix),
	}
}

func (m *MemoryStore) GetName() string {
	return string(enum.KVStoreTypeMemory)
}

func (m *MemoryStore) GetBytes(key string) ([]byte, error) {
	k, err := m.prefix.fullKey(key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	v, ok := m.data[k]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte{}, v...), nil
}

func (m *MemoryStore) SetBytes(key string, value []byte) error {
	k, err := m.prefix.fullKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	m.data[k] = append([]byte{}, value...)
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	k, err := m.prefix.fullKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, k)
	return nil
}

func (m *MemoryStore) List(prefix string) ([]*infra.KVPair, error) {
	p, err := m.prefix.searchPrefix(prefix)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrStoreClosed
	}

	result := make([]*infra.KVPair, 0)
	for k, v := range m.data {
		if strings.HasPrefix(k, p) {
			result = append(result, &infra.KVPair{Key: m.prefix.trim(k), Value: append([]byte{}, v...)})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}
