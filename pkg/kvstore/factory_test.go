package kvstore

import (
	"testing"

	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig_Memory(t *testing.T) {
	store, err := NewFromConfig(config.KVStoreConfig{Type: enum.KVStoreTypeMemory})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "memory", store.GetName())
}

func TestNewFromConfig_Badger(t *testing.T) {
	store, err := NewFromConfig(config.KVStoreConfig{
		Type:   enum.KVStoreTypeBadger,
		Badger: config.BadgerConfig{Directory: t.TempDir(), Prefix: "app"},
	})
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &BadgerStore{}, store)
	assert.Equal(t, "badger", store.GetName())
}

func TestNewFromConfig_BadgerInMemory(t *testing.T) {
	store, err := NewFromConfig(config.KVStoreConfig{
		Type:   enum.KVStoreTypeBadger,
		Badger: config.BadgerConfig{InMemory: true},
	})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SetBytes("k", []byte("v")))
}

func TestNewFromConfig_Unsupported(t *testing.T) {
	_, err := NewFromConfig(config.KVStoreConfig{Type: "postgres"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported kvstore type")
}
