package kvstore

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/fystack/typed-storage/pkg/infra"
)

type BadgerStore struct {
	db     *badger.DB
	prefix namespace
}

func NewBadgerStore(path string, prefix string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(path).WithLogger(nil), prefix)
}

// NewInMemoryBadgerStore opens a Badger instance that never touches disk.
func NewInMemoryBadgerStore(prefix string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), prefix)
}

func openBadger(opts badger.Options, prefix string) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{
		db:     db,
		prefix: namespace(prefix),
	}, nil
}

func (b *BadgerStore) GetName() string {
	return string(enum.KVStoreTypeBadger)
}

func (b *BadgerStore) GetBytes(key string) ([]byte, error) {
	k, err := b.prefix.fullKey(key)
	if err != nil {
		return nil, err
	}

	var valCopy []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(k))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return valCopy, nil
}

func (b *BadgerStore) SetBytes(key string, value []byte) error {
	k, err := b.prefix.fullKey(key)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(k), value)
	})
}

func (b *BadgerStore) Remove(key string) error {
	k, err := b.prefix.fullKey(key)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(k))
	})
}

func (b *BadgerStore) List(prefix string) ([]*infra.KVPair, error) {
	searchPrefix, err := b.prefix.searchPrefix(prefix)
	if err != nil {
		return nil, err
	}

	result := make([]*infra.KVPair, 0)
	err = b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(searchPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result = append(result, &infra.KVPair{
				Key:   b.prefix.trim(string(item.KeyCopy(nil))),
				Value: v,
			})
		}
		return nil
	})
	return result, err
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
