// Package storage exposes typed values that transparently persist into a
// key-value store.
//
// A Property reads like an ordinary field: Get never fails and Set never
// reports an error. Missing, unreadable or undecodable entries yield the
// property's default value, and a value the codec cannot encode clears the
// entry instead of leaving stale data behind.
package storage

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"

	"github.com/fystack/typed-storage/pkg/common/logger"
	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/fystack/typed-storage/pkg/kvstore"
)

// Property is a typed accessor for the entry stored under a single key.
// It does not synchronize access; concurrent writers to the same key race and
// the last write wins.
type Property[V any] struct {
	key          string
	defaultValue V
	opts         options
}

// New returns a property persisted under key. It panics if key is empty.
func New[V any](key string, defaultValue V, opts ...Option) *Property[V] {
	if key == "" {
		panic("storage: property key must not be empty")
	}

	p := &Property[V]{
		key:          key,
		defaultValue: defaultValue,
	}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// NewOptional returns a property whose default is nil.
func NewOptional[V any](key string, opts ...Option) *Property[*V] {
	return New[*V](key, nil, opts...)
}

func (p *Property[V]) Key() string {
	return p.key
}

func (p *Property[V]) Default() V {
	return p.defaultValue
}

// Get returns the stored value, or the default when nothing usable is stored.
// The store is never modified.
func (p *Property[V]) Get() V {
	data, err := p.store().GetBytes(p.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			p.log().Debug("Property read failed, using default", "key", p.key, "err", err)
		}
		return p.defaultValue
	}

	if bytes.Equal(bytes.TrimSpace(data), jsonNull) && !nullable[V]() {
		p.log().Debug("Property holds null for a non-nullable type, using default", "key", p.key)
		return p.defaultValue
	}

	var value V
	if err := p.codec().Unmarshal(data, &value); err != nil {
		p.log().Debug("Property decode failed, using default", "key", p.key, "err", err)
		return p.defaultValue
	}
	return value
}

// Set persists value. If value cannot be encoded the entry is removed so that
// subsequent reads fall back to the default.
func (p *Property[V]) Set(value V) {
	store := p.store()

	data, err := p.codec().Marshal(value)
	if err != nil {
		p.log().Debug("Property encode failed, removing entry", "key", p.key, "err", err)
		if err := store.Remove(p.key); err != nil {
			p.log().Debug("Property remove failed", "key", p.key, "err", err)
		}
		return
	}

	if err := store.SetBytes(p.key, data); err != nil {
		p.log().Debug("Property write failed", "key", p.key, "err", err)
	}
}

// Reset removes the stored entry so Get returns the default again.
func (p *Property[V]) Reset() {
	if err := p.store().Remove(p.key); err != nil {
		p.log().Debug("Property remove failed", "key", p.key, "err", err)
	}
}

var jsonNull = []byte("null")

// nullable reports whether V has a nil value a stored null can decode to.
func nullable[V any]() bool {
	switch reflect.TypeOf((*V)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

func (p *Property[V]) store() infra.KVStore {
	if p.opts.store != nil {
		return p.opts.store
	}
	return DefaultStore()
}

func (p *Property[V]) codec() infra.Codec {
	if p.opts.codec != nil {
		return p.opts.codec
	}
	return DefaultCodec()
}

func (p *Property[V]) log() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return logger.L()
}
