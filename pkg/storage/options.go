package storage

import (
	"log/slog"

	"github.com/fystack/typed-storage/pkg/infra"
)

type options struct {
	store  infra.KVStore
	codec  infra.Codec
	logger *slog.Logger
}

type Option func(*options)

// WithStore pins the property to store instead of the process default.
func WithStore(store infra.KVStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCodec overrides the serialization format (JSON by default).
func WithCodec(codec infra.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithLogger routes the debug records emitted on swallowed failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
