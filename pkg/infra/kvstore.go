package infra

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/fystack/typed-storage/pkg/common/enum"
)

// KVStore is an interface for byte-oriented key-value stores.
// There are multiple implementations available: in-memory, BadgerDB, Consul, NATS JetStream and Redis.

type KVPair struct {
	Key   string
	Value []byte
}

type KVStore interface {
	GetName() string
	// GetBytes returns kvstore.ErrKeyNotFound when nothing is stored under k.
	GetBytes(k string) ([]byte, error)
	SetBytes(k string, v []byte) error
	// Remove deletes k. Removing a missing key is not an error.
	Remove(k string) error

	List(prefix string) ([]*KVPair, error)
	Close() error
}

// Codec encodes/decodes Go values to/from slices of bytes.
type Codec interface {
	// Marshal encodes a Go value to a slice of bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes a slice of bytes into a Go value.
	Unmarshal(data []byte, v any) error
}

// Convenience variables
var (
	// JSON is a JSONcodec that encodes/decodes Go values to/from JSON.
	JSON = JSONcodec{}
	// Gob is a GobCodec that encodes/decodes Go values to/from gob.
	Gob = GobCodec{}
)

// CodecFor returns the codec registered for t.
func CodecFor(t enum.CodecType) (Codec, error) {
	switch t {
	case enum.CodecTypeJSON, "":
		return JSON, nil
	case enum.CodecTypeGob:
		return Gob, nil
	default:
		return nil, fmt.Errorf("unsupported codec type: %s", t)
	}
}

// JSONcodec encodes/decodes Go values to/from JSON.
type JSONcodec struct{}

// Marshal encodes a Go value to JSON.
func (c JSONcodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a JSON value into a Go value.
func (c JSONcodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// GobCodec encodes/decodes Go values to/from gob.
type GobCodec struct{}

// Marshal encodes a Go value to gob.
func (c GobCodec) Marshal(v any) ([]byte, error) {
	buffer := new(bytes.Buffer)
	if err := gob.NewEncoder(buffer).Encode(v); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Unmarshal decodes a gob value into a Go value.
func (c GobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
