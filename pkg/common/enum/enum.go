package enum

type KVStoreType string
type CodecType string

const (
	KVStoreTypeMemory KVStoreType = "memory"
	KVStoreTypeBadger KVStoreType = "badger"
	KVStoreTypeConsul KVStoreType = "consul"
	KVStoreTypeNATS   KVStoreType = "nats"
	KVStoreTypeRedis  KVStoreType = "redis"
)

const (
	CodecTypeJSON CodecType = "json"
	CodecTypeGob  CodecType = "gob"
)
