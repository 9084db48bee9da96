package constant

import "time"

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DefaultBadgerDirectory = "data/badger"
	DefaultNATSBucket      = "properties"
	DefaultRemoteTimeout   = 5 * time.Second
	DefaultConnectTimeout  = 30 * time.Second
)
