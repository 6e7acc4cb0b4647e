package config

import (
	"io"
	"time"
)

// TimeConfig reads integer values and scales them to a duration unit.
type TimeConfig interface {
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
//
// Missing keys and values that cannot be converted return the zero value of
// the requested type; callers that need a default use the *Or helpers.
type Config interface {
	io.Closer
	TimeConfig

	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint32(key string) uint32
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 encoded value.
	GetBinary(key string) []byte

	// GetArray reads either a YAML list or a "<a>,<b>,..." string.
	GetArray(key string) []string

	// GetMap reads "<k1>:<v1>,<k2>:<v2>" pairs.
	GetMap(key string) map[string]string

	// IsSet reports whether the key has a value in the file or the environment.
	IsSet(key string) bool
}

// IntOr returns cfg.GetInt(key), or def when the key is unset.
func IntOr(cfg Config, key string, def int) int {
	if !cfg.IsSet(key) {
		return def
	}
	return cfg.GetInt(key)
}

// StringOr returns cfg.GetString(key), or def when the key is unset or empty.
func StringOr(cfg Config, key, def string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	return def
}
