package config

import (
	"io"
	"time"
)

// Config reads configuration values by dotted key, e.g. "otp.cooldown_seconds".
//
// Missing keys and values that cannot be converted yield the zero value, so
// callers apply their own defaults.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string

	GetInt(key string) int
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration
	// GetMillisecond reads an integer number of milliseconds.
	GetMillisecond(key string) time.Duration

	// GetArray reads a comma separated list. Elements are trimmed and empty
	// elements are dropped, so a missing key gives an empty slice.
	GetArray(key string) []string
}
