// Package uid generates identifiers: UUIDv7 strings for sessions and
// correlation ids, snowflake numbers for ordered stream events.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
