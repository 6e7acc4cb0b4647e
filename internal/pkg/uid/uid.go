// Package uid generates identifiers: time-ordered UUIDs for correlation,
// random UUIDs for unguessable lookup tokens and snowflake numbers for
// primary keys.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
