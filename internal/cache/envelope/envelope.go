// Package envelope defines the closed tagged-variant key and value types
// shared across the domains that use the cache. Adding a new cached
// computation domain means adding one concrete type per role (key, value)
// and the pair of conversions below; removing a domain is a breaking
// on-disk change, same as the rest of the cache.
//
// This mirrors the purpose of original_source/src/disson/cache/mod.rs's
// cache_enum! macro (a closed Rust enum per role with From/TryFrom impls),
// expressed the idiomatic Go way: a marker interface implemented by a fixed
// set of concrete domain types, plus a generic downcast helper that reports
// a mismatched tag the same way the Rust ConvertError does.
package envelope

import "fmt"

// Key is implemented by exactly one concrete type per cache-using domain.
// Encode must be a deterministic, canonical serialization: two Keys that
// Encode to the same bytes must represent the same cache entry, and vice
// versa.
type Key interface {
	CacheKeyTag() string
	Encode() []byte
}

// Value is implemented by exactly one concrete type per domain value
// variant (e.g. this system's Block and Histogram records).
type Value interface {
	CacheValueTag() string
}

// ConvertError reports a downcast attempt that found the wrong variant.
type ConvertError struct {
	Kind string // "key" or "value"
	Want string
	Got  string
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("failed to unwrap cache %s, expected %s, got %s", e.Kind, e.Want, e.Got)
}

// AsValue downcasts a Value to a concrete domain type T. Fails with
// *ConvertError if v does not hold a T.
func AsValue[T Value](v Value) (T, error) {
	if c, ok := v.(T); ok {
		return c, nil
	}
	var zero T
	return zero, &ConvertError{Kind: "value", Want: fmt.Sprintf("%T", zero), Got: v.CacheValueTag()}
}

// Payload is a value's scalar output storage, with two implementations
// reflecting the spec's write-borrowed / read-owned contract (spec.md
// §4.6, §9 open question — the borrowed-on-write form is the one chosen
// here, per the spec's recommendation).
type Payload interface {
	Bytes() []float64
}

// BorrowedPayload wraps a caller-owned slice without copying it. Used on
// the hot append path, where the tile kernel's own output buffer is still
// live and safe to hand to the cache writer as-is.
type BorrowedPayload struct{ data []float64 }

// Borrow wraps data without copying.
func Borrow(data []float64) BorrowedPayload { return BorrowedPayload{data: data} }

// Bytes implements Payload.
func (p BorrowedPayload) Bytes() []float64 { return p.data }

// OwnedPayload holds a slice decoded from a cache file. Always its own
// allocation, safe to retain past the decoder's lifetime. The read path
// always produces this variant.
type OwnedPayload struct{ data []float64 }

// Own wraps a freshly allocated, exclusively-owned slice.
func Own(data []float64) OwnedPayload { return OwnedPayload{data: data} }

// Bytes implements Payload.
func (p OwnedPayload) Bytes() []float64 { return p.data }
