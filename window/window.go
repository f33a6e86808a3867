package window

import (
	"errors"
	"fmt"
	"reflect"
)

type (
	// Store is a key-partitioned, time-ordered multi-value store. Each Key
	// owns a bucket of Entries kept in insertion order. Entries are only ever
	// appended or evicted, never reordered or updated in place
	Store[Key comparable, Value any] interface {
		// Name returns the name this Store was created with
		Name() string

		// Put appends a new Entry to the Key's bucket
		Put(Key, Value, Timestamp) error

		// FetchAll returns the live Entries for a Key, in insertion order
		FetchAll(Key) []Entry[Value]

		// AdvanceClock records the highest Timestamp observed by this Store
		// and evicts any Entries that have fallen out of retention
		AdvanceClock(Timestamp) error

		// Clock returns the highest Timestamp observed so far. The boolean
		// is false if the clock has never been advanced
		Clock() (Timestamp, bool)

		// Keys returns all keys that currently have live Entries
		Keys() []Key

		// Count returns the number of live Entries across all keys
		Count() int

		// Range iterates over the live Entries of every key. If fn returns
		// false, iteration stops
		Range(fn func(Key, []Entry[Value]) bool)

		// Close drops every Entry and releases the metric series that were
		// labeled with this Store's name
		Close() error
	}

	// Timestamp is a point in time expressed in ticks. Ticks may be logical
	// or wall-clock, the Store only requires that they are totally ordered
	Timestamp int64

	// Entry is a stored Value along with the Timestamp it was put with
	Entry[Value any] struct {
		Value     Value
		Timestamp Timestamp
	}
)

// Error messages
var (
	ErrNilKey           = errors.New("window key must not be nil")
	ErrInvalidTimestamp = errors.New("window timestamp must not be negative")
)

// CheckRecord validates the Key and Timestamp of a record before it is allowed
// to touch a Store
func CheckRecord[Key comparable](k Key, ts Timestamp) error {
	if isNil(k) {
		return ErrNilKey
	}
	return CheckTimestamp(ts)
}

// isNil catches nil interfaces as well as typed nils, such as a nil pointer
// key or an interface key holding one
func isNil(k any) bool {
	if k == nil {
		return true
	}
	switch v := reflect.ValueOf(k); v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan,
		reflect.Map, reflect.Func, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// CheckTimestamp rejects Timestamps that no Store will accept
func CheckTimestamp(ts Timestamp) error {
	if ts < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimestamp, ts)
	}
	return nil
}
