// Package store provides the ordered, transactional key-value storage the
// ledger engine runs on. Two drivers are included: an in-memory store used
// by tests and tooling, and a SQLite-backed store for durable state.
//
// Update is all-or-nothing: when the transaction function returns an error,
// none of its writes become visible. The engine relies on this for every
// mutating operation and performs no compensating rollback of its own.
package store

import "errors"

// ErrClosed is returned when operating on a closed store.
var ErrClosed = errors.New("store: closed")

// Tx is a single transaction over the key space.
type Tx interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Store executes read-only and read-write transactions.
type Store interface {
	// View runs fn in a read-only transaction.
	View(fn func(Tx) error) error

	// Update runs fn in a read-write transaction. If fn returns an error
	// the transaction is discarded and no write is applied.
	Update(fn func(Tx) error) error

	// Close releases the store. Further calls return ErrClosed.
	Close() error
}
