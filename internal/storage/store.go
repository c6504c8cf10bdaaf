// Package storage provides abstractions for persisting the seating snapshot.
package storage

import (
	"context"

	"github.com/mmynk/seatsync/internal/models"
)

// Push is one delivery from a Remote subscription.
type Push struct {
	// Snapshot is the stored snapshot. Only meaningful when Exists is true.
	Snapshot models.Snapshot

	// Exists is false when no record is stored under the key, or when the
	// stored record could not be decoded.
	Exists bool
}

// Local defines the local persisted cache.
// Exactly one key is read and written per session.
type Local interface {
	// Load returns the snapshot stored under key.
	// ok is false when the key is absent or holds a malformed document.
	Load(ctx context.Context, key string) (snapshot models.Snapshot, ok bool, err error)

	// Save overwrites the document stored under key.
	Save(ctx context.Context, key string, snapshot models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}

// Remote defines the shared record that every connected device reads and
// writes. Writes replace the whole document; the last writer wins.
type Remote interface {
	// Watch delivers the record's current state to fn, then every later
	// change, until ctx is done. fn is called from a single goroutine.
	// Watch returns nil once ctx is done and a non-nil error when the
	// subscription itself fails.
	Watch(ctx context.Context, key string, fn func(Push)) error

	// Save overwrites the record stored under key.
	Save(ctx context.Context, key string, snapshot models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
