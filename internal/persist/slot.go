// Package persist saves the people list to a named slot of a key-value store and loads it back at
// startup. Persistence is best effort: failures are logged and never reach the user.
package persist

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Slot.Get when nothing has been stored under the key yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a key-value store holding one value per key.
type Slot interface {
	// Get returns the value stored under key, or ErrSlotEmpty.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Close releases the underlying store.
	Close() error
}
