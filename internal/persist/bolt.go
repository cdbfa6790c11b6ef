package persist

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// bucketSlots is the bbolt bucket holding all slots.
var bucketSlots = []byte("slots")

// BoltSlot is a Slot stored in a local bbolt database file.
type BoltSlot struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the bbolt database at path.
func OpenBolt(path string) (*BoltSlot, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slots bucket: %w", err)
	}
	return &BoltSlot{db: db}, nil
}

// Get returns the value stored under key.
func (s *BoltSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSlots)
		if bucket == nil {
			return fmt.Errorf("slots bucket not found")
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return ErrSlotEmpty
		}
		// data is only valid inside the transaction.
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key.
func (s *BoltSlot) Put(ctx context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSlots)
		if bucket == nil {
			return fmt.Errorf("slots bucket not found")
		}
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save slot %s: %w", key, err)
		}
		return nil
	})
}

// Close closes the database file.
func (s *BoltSlot) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
