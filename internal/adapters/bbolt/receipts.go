// Package bbolt implements the ports.ReceiptStore interface using bbolt
// (embedded B+ tree). One top-level bucket holds a JSON-serialized receipt per
// language. Writes are transactional; a crash mid-write cannot corrupt
// previously committed receipts.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mvp-scale/tsforge/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var bucketReceipts = []byte("receipts")

// Store implements ports.ReceiptStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReceipt persists a build receipt, overwriting any prior receipt for the
// same language.
func (s *Store) SaveReceipt(r *ports.BuildReceipt) error {
	if r == nil {
		return fmt.Errorf("nil receipt")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketReceipts)
		if err != nil {
			return err
		}
		return b.Put([]byte(r.Language), data)
	})
}

// LoadReceipt retrieves the receipt for a language.
// Returns nil, nil if none exists.
func (s *Store) LoadReceipt(language string) (*ports.BuildReceipt, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReceipts)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(language)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var r ports.BuildReceipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal receipt: %w", err)
	}
	return &r, nil
}

// Languages returns the names of all languages with a stored receipt.
func (s *Store) Languages() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReceipts)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
