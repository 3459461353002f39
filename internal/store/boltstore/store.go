// Package boltstore persists the ledger in a Bolt database file. Keys are
// monotonically increasing sequence numbers so iteration order matches
// insertion order.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/pennywise-ai/pennywise/internal/store"
)

var bucketTransactions = []byte("transactions")

// Store is a Bolt-backed transaction store. Safe for concurrent use; Bolt
// serializes writers internally.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and ensures the transactions
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltstore.Open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTransactions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltstore.Open: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) List(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTransactions)
		return b.ForEach(func(k, v []byte) error {
			var t domain.Transaction
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("decode key %x: %w", k, err)
			}
			out = append(out, t)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore.List: %w", err)
	}
	if out == nil {
		out = []domain.Transaction{}
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, t domain.Transaction) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTransactions)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		v, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), v)
	})
	if err != nil {
		return fmt.Errorf("boltstore.Append: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, t domain.Transaction) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTransactions)
		k, err := findKey(b, t.ID)
		if err != nil {
			return err
		}
		v, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return b.Put(k, v)
	})
	if err == store.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("boltstore.Update: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTransactions)
		k, err := findKey(b, id)
		if err != nil {
			return err
		}
		return b.Delete(k)
	})
	if err == store.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("boltstore.Remove: %w", err)
	}
	return nil
}

func (s *Store) Replace(ctx context.Context, txs []domain.Transaction) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketTransactions); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketTransactions)
		if err != nil {
			return err
		}
		for _, t := range txs {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			v, err := json.Marshal(t)
			if err != nil {
				return err
			}
			if err := b.Put(seqKey(seq), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("boltstore.Replace: %w", err)
	}
	return nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// findKey scans the bucket for the entry whose decoded ID matches.
func findKey(b *bolt.Bucket, id string) ([]byte, error) {
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var t domain.Transaction
		if err := json.Unmarshal(v, &t); err != nil {
			return nil, fmt.Errorf("decode key %x: %w", k, err)
		}
		if t.ID == id {
			return k, nil
		}
	}
	return nil, store.ErrNotFound
}
