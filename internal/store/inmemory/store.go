// Package inmemory provides a mutex-guarded slice-backed transaction store.
package inmemory

import (
	"context"
	"sync"

	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/pennywise-ai/pennywise/internal/store"
)

// Store keeps the ledger in memory. Safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	txs []domain.Transaction
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{txs: []domain.Transaction{}}
}

func (s *Store) List(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

func (s *Store) Append(ctx context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append(s.txs, tx)
	return nil
}

func (s *Store) Update(ctx context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == tx.ID {
			s.txs[i] = tx
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) Replace(ctx context.Context, txs []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = make([]domain.Transaction, len(txs))
	copy(s.txs, txs)
	return nil
}
