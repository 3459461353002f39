// Package store defines the transaction persistence boundary. Two
// implementations exist: an in-memory slice for tests and ephemeral runs, and
// a Bolt-backed store for runs that should survive a restart.
package store

import (
	"context"
	"errors"

	"github.com/pennywise-ai/pennywise/internal/domain"
)

// ErrNotFound is returned when a transaction ID does not exist.
var ErrNotFound = errors.New("transaction not found")

// Store holds the ledger in insertion order. List must return transactions in
// the order they were appended, oldest first.
type Store interface {
	// List returns every transaction, oldest first.
	List(ctx context.Context) ([]domain.Transaction, error)

	// Append adds a transaction to the end of the ledger.
	Append(ctx context.Context, tx domain.Transaction) error

	// Update replaces the transaction with the same ID.
	// Returns ErrNotFound if no such transaction exists.
	Update(ctx context.Context, tx domain.Transaction) error

	// Remove deletes the transaction with the given ID.
	// Returns ErrNotFound if no such transaction exists.
	Remove(ctx context.Context, id string) error

	// Replace swaps the entire ledger for the given transactions,
	// preserving their order. Used by seeding.
	Replace(ctx context.Context, txs []domain.Transaction) error
}
