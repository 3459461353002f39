// Package insights produces the AI-derived ledger summaries: spending
// persona, budget caps, financial health score and free-text chat. Every
// generator has a static fallback so no failure here ever surfaces as an
// error to callers.
package insights

import (
	"context"
	"sync"
	"time"

	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Generator is the model-side boundary for insight generation. It exists so
// the fallback and fan-out behavior can be tested without a live client.
type Generator interface {
	GeneratePersona(ctx context.Context, txs []domain.Transaction) (*domain.SpendingPersona, error)
	RecommendBudgets(ctx context.Context, txs []domain.Transaction) ([]domain.BudgetRecommendation, error)
	ScoreHealth(ctx context.Context, txs []domain.Transaction) (*domain.FinancialHealth, error)
	Chat(ctx context.Context, query string, txs []domain.Transaction, ref time.Time) (string, error)
}

// Snapshot is the latest set of generated insights. Reads always get a
// snapshot immediately; regeneration happens in the background.
type Snapshot struct {
	Persona     domain.SpendingPersona        `json:"persona"`
	Budgets     []domain.BudgetRecommendation `json:"budgets"`
	Health      domain.FinancialHealth        `json:"health"`
	GeneratedAt time.Time                     `json:"generatedAt"`
}

// Service generates insights and caches the most recent snapshot.
type Service struct {
	gen Generator // nil when the model is unavailable
	log zerolog.Logger

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewService creates an insights service. gen may be nil, in which case every
// refresh produces the static fallback values.
func NewService(gen Generator, log zerolog.Logger) *Service {
	return &Service{
		gen: gen,
		log: log,
		snapshot: Snapshot{
			Persona: FallbackPersona(),
			Budgets: FallbackBudgets(),
			Health:  FallbackHealth(),
		},
	}
}

// Latest returns the most recent snapshot without blocking on any AI call.
func (s *Service) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// RefreshAll regenerates persona, budgets and health concurrently as
// independent tasks and stores the combined snapshot. One generator failing
// never blocks or invalidates another's success: each task swallows its own
// failure and substitutes the static fallback, so the join always succeeds.
func (s *Service) RefreshAll(ctx context.Context, txs []domain.Transaction) Snapshot {
	snap := Snapshot{
		Persona: FallbackPersona(),
		Budgets: FallbackBudgets(),
		Health:  FallbackHealth(),
	}

	if s.gen != nil {
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			persona, err := s.gen.GeneratePersona(gctx, txs)
			if err != nil {
				s.log.Warn().Err(err).Msg("Persona generation failed, keeping fallback")
				return nil
			}
			snap.Persona = *persona
			return nil
		})

		g.Go(func() error {
			budgets, err := s.gen.RecommendBudgets(gctx, txs)
			if err != nil {
				s.log.Warn().Err(err).Msg("Budget recommendation failed, keeping fallback")
				return nil
			}
			snap.Budgets = budgets
			return nil
		})

		g.Go(func() error {
			health, err := s.gen.ScoreHealth(gctx, txs)
			if err != nil {
				s.log.Warn().Err(err).Msg("Health scoring failed, keeping fallback")
				return nil
			}
			snap.Health = *health
			return nil
		})

		// Tasks never return errors; Wait only orders the writes above.
		_ = g.Wait()
	}

	snap.GeneratedAt = time.Now()

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	return snap
}
