package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/pennywise-ai/pennywise/internal/classifier"
	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/rs/zerolog"
)

// mockCategorizer is a hand-rolled Categorizer for exercising the merge
// policy without a live model.
type mockCategorizer struct {
	result *domain.Classification
	err    error
	calls  int
}

func (m *mockCategorizer) Categorize(ctx context.Context, rawText string, amount float64) (*domain.Classification, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newService(ai Categorizer) *Service {
	return NewService(ai, classifier.New(), zerolog.Nop())
}

func TestCategorizeTransaction_RuleOverridesAI(t *testing.T) {
	// The model answers confidently and wrongly; the rule table must win on
	// every label field while the model's merchant is kept.
	ai := &mockCategorizer{
		result: &domain.Classification{
			Merchant:    "Netflix",
			Category:    domain.CategoryOther,
			SubCategory: "Misc",
			Necessity:   domain.NecessityNeed,
			Sentiment:   domain.SentimentNegative,
		},
	}

	got := newService(ai).CategorizeTransaction(context.Background(), "Netflix India Monthly", 499)

	if got.Merchant != "Netflix" {
		t.Errorf("Merchant = %q, want AI's %q", got.Merchant, "Netflix")
	}
	if got.Category != domain.CategoryEntertainment {
		t.Errorf("Category = %q, want rule table's Entertainment", got.Category)
	}
	if got.SubCategory != "Subscription" {
		t.Errorf("SubCategory = %q, want Subscription", got.SubCategory)
	}
	if got.Necessity != domain.NecessityWant {
		t.Errorf("Necessity = %q, want Want", got.Necessity)
	}
	if got.Sentiment != domain.SentimentPositive {
		t.Errorf("Sentiment = %q, want Positive", got.Sentiment)
	}
}

func TestCategorizeTransaction_AIUsedWhenNoRuleMatches(t *testing.T) {
	ai := &mockCategorizer{
		result: &domain.Classification{
			Merchant:    "Sharma Electricals",
			Category:    domain.CategoryHousing,
			SubCategory: "Repairs",
			Necessity:   domain.NecessityNeed,
			Sentiment:   domain.SentimentNeutral,
		},
	}

	got := newService(ai).CategorizeTransaction(context.Background(), "Fan installation charges 2nd floor", 750)

	if got != *ai.result {
		t.Errorf("got %+v, want AI result %+v", got, *ai.result)
	}
}

func TestCategorizeTransaction_AIFailureFallsBackToRules(t *testing.T) {
	ai := &mockCategorizer{err: errors.New("quota exceeded")}

	got := newService(ai).CategorizeTransaction(context.Background(), "Uber ride to office", 420)

	if got.Category != domain.CategoryTransportation {
		t.Errorf("Category = %q, want Transportation", got.Category)
	}
	if got.Merchant != "Uber ride to office" {
		t.Errorf("Merchant = %q, want the raw text as best-effort guess", got.Merchant)
	}
	if got.SubCategory == "" || got.Necessity == "" || got.Sentiment == "" {
		t.Errorf("fallback result not fully populated: %+v", got)
	}
}

func TestCategorizeTransaction_NilAI(t *testing.T) {
	got := newService(nil).CategorizeTransaction(context.Background(), "HP Petrol Pump Fillup", 2500)

	if got.Category != domain.CategoryTransportation {
		t.Errorf("Category = %q, want Transportation", got.Category)
	}
	if got.SubCategory != "Fuel" {
		t.Errorf("SubCategory = %q, want Fuel", got.SubCategory)
	}
	if got.Necessity != domain.NecessityNeed {
		t.Errorf("Necessity = %q, want Need", got.Necessity)
	}
	if got.Sentiment != domain.SentimentNeutral {
		t.Errorf("Sentiment = %q, want Neutral", got.Sentiment)
	}
}

func TestCategorizeTransaction_AIFailureNoRuleMatch(t *testing.T) {
	ai := &mockCategorizer{err: errors.New("network unreachable")}

	got := newService(ai).CategorizeTransaction(context.Background(), "Mystery charge 8839", 99)

	// Terminal fallback must still be a fully valid label.
	want := domain.Classification{
		Merchant:    "Mystery charge 8839",
		Category:    domain.CategoryUncategorized,
		SubCategory: "General",
		Necessity:   domain.NecessityWant,
		Sentiment:   domain.SentimentNeutral,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCategorizeTransaction_RulesAlwaysEvaluated(t *testing.T) {
	// Even when the model succeeds, the local table must run so taught rules
	// stay authoritative. The empty-merchant AI reply also exercises the
	// merchant backfill.
	ai := &mockCategorizer{
		result: &domain.Classification{
			Merchant:    "",
			Category:    domain.CategoryOther,
			SubCategory: "Misc",
			Necessity:   domain.NecessityWant,
			Sentiment:   domain.SentimentNeutral,
		},
	}

	got := newService(ai).CategorizeTransaction(context.Background(), "Starbucks coffee", 350)

	if ai.calls != 1 {
		t.Fatalf("expected exactly one AI call, got %d", ai.calls)
	}
	if got.Category != domain.CategoryFood || got.SubCategory != "Coffee" {
		t.Errorf("rule labels not applied: %+v", got)
	}
	if got.Merchant != "Starbucks coffee" {
		t.Errorf("Merchant = %q, want raw text when AI merchant is empty", got.Merchant)
	}
}
