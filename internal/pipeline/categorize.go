// Package pipeline implements the hybrid AI/heuristic categorization of raw
// transaction text.
package pipeline

import (
	"context"
	"strings"

	"github.com/pennywise-ai/pennywise/internal/classifier"
	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/rs/zerolog"
)

// Categorizer is the model-side categorization boundary. It exists so the
// merge policy can be tested without a live Gemini client.
type Categorizer interface {
	Categorize(ctx context.Context, rawText string, amount float64) (*domain.Classification, error)
}

// Service merges model output with the local keyword rule table. The rule
// table is curated ("taught") data and always wins when it matches, even if
// the model answered confidently; this keeps repeated entries of the same
// text classified identically.
type Service struct {
	ai    Categorizer // nil when the model is unavailable
	rules *classifier.Classifier
	log   zerolog.Logger
}

// NewService creates a categorization service. ai may be nil, in which case
// every transaction is classified purely by the rule table.
func NewService(ai Categorizer, rules *classifier.Classifier, log zerolog.Logger) *Service {
	return &Service{ai: ai, rules: rules, log: log}
}

// CategorizeTransaction produces a fully populated classification for raw
// user input. It never returns an error: every failure path degrades to the
// rule table, and the terminal rule-table fallback is itself a valid label.
//
// Merge policy:
//   - The rule table is always evaluated, even when the model succeeds.
//   - A rule match unconditionally overrides the model's category,
//     sub-category, necessity and sentiment; the model's merchant is kept.
//   - When no rule matches, the model's result is used as-is.
//   - When the model fails or is unavailable, the rule result is used with
//     merchant = rawText as the best-effort guess.
func (s *Service) CategorizeTransaction(ctx context.Context, rawText string, amount float64) domain.Classification {
	local := s.rules.Classify(rawText)

	var aiResult *domain.Classification
	if s.ai != nil {
		var err error
		aiResult, err = s.ai.Categorize(ctx, rawText, amount)
		if err != nil {
			s.log.Warn().Err(err).Str("raw_text", rawText).Msg("AI categorization failed, using local rules")
			aiResult = nil
		}
	}

	if aiResult == nil {
		return localClassification(rawText, local)
	}

	if local.Matched {
		merchant := aiResult.Merchant
		if strings.TrimSpace(merchant) == "" {
			merchant = rawText
		}
		return domain.Classification{
			Merchant:    merchant,
			Category:    local.Category,
			SubCategory: local.SubCategory,
			Necessity:   local.Necessity,
			Sentiment:   local.Sentiment,
		}
	}

	return *aiResult
}

func localClassification(rawText string, r classifier.Result) domain.Classification {
	return domain.Classification{
		Merchant:    rawText,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Necessity:   r.Necessity,
		Sentiment:   r.Sentiment,
	}
}
