package insights

import "github.com/pennywise-ai/pennywise/internal/domain"

// Static degraded results returned verbatim whenever the model is
// unreachable, over quota, or replies with something unparseable. They are
// schema-valid so the UI never has to render an error state.

// FallbackPersona is the persona shown until a real one is generated.
func FallbackPersona() domain.SpendingPersona {
	return domain.SpendingPersona{
		Name:          "The Quiet Spender",
		Justification: "PennyWise is still observing your patterns. Keep logging expenses to see your persona evolve.",
		Recommendations: []string{
			"Track your small daily expenses",
			"Prioritize savings this month",
			"Check back once more data is logged",
		},
	}
}

// FallbackBudgets is a pair of generic caps based on urban benchmarks.
func FallbackBudgets() []domain.BudgetRecommendation {
	return []domain.BudgetRecommendation{
		{Category: "Food", CurrentSpend: 0, RecommendedLimit: 6000, Reasoning: "Local urban benchmark."},
		{Category: "Entertainment", CurrentSpend: 0, RecommendedLimit: 2000, Reasoning: "Discretionary buffer."},
	}
}

// FallbackHealth is a neutral midpoint score.
func FallbackHealth() domain.FinancialHealth {
	return domain.FinancialHealth{
		Score:  50,
		Status: "Stable",
		Tip:    "AI service unavailable temporarily.",
	}
}

// FallbackChatText is the apology used when chat is unavailable.
const FallbackChatText = "I'm sorry, I'm currently over capacity. Please try again in a few moments."
