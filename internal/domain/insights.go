package domain

// SpendingPersona is a generated descriptive label summarizing how the user
// spends, with a short justification and actionable recommendations.
type SpendingPersona struct {
	Name            string   `json:"name"`
	Justification   string   `json:"justification"`
	Recommendations []string `json:"recommendations"`
}

// BudgetRecommendation is a suggested monthly cap for one category.
type BudgetRecommendation struct {
	Category         string  `json:"category"`
	CurrentSpend     float64 `json:"currentSpend"`
	RecommendedLimit float64 `json:"recommendedLimit"`
	Reasoning        string  `json:"reasoning"`
	ActionableTip    string  `json:"actionableTip,omitempty"`
}

// FinancialHealth is a single 0-100 score summarizing overall financial
// condition, with a short status label and one piece of advice.
type FinancialHealth struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
	Tip    string `json:"tip"`
}

// ChatReply is the answer to a free-text question about the ledger.
// References holds the IDs of transactions the answer cited.
type ChatReply struct {
	Text       string   `json:"text"`
	References []string `json:"references"`
}
