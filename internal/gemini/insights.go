package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/pennywise-ai/pennywise/internal/report"
	"google.golang.org/genai"
)

// Caps on how much ledger history goes into each prompt.
const (
	personaHistoryLimit = 50
	healthHistoryLimit  = 30
	budgetHistoryLimit  = 100
	chatHistoryLimit    = 20
)

var personaSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":            {Type: genai.TypeString},
		"justification":   {Type: genai.TypeString},
		"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"name", "justification", "recommendations"},
}

// GeneratePersona asks the model for a creative spending persona based on a
// compact necessity/sentiment summary of recent history.
func (c *Client) GeneratePersona(ctx context.Context, txs []domain.Transaction) (*domain.SpendingPersona, error) {
	summary := summarizeForPersona(recent(txs, personaHistoryLimit))

	prompt := fmt.Sprintf(
		`Based on these transactions: %s.
Assign a creative spending persona (e.g. "The Impulsive Foodie", "The Disciplined Saver").
Provide a 2-sentence justification based on spending percentages and emotional
patterns, plus 3 short actionable recommendations.`,
		summary,
	)

	var persona domain.SpendingPersona
	if err := c.generateJSON(ctx, prompt, personaSchema, &persona); err != nil {
		return nil, fmt.Errorf("GeneratePersona: %w", err)
	}
	return &persona, nil
}

var budgetSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":         {Type: genai.TypeString},
			"currentSpend":     {Type: genai.TypeNumber},
			"recommendedLimit": {Type: genai.TypeNumber},
			"reasoning":        {Type: genai.TypeString},
			"actionableTip":    {Type: genai.TypeString},
		},
		Required: []string{"category", "currentSpend", "recommendedLimit", "reasoning", "actionableTip"},
	},
}

// RecommendBudgets asks the model for per-category spending caps, focused on
// the heaviest categories.
func (c *Client) RecommendBudgets(ctx context.Context, txs []domain.Transaction) ([]domain.BudgetRecommendation, error) {
	lines := make([]string, 0, budgetHistoryLimit)
	for _, t := range recent(txs, budgetHistoryLimit) {
		lines = append(lines, fmt.Sprintf("%s: %.2f", t.Category, t.Amount))
	}

	prompt := fmt.Sprintf(
		`Analyze these expenses: %s.
Generate budget caps for the top spending categories (at most 4).
For each category provide a highly personalized "actionableTip" tied to the
observed behavior, e.g. heavy dining spend suggests "Try meal prepping lunch
for 3 days next week."`,
		strings.Join(lines, ", "),
	)

	var budgets []domain.BudgetRecommendation
	if err := c.generateJSON(ctx, prompt, budgetSchema, &budgets); err != nil {
		return nil, fmt.Errorf("RecommendBudgets: %w", err)
	}
	return budgets, nil
}

var healthSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":  {Type: genai.TypeInteger},
		"status": {Type: genai.TypeString, Enum: []string{"Excellent", "Stable", "Critical"}},
		"tip":    {Type: genai.TypeString},
	},
	Required: []string{"score", "status", "tip"},
}

// ScoreHealth asks the model for a 0-100 financial health score over recent
// history.
func (c *Client) ScoreHealth(ctx context.Context, txs []domain.Transaction) (*domain.FinancialHealth, error) {
	lines := make([]string, 0, healthHistoryLimit)
	for _, t := range recent(txs, healthHistoryLimit) {
		lines = append(lines, fmt.Sprintf("%.2f on %s (%s)", t.Amount, t.Category, t.Necessity))
	}

	prompt := fmt.Sprintf(
		`Analyze these recent transactions and provide a financial health score (0-100).
Data: %s`,
		strings.Join(lines, "; "),
	)

	var health domain.FinancialHealth
	if err := c.generateJSON(ctx, prompt, healthSchema, &health); err != nil {
		return nil, fmt.Errorf("ScoreHealth: %w", err)
	}
	if health.Score < 0 || health.Score > 100 {
		return nil, fmt.Errorf("ScoreHealth: score %d out of range", health.Score)
	}
	return &health, nil
}

const chatSystemInstruction = `You are PennyWise, a friendly, encouraging and savvy personal finance advisor.
Talk like a helpful, knowledgeable friend; use warm, simple language and avoid
financial jargon unless explained simply. Help the user find semantic matches
(e.g. if they ask about "chai", look for cafes or tea stalls). Be concise but
conversational.`

// Chat answers a free-text question over the ledger. Each numbered context
// row carries a [n] marker; the model is told to cite rows it refers to with
// those markers, which the caller scans out of the reply.
func (c *Client) Chat(ctx context.Context, query string, txs []domain.Transaction, ref time.Time) (string, error) {
	statsContext := report.PromptContext(txs, ref)

	rows := recent(txs, chatHistoryLimit)
	lines := make([]string, 0, len(rows))
	for i, t := range rows {
		lines = append(lines, fmt.Sprintf("[%d] %s: %s (%.2f) - %s", i+1, t.Date.Format("2006-01-02"), t.Merchant, t.Amount, t.Category))
	}

	prompt := fmt.Sprintf(
		`USER QUESTION: %q

Here is the ACCURATE DATA derived from the ledger:
%s

Recent transactions (numbered for reference):
%s

INSTRUCTIONS:
- Use the "REAL-TIME FINANCIAL STATS" section to answer; do not re-derive sums yourself.
- If the user asks about "this month", strictly use the CURRENT MONTH STATS section.
- When you mention a specific transaction, cite its number in brackets, like [3].
- Where possible, close with one small, specific money-saving tip relevant to the spending shown.`,
		query, statsContext, strings.Join(lines, "\n"),
	)

	text, err := c.generateText(ctx, prompt, chatSystemInstruction, 0.7)
	if err != nil {
		return "", fmt.Errorf("Chat: %w", err)
	}
	return text, nil
}

// recent returns the last n transactions (the ledger is append-ordered).
func recent(txs []domain.Transaction, n int) []domain.Transaction {
	if len(txs) <= n {
		return txs
	}
	return txs[len(txs)-n:]
}

func summarizeForPersona(txs []domain.Transaction) string {
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, fmt.Sprintf("%s (%s, %s): %.2f", t.Category, t.Necessity, t.Sentiment, t.Amount))
	}
	if len(lines) == 0 {
		return "no transactions yet"
	}
	return strings.Join(lines, ", ")
}
