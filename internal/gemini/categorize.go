package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/pennywise-ai/pennywise/internal/domain"
	"google.golang.org/genai"
)

// categorizationSchema constrains the model to the closed label sets. The
// necessity enum includes the legacy "Obligation" label so replies from either
// schema variant decode; ParseNecessity folds it into Debt.
var categorizationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"merchant":    {Type: genai.TypeString},
		"category":    {Type: genai.TypeString, Enum: categoryEnum()},
		"subCategory": {Type: genai.TypeString},
		"necessity":   {Type: genai.TypeString, Enum: []string{"Need", "Want", "Savings", "Debt", "Obligation"}},
		"sentiment":   {Type: genai.TypeString, Enum: []string{"Positive", "Neutral", "Negative"}},
	},
	Required: []string{"merchant", "category", "subCategory", "necessity", "sentiment"},
}

func categoryEnum() []string {
	out := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		out[i] = string(c)
	}
	return out
}

// Categorize asks the model for a structured label for one transaction.
// The reply is validated against the domain enumerations; a reply that does
// not decode into valid labels is an error, which callers treat the same as
// the model being unreachable.
func (c *Client) Categorize(ctx context.Context, rawText string, amount float64) (*domain.Classification, error) {
	prompt := fmt.Sprintf(
		`Analyze this transaction semantically: %q for amount %.2f.

Classify it into exactly one of these categories: %s.

Use semantic understanding: "Chicken Dum Biryani" is Food even though the word
"food" is missing; "HP Petrol Pump" is Transportation (fuel context).

Determine:
1. Merchant name (cleaned up, proper casing)
2. Primary category (strictly from the list above)
3. Specific sub-category (e.g. "Dining Out", "Fuel", "Streaming")
4. Necessity: "Need" (essentials) vs "Want" (discretionary) vs "Savings" vs "Debt"
5. Sentiment: "Positive" (the spend makes the user happy), "Neutral" (routine
   necessity) or "Negative" (stressful or wasteful, e.g. fines, medical
   emergencies, debt interest)`,
		rawText, amount, strings.Join(categoryEnum(), ", "),
	)

	var reply struct {
		Merchant    string `json:"merchant"`
		Category    string `json:"category"`
		SubCategory string `json:"subCategory"`
		Necessity   string `json:"necessity"`
		Sentiment   string `json:"sentiment"`
	}
	if err := c.generateJSON(ctx, prompt, categorizationSchema, &reply); err != nil {
		return nil, fmt.Errorf("Categorize: %w", err)
	}

	category := domain.Category(strings.TrimSpace(reply.Category))
	if !category.Valid() {
		return nil, fmt.Errorf("Categorize: model returned unknown category %q", reply.Category)
	}
	necessity, ok := domain.ParseNecessity(reply.Necessity)
	if !ok {
		return nil, fmt.Errorf("Categorize: model returned unknown necessity %q", reply.Necessity)
	}
	sentiment, ok := domain.ParseSentiment(reply.Sentiment)
	if !ok {
		return nil, fmt.Errorf("Categorize: model returned unknown sentiment %q", reply.Sentiment)
	}
	if strings.TrimSpace(reply.SubCategory) == "" {
		return nil, fmt.Errorf("Categorize: model returned empty subCategory")
	}

	return &domain.Classification{
		Merchant:    strings.TrimSpace(reply.Merchant),
		Category:    category,
		SubCategory: strings.TrimSpace(reply.SubCategory),
		Necessity:   necessity,
		Sentiment:   sentiment,
	}, nil
}
