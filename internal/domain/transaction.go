package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Category is the closed set of top-level spending categories.
type Category string

const (
	CategoryHousing        Category = "Housing"
	CategoryTransportation Category = "Transportation"
	CategoryFood           Category = "Food"
	CategoryGroceries      Category = "Groceries"
	CategoryUtilities      Category = "Utilities"
	CategoryInsurance      Category = "Insurance"
	CategoryHealthcare     Category = "Healthcare"
	CategoryShopping       Category = "Shopping"
	CategorySavings        Category = "Savings"
	CategoryDebt           Category = "Debt"
	CategoryEntertainment  Category = "Entertainment"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"

	// CategoryUncategorized is the terminal fallback when neither the model
	// nor the rule table can place a transaction.
	CategoryUncategorized Category = "Uncategorized"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHousing,
	CategoryTransportation,
	CategoryFood,
	CategoryGroceries,
	CategoryUtilities,
	CategoryInsurance,
	CategoryHealthcare,
	CategoryShopping,
	CategorySavings,
	CategoryDebt,
	CategoryEntertainment,
	CategoryEducation,
	CategoryOther,
	CategoryUncategorized,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Necessity describes the spending motivation behind a transaction.
//
// This is the canonical enumeration. The legacy three-value variant
// (Need/Want/Obligation) maps onto it via ParseNecessity: "Obligation"
// becomes NecessityDebt.
type Necessity string

const (
	NecessityNeed    Necessity = "Need"
	NecessityWant    Necessity = "Want"
	NecessitySavings Necessity = "Savings"
	NecessityDebt    Necessity = "Debt"
)

// ParseNecessity normalizes a free-form necessity label into the canonical
// enumeration. Unknown labels come back as ("", false).
func ParseNecessity(label string) (Necessity, bool) {
	switch strings.TrimSpace(strings.ToLower(label)) {
	case "need":
		return NecessityNeed, true
	case "want":
		return NecessityWant, true
	case "savings":
		return NecessitySavings, true
	case "debt":
		return NecessityDebt, true
	case "obligation":
		// Legacy schema variant; obligations are committed outflows.
		return NecessityDebt, true
	}
	return "", false
}

// Sentiment is the emotional tone attached to a spend.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// ParseSentiment normalizes a free-form sentiment label.
func ParseSentiment(label string) (Sentiment, bool) {
	switch strings.TrimSpace(strings.ToLower(label)) {
	case "positive":
		return SentimentPositive, true
	case "neutral":
		return SentimentNeutral, true
	case "negative":
		return SentimentNegative, true
	}
	return "", false
}

// Transaction is one financial event in the ledger.
//
// RawText is immutable once stored; Merchant and the classification fields may
// be overwritten by re-evaluation or manual edit. IsRecurring is a projection
// recomputed from the full collection on every read and is never treated as
// stored truth.
type Transaction struct {
	ID          string    `json:"id"`
	RawText     string    `json:"rawText"`
	Merchant    string    `json:"merchant"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	SubCategory string    `json:"subCategory"`
	Necessity   Necessity `json:"necessity"`
	Sentiment   Sentiment `json:"sentiment"`
	IsRecurring bool      `json:"isRecurring"`
}

// Classification is the structured label attached to a transaction, produced
// by the model, the keyword rule table, or a merge of the two.
type Classification struct {
	Merchant    string    `json:"merchant"`
	Category    Category  `json:"category"`
	SubCategory string    `json:"subCategory"`
	Necessity   Necessity `json:"necessity"`
	Sentiment   Sentiment `json:"sentiment"`
}

var (
	// ErrEmptyText rejects transactions with no usable description.
	ErrEmptyText = errors.New("transaction text must not be empty")

	// ErrInvalidAmount rejects zero, negative or non-finite amounts.
	ErrInvalidAmount = errors.New("transaction amount must be a positive number")
)

// ValidateNewTransaction checks user input before any classification or
// network call happens. Validation failures are user errors, not system
// errors.
func ValidateNewTransaction(rawText string, amount float64) error {
	if strings.TrimSpace(rawText) == "" {
		return ErrEmptyText
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}
