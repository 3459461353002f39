package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pennywise-ai/pennywise/internal/domain"
)

func TestClassify_DefaultRules(t *testing.T) {
	c := New()

	tests := []struct {
		name          string
		input         string
		wantCategory  domain.Category
		wantSub       string
		wantNecessity domain.Necessity
		wantSentiment domain.Sentiment
		wantMatched   bool
	}{
		{
			name:          "fuel rule",
			input:         "HP Petrol Pump Fillup",
			wantCategory:  domain.CategoryTransportation,
			wantSub:       "Fuel",
			wantNecessity: domain.NecessityNeed,
			wantSentiment: domain.SentimentNeutral,
			wantMatched:   true,
		},
		{
			name:          "commute rule",
			input:         "Uber ride to office",
			wantCategory:  domain.CategoryTransportation,
			wantSub:       "Commute",
			wantNecessity: domain.NecessityNeed,
			wantSentiment: domain.SentimentNeutral,
			wantMatched:   true,
		},
		{
			name:          "uber eats wins over uber by table order",
			input:         "Uber Eats late night order",
			wantCategory:  domain.CategoryFood,
			wantSub:       "Dining",
			wantNecessity: domain.NecessityWant,
			wantSentiment: domain.SentimentPositive,
			wantMatched:   true,
		},
		{
			name:          "coffee rule listed before broader matches",
			input:         "Starbucks grande latte",
			wantCategory:  domain.CategoryFood,
			wantSub:       "Coffee",
			wantNecessity: domain.NecessityWant,
			wantSentiment: domain.SentimentPositive,
			wantMatched:   true,
		},
		{
			name:          "case insensitive match",
			input:         "NETFLIX INDIA MONTHLY",
			wantCategory:  domain.CategoryEntertainment,
			wantSub:       "Subscription",
			wantNecessity: domain.NecessityWant,
			wantSentiment: domain.SentimentPositive,
			wantMatched:   true,
		},
		{
			name:          "medical rule",
			input:         "Apollo pharmacy antibiotics",
			wantCategory:  domain.CategoryHealthcare,
			wantSub:       "Health",
			wantNecessity: domain.NecessityNeed,
			wantSentiment: domain.SentimentNegative,
			wantMatched:   true,
		},
		{
			name:          "no rule matches",
			input:         "Mystery charge 8839",
			wantCategory:  domain.CategoryUncategorized,
			wantSub:       "General",
			wantNecessity: domain.NecessityWant,
			wantSentiment: domain.SentimentNeutral,
			wantMatched:   false,
		},
		{
			name:          "empty string hits fallback",
			input:         "",
			wantCategory:  domain.CategoryUncategorized,
			wantSub:       "General",
			wantNecessity: domain.NecessityWant,
			wantSentiment: domain.SentimentNeutral,
			wantMatched:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			if got.Category != tt.wantCategory {
				t.Errorf("Classify(%q).Category = %q, want %q", tt.input, got.Category, tt.wantCategory)
			}
			if got.SubCategory != tt.wantSub {
				t.Errorf("Classify(%q).SubCategory = %q, want %q", tt.input, got.SubCategory, tt.wantSub)
			}
			if got.Necessity != tt.wantNecessity {
				t.Errorf("Classify(%q).Necessity = %q, want %q", tt.input, got.Necessity, tt.wantNecessity)
			}
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("Classify(%q).Sentiment = %q, want %q", tt.input, got.Sentiment, tt.wantSentiment)
			}
			if got.Matched != tt.wantMatched {
				t.Errorf("Classify(%q).Matched = %v, want %v", tt.input, got.Matched, tt.wantMatched)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Keywords: []string{"coffee"}, Category: "Food", SubCategory: "Coffee", Necessity: "Want", Sentiment: "Positive"},
		{Keywords: []string{"shop", "coffee shop"}, Category: "Shopping", SubCategory: "Retail", Necessity: "Want", Sentiment: "Positive"},
	}
	c, err := NewWithRules(rules)
	if err != nil {
		t.Fatalf("NewWithRules failed: %v", err)
	}

	// Both rules could match; the earlier one must win.
	got := c.Classify("coffee shop lunch combo")
	if got.Category != domain.CategoryFood || got.SubCategory != "Coffee" {
		t.Errorf("expected first rule to win, got %q/%q", got.Category, got.SubCategory)
	}
}

func TestNewWithRules_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{
			name:  "empty keyword set",
			rules: []Rule{{Keywords: nil, Category: "Food", SubCategory: "Dining", Necessity: "Want", Sentiment: "Positive"}},
		},
		{
			name:  "unknown category",
			rules: []Rule{{Keywords: []string{"x"}, Category: "Gambling", SubCategory: "Casino", Necessity: "Want", Sentiment: "Positive"}},
		},
		{
			name:  "unknown necessity",
			rules: []Rule{{Keywords: []string{"x"}, Category: "Food", SubCategory: "Dining", Necessity: "Luxury", Sentiment: "Positive"}},
		},
		{
			name:  "unknown sentiment",
			rules: []Rule{{Keywords: []string{"x"}, Category: "Food", SubCategory: "Dining", Necessity: "Want", Sentiment: "Ecstatic"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWithRules(tt.rules); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewWithRules_LegacyNecessity(t *testing.T) {
	rules := []Rule{
		{Keywords: []string{"emi"}, Category: "Debt", SubCategory: "Loan", Necessity: "Obligation", Sentiment: "Negative"},
	}
	c, err := NewWithRules(rules)
	if err != nil {
		t.Fatalf("NewWithRules failed: %v", err)
	}

	got := c.Classify("Car loan EMI payment")
	if got.Necessity != domain.NecessityDebt {
		t.Errorf("legacy Obligation should map to Debt, got %q", got.Necessity)
	}
}

func TestLoadRules(t *testing.T) {
	content := `- keywords: ["gym", "cult.fit"]
  category: Healthcare
  subCategory: Fitness
  necessity: Need
  sentiment: Positive
- keywords: ["course", "udemy"]
  category: Education
  subCategory: Online Courses
  necessity: Need
  sentiment: Neutral
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Category != "Healthcare" || rules[1].SubCategory != "Online Courses" {
		t.Errorf("rules parsed out of order or wrong: %+v", rules)
	}

	c, err := NewWithRules(rules)
	if err != nil {
		t.Fatalf("NewWithRules failed: %v", err)
	}
	got := c.Classify("Cult.fit Gym Monthly")
	if got.Category != domain.CategoryHealthcare || got.SubCategory != "Fitness" {
		t.Errorf("expected Healthcare/Fitness, got %q/%q", got.Category, got.SubCategory)
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
