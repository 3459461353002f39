// Package classifier implements the deterministic keyword rule engine used as
// both a fallback and an override for model-based categorization.
package classifier

import (
	"fmt"
	"os"
	"strings"

	"github.com/pennywise-ai/pennywise/internal/domain"
	yaml "gopkg.in/yaml.v2"
)

// Rule maps a set of keywords to a classification label. Rules are evaluated
// in table order and the first rule with any keyword appearing as a substring
// of the lower-cased input wins. Order is part of the contract: keyword sets
// overlap, so a more specific rule must be listed before a broader one.
type Rule struct {
	Keywords    []string `yaml:"keywords"`
	Category    string   `yaml:"category"`
	SubCategory string   `yaml:"subCategory"`
	Necessity   string   `yaml:"necessity"`
	Sentiment   string   `yaml:"sentiment"`
}

// Result is a classification produced by the rule table. Matched is false when
// no rule fired and the terminal fallback labels were returned.
type Result struct {
	Category    domain.Category
	SubCategory string
	Necessity   domain.Necessity
	Sentiment   domain.Sentiment
	Matched     bool
}

// Fallback labels returned when no rule matches.
const (
	FallbackSubCategory = "General"
)

// Classifier holds an ordered rule table. It is stateless after construction
// and safe for concurrent use.
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	keywords  []string // lower-cased
	category  domain.Category
	sub       string
	necessity domain.Necessity
	sentiment domain.Sentiment
}

// New returns a classifier with the built-in curated rule table.
func New() *Classifier {
	c, err := NewWithRules(defaultRules)
	if err != nil {
		// The built-in table is validated by tests; a bad entry is a
		// programming error.
		panic(fmt.Sprintf("classifier: invalid built-in rules: %v", err))
	}
	return c
}

// NewWithRules builds a classifier from an explicit ordered rule list.
// Rules with unknown categories, necessities or sentiments are rejected so a
// typo in a user-taught rules file fails loudly instead of silently never
// matching expectations.
func NewWithRules(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d: keyword set must not be empty", i)
		}
		cat := domain.Category(r.Category)
		if !cat.Valid() {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		nec, ok := domain.ParseNecessity(r.Necessity)
		if !ok {
			return nil, fmt.Errorf("rule %d: unknown necessity %q", i, r.Necessity)
		}
		sent, ok := domain.ParseSentiment(r.Sentiment)
		if !ok {
			return nil, fmt.Errorf("rule %d: unknown sentiment %q", i, r.Sentiment)
		}
		keys := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			keys[j] = strings.ToLower(k)
		}
		compiled = append(compiled, compiledRule{
			keywords:  keys,
			category:  cat,
			sub:       r.SubCategory,
			necessity: nec,
			sentiment: sent,
		})
	}
	return &Classifier{rules: compiled}, nil
}

// LoadRules reads an ordered rule list from a YAML file. The file is a plain
// YAML sequence so table order is preserved.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadRules: reading %s: %w", path, err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("LoadRules: parsing %s: %w", path, err)
	}
	return rules, nil
}

// Classify maps free text to a classification label. It is a pure function:
// lower-case the input, walk the rule table in order, return the first rule
// whose keyword set has any substring match. When nothing matches the terminal
// fallback {Uncategorized, General, Want, Neutral} is returned with
// Matched=false. An empty input never matches any rule.
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	for _, rule := range c.rules {
		for _, key := range rule.keywords {
			if strings.Contains(lower, key) {
				return Result{
					Category:    rule.category,
					SubCategory: rule.sub,
					Necessity:   rule.necessity,
					Sentiment:   rule.sentiment,
					Matched:     true,
				}
			}
		}
	}

	return Result{
		Category:    domain.CategoryUncategorized,
		SubCategory: FallbackSubCategory,
		Necessity:   domain.NecessityWant,
		Sentiment:   domain.SentimentNeutral,
		Matched:     false,
	}
}
