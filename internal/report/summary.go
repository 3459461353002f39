// Package report computes ledger aggregations used by the API and by prompt
// builders. Period boundaries are always derived from a caller-supplied
// reference time so the logic stays deterministic and testable.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pennywise-ai/pennywise/internal/domain"
)

// MerchantSpend is total spend attributed to one merchant.
type MerchantSpend struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
}

// MonthSpend is total spend in one calendar month.
type MonthSpend struct {
	Month string  `json:"month"` // "2006-01"
	Total float64 `json:"total"`
}

// Summary aggregates the full ledger plus a breakdown for the calendar month
// containing the reference time.
type Summary struct {
	Total        float64                    `json:"total"`
	ByCategory   map[domain.Category]float64 `json:"byCategory"`
	TopMerchants []MerchantSpend            `json:"topMerchants"`
	ByMonth      []MonthSpend               `json:"byMonth"`

	CurrentMonth      string                      `json:"currentMonth"`
	CurrentMonthTotal float64                     `json:"currentMonthTotal"`
	CurrentByCategory map[domain.Category]float64 `json:"currentByCategory"`
}

// topMerchantLimit caps the merchant leaderboard, matching what fits in a
// prompt without drowning the model in noise.
const topMerchantLimit = 8

// MonthWindow returns the half-open interval [start, end) of the calendar
// month containing ref, in ref's location.
func MonthWindow(ref time.Time) (start, end time.Time) {
	start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

// Build computes a Summary over txs with month boundaries anchored at ref.
func Build(txs []domain.Transaction, ref time.Time) Summary {
	s := Summary{
		ByCategory:        make(map[domain.Category]float64),
		CurrentByCategory: make(map[domain.Category]float64),
	}

	monthStart, monthEnd := MonthWindow(ref)
	s.CurrentMonth = monthStart.Format("2006-01")

	byMerchant := make(map[string]float64)
	byMonth := make(map[string]float64)

	for _, t := range txs {
		s.Total += t.Amount
		s.ByCategory[t.Category] += t.Amount
		byMerchant[t.Merchant] += t.Amount
		byMonth[t.Date.Format("2006-01")] += t.Amount

		if !t.Date.Before(monthStart) && t.Date.Before(monthEnd) {
			s.CurrentMonthTotal += t.Amount
			s.CurrentByCategory[t.Category] += t.Amount
		}
	}

	for merchant, total := range byMerchant {
		s.TopMerchants = append(s.TopMerchants, MerchantSpend{Merchant: merchant, Total: total})
	}
	sort.Slice(s.TopMerchants, func(i, j int) bool {
		if s.TopMerchants[i].Total != s.TopMerchants[j].Total {
			return s.TopMerchants[i].Total > s.TopMerchants[j].Total
		}
		return s.TopMerchants[i].Merchant < s.TopMerchants[j].Merchant
	})
	if len(s.TopMerchants) > topMerchantLimit {
		s.TopMerchants = s.TopMerchants[:topMerchantLimit]
	}

	for month, total := range byMonth {
		s.ByMonth = append(s.ByMonth, MonthSpend{Month: month, Total: total})
	}
	sort.Slice(s.ByMonth, func(i, j int) bool { return s.ByMonth[i].Month < s.ByMonth[j].Month })

	return s
}

// PromptContext renders a Summary as the plain-text "cheat sheet" embedded in
// chat prompts, so the model reads precomputed numbers instead of summing raw
// rows itself.
func PromptContext(txs []domain.Transaction, ref time.Time) string {
	if len(txs) == 0 {
		return "No transactions available."
	}

	s := Build(txs, ref)

	var b strings.Builder
	b.WriteString("REAL-TIME FINANCIAL STATS (use these numbers):\n\n")
	fmt.Fprintf(&b, "[Total Spending (All Time)]: %.2f\n\n", s.Total)

	fmt.Fprintf(&b, "[CURRENT MONTH STATS (%s)]:\n", s.CurrentMonth)
	fmt.Fprintf(&b, "Total: %.2f\n", s.CurrentMonthTotal)
	if len(s.CurrentByCategory) == 0 {
		b.WriteString("No spending this month yet.\n")
	} else {
		for _, cat := range sortedCategories(s.CurrentByCategory) {
			fmt.Fprintf(&b, "- %s: %.2f\n", cat, s.CurrentByCategory[cat])
		}
	}

	b.WriteString("\n[All Time By Category]:\n")
	for _, cat := range sortedCategories(s.ByCategory) {
		fmt.Fprintf(&b, "- %s: %.2f\n", cat, s.ByCategory[cat])
	}

	b.WriteString("\n[Top Spending by Merchant]:\n")
	for _, m := range s.TopMerchants {
		fmt.Fprintf(&b, "- %s: %.2f\n", m.Merchant, m.Total)
	}

	b.WriteString("\n[Monthly Breakdown]:\n")
	for _, m := range s.ByMonth {
		fmt.Fprintf(&b, "- %s: %.2f\n", m.Month, m.Total)
	}

	return b.String()
}

func sortedCategories(m map[domain.Category]float64) []domain.Category {
	cats := make([]domain.Category, 0, len(m))
	for c := range m {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if m[cats[i]] != m[cats[j]] {
			return m[cats[i]] > m[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}
