// Package recurring flags merchants that charge the same amount repeatedly.
package recurring

import (
	"strings"

	"github.com/pennywise-ai/pennywise/internal/domain"
)

// Detect returns, for each case-folded merchant name, whether the merchant
// looks like a fixed-fee subscription: it must appear at least twice and every
// occurrence must carry exactly the same amount. Any variance in amount
// disqualifies the merchant, no tolerance band. This deliberately favors clean
// fixed-fee subscriptions (rent, streaming) over variable recurring spend
// (groceries).
func Detect(txs []domain.Transaction) map[string]bool {
	type stats struct {
		count   int
		amounts map[float64]struct{}
	}

	byMerchant := make(map[string]*stats)
	for _, t := range txs {
		key := MerchantKey(t.Merchant)
		s, ok := byMerchant[key]
		if !ok {
			s = &stats{amounts: make(map[float64]struct{})}
			byMerchant[key] = s
		}
		s.count++
		s.amounts[t.Amount] = struct{}{}
	}

	verdicts := make(map[string]bool, len(byMerchant))
	for key, s := range byMerchant {
		verdicts[key] = s.count >= 2 && len(s.amounts) == 1
	}
	return verdicts
}

// Flag returns a copy of txs with IsRecurring set to the current detector
// verdict for each row. The flag is a projection over the full collection:
// it is recomputed on every read and an insert can flip it for existing rows.
func Flag(txs []domain.Transaction) []domain.Transaction {
	verdicts := Detect(txs)

	out := make([]domain.Transaction, len(txs))
	for i, t := range txs {
		t.IsRecurring = verdicts[MerchantKey(t.Merchant)]
		out[i] = t
	}
	return out
}

// MerchantKey case-folds a merchant display name into the grouping key used
// by the detector.
func MerchantKey(merchant string) string {
	return strings.ToLower(merchant)
}
