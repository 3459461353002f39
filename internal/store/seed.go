package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-ai/pennywise/internal/domain"
)

type seedRow struct {
	rawText     string
	merchant    string
	amount      float64
	date        string
	category    domain.Category
	subCategory string
	necessity   domain.Necessity
	sentiment   domain.Sentiment
}

var demoRows = []seedRow{
	{"Rent for March", "Owner Home", 18000, "2024-03-01", domain.CategoryHousing, "Rent", domain.NecessityNeed, domain.SentimentNeutral},
	{"Swiggy Gourmet Order", "Swiggy", 850, "2024-03-15", domain.CategoryFood, "Delivery", domain.NecessityWant, domain.SentimentPositive},
	{"Uber Premier Ride", "Uber", 420, "2024-03-18", domain.CategoryTransportation, "Ride", domain.NecessityNeed, domain.SentimentNeutral},
	{"BESCOM Electricity Bill", "BESCOM", 3100, "2024-03-05", domain.CategoryUtilities, "Electricity", domain.NecessityNeed, domain.SentimentNeutral},
	{"Netflix India Monthly", "Netflix", 499, "2024-03-02", domain.CategoryEntertainment, "Streaming", domain.NecessityWant, domain.SentimentPositive},
	{"BigBasket Grocery Stock", "BigBasket", 4500, "2024-03-10", domain.CategoryGroceries, "Essentials", domain.NecessityNeed, domain.SentimentNeutral},
	{"PVR Movie and Snacks", "PVR Cinemas", 1200, "2024-03-20", domain.CategoryEntertainment, "Cinema", domain.NecessityWant, domain.SentimentPositive},
	{"Cult.fit Gym Monthly", "Cult.fit", 1800, "2024-03-01", domain.CategoryHealthcare, "Fitness", domain.NecessityNeed, domain.SentimentNeutral},
	{"HP Petrol Pump Fillup", "HP Petrol", 2500, "2024-03-12", domain.CategoryTransportation, "Fuel", domain.NecessityNeed, domain.SentimentNeutral},
	{"Starbucks Coffee", "Starbucks", 350, "2024-03-22", domain.CategoryFood, "Coffee", domain.NecessityWant, domain.SentimentPositive},
	{"Zomato Dinner Order", "Zomato", 620, "2024-03-21", domain.CategoryFood, "Delivery", domain.NecessityWant, domain.SentimentPositive},
	{"Airtel Broadband Bill", "Airtel", 1099, "2024-03-07", domain.CategoryUtilities, "Internet", domain.NecessityNeed, domain.SentimentNeutral},
}

// DemoTransactions returns the demo ledger used to pre-populate a fresh
// store. IDs are freshly generated on every call.
func DemoTransactions() []domain.Transaction {
	txs := make([]domain.Transaction, 0, len(demoRows))
	for _, r := range demoRows {
		date, _ := time.Parse("2006-01-02", r.date)
		txs = append(txs, domain.Transaction{
			ID:          uuid.NewString(),
			RawText:     r.rawText,
			Merchant:    r.merchant,
			Amount:      r.amount,
			Date:        date,
			Category:    r.category,
			SubCategory: r.subCategory,
			Necessity:   r.necessity,
			Sentiment:   r.sentiment,
		})
	}
	return txs
}

// SeedIfEmpty loads the demo ledger into s when the store has no
// transactions yet. Returns how many rows were seeded.
func SeedIfEmpty(ctx context.Context, s Store) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	txs := DemoTransactions()
	if err := s.Replace(ctx, txs); err != nil {
		return 0, err
	}
	return len(txs), nil
}
