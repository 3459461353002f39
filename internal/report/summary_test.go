package report

import (
	"strings"
	"testing"
	"time"

	"github.com/pennywise-ai/pennywise/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleLedger() []domain.Transaction {
	return []domain.Transaction{
		{Merchant: "Owner Home", Amount: 18000, Date: date(2024, time.March, 1), Category: domain.CategoryHousing},
		{Merchant: "Swiggy", Amount: 850, Date: date(2024, time.March, 15), Category: domain.CategoryFood},
		{Merchant: "Netflix", Amount: 499, Date: date(2024, time.March, 2), Category: domain.CategoryEntertainment},
		{Merchant: "Swiggy", Amount: 620, Date: date(2024, time.February, 21), Category: domain.CategoryFood},
		{Merchant: "HP Petrol", Amount: 2500, Date: date(2024, time.February, 12), Category: domain.CategoryTransportation},
	}
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			ref:       time.Date(2024, time.March, 18, 15, 4, 5, 0, time.UTC),
			wantStart: date(2024, time.March, 1),
			wantEnd:   date(2024, time.April, 1),
		},
		{
			// December rolls over the year boundary.
			ref:       time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC),
			wantStart: date(2023, time.December, 1),
			wantEnd:   date(2024, time.January, 1),
		},
		{
			// First instant of a month belongs to that month.
			ref:       date(2024, time.February, 1),
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.March, 1),
		},
	}

	for _, tt := range tests {
		start, end := MonthWindow(tt.ref)
		if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
			t.Errorf("MonthWindow(%v) = (%v, %v), want (%v, %v)", tt.ref, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestBuild(t *testing.T) {
	ref := date(2024, time.March, 20)
	s := Build(sampleLedger(), ref)

	if s.Total != 22469 {
		t.Errorf("Total = %v, want 22469", s.Total)
	}
	if s.CurrentMonth != "2024-03" {
		t.Errorf("CurrentMonth = %q, want 2024-03", s.CurrentMonth)
	}
	if s.CurrentMonthTotal != 19349 {
		t.Errorf("CurrentMonthTotal = %v, want 19349", s.CurrentMonthTotal)
	}
	if got := s.CurrentByCategory[domain.CategoryFood]; got != 850 {
		t.Errorf("current month Food = %v, want 850 (February Swiggy must be excluded)", got)
	}
	if got := s.ByCategory[domain.CategoryFood]; got != 1470 {
		t.Errorf("all-time Food = %v, want 1470", got)
	}

	if len(s.TopMerchants) == 0 || s.TopMerchants[0].Merchant != "Owner Home" {
		t.Errorf("expected Owner Home as top merchant, got %+v", s.TopMerchants)
	}
	if got := s.ByMonth; len(got) != 2 || got[0].Month != "2024-02" || got[1].Month != "2024-03" {
		t.Errorf("ByMonth = %+v, want ordered Feb then Mar", got)
	}
}

func TestBuild_ReferenceTimeDrivesCurrentMonth(t *testing.T) {
	// Same ledger, February reference: current-month stats must follow the
	// reference, not the wall clock.
	s := Build(sampleLedger(), date(2024, time.February, 5))

	if s.CurrentMonth != "2024-02" {
		t.Errorf("CurrentMonth = %q, want 2024-02", s.CurrentMonth)
	}
	if s.CurrentMonthTotal != 3120 {
		t.Errorf("CurrentMonthTotal = %v, want 3120", s.CurrentMonthTotal)
	}
}

func TestPromptContext(t *testing.T) {
	got := PromptContext(sampleLedger(), date(2024, time.March, 20))

	for _, want := range []string{
		"[CURRENT MONTH STATS (2024-03)]",
		"[All Time By Category]",
		"Owner Home: 18000.00",
		"- 2024-02: 3120.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PromptContext output missing %q:\n%s", want, got)
		}
	}
}

func TestPromptContext_Empty(t *testing.T) {
	got := PromptContext(nil, date(2024, time.March, 20))
	if got != "No transactions available." {
		t.Errorf("PromptContext(nil) = %q", got)
	}
}
