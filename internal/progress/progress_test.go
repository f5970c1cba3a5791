package progress

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProgressRatio(t *testing.T) {
	cases := []struct {
		name     string
		limit    string
		spend    string
		expected float64
	}{
		{"zero spend", "100", "0", 0},
		{"half", "100", "50", 0.5},
		{"exact", "100", "100", 1},
		{"over limit clamps", "100", "150", 1},
		{"negative spend clamps", "100", "-20", 0},
		{"zero limit", "0", "50", 0},
		{"negative limit", "-10", "50", 0},
	}

	now := time.Now()
	for _, tc := range cases {
		goal := models.Goal{Title: tc.name, SpendLimit: dec(tc.limit)}
		got := ComputeGoalProgress(goal, dec(tc.spend), now)
		if got.Progress != tc.expected {
			t.Fatalf("%s: progress = %v, want %v", tc.name, got.Progress, tc.expected)
		}
	}
}

func TestProgressMonotonic(t *testing.T) {
	goal := models.Goal{SpendLimit: dec("250")}
	now := time.Now()
	prev := -1.0
	for _, spend := range []string{"0", "10", "100", "249.99", "250", "400"} {
		got := ComputeGoalProgress(goal, dec(spend), now)
		if got.Progress < prev {
			t.Fatalf("progress decreased at spend %s: %v < %v", spend, got.Progress, prev)
		}
		prev = got.Progress
	}
}

func TestRemaining(t *testing.T) {
	cases := []struct {
		limit    string
		spend    string
		expected string
	}{
		{"100", "0", "100"},
		{"100", "40.50", "59.5"},
		{"100", "100", "0"},
		{"100", "150", "0"},
	}

	now := time.Now()
	for _, tc := range cases {
		goal := models.Goal{SpendLimit: dec(tc.limit)}
		got := ComputeGoalProgress(goal, dec(tc.spend), now)
		if !got.Remaining.Equal(dec(tc.expected)) {
			t.Fatalf("remaining(%s, %s) = %s, want %s", tc.limit, tc.spend, got.Remaining, tc.expected)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		endDate  *time.Time
		expected *int
	}{
		{"no end date", nil, nil},
		{"exactly ten days ahead", timePtr(now.Add(10 * 24 * time.Hour)), intPtr(10)},
		{"ten days and some hours", timePtr(now.Add(10*24*time.Hour + 5*time.Hour)), intPtr(10)},
		{"under one day", timePtr(now.Add(23 * time.Hour)), intPtr(0)},
		{"exactly now", timePtr(now), intPtr(0)},
		{"in the past", timePtr(now.Add(-48 * time.Hour)), intPtr(0)},
	}

	for _, tc := range cases {
		goal := models.Goal{SpendLimit: dec("100"), EndDate: tc.endDate}
		got := ComputeGoalProgress(goal, decimal.Zero, now)
		switch {
		case tc.expected == nil && got.DaysRemaining != nil:
			t.Fatalf("%s: daysRemaining = %d, want nil", tc.name, *got.DaysRemaining)
		case tc.expected != nil && got.DaysRemaining == nil:
			t.Fatalf("%s: daysRemaining = nil, want %d", tc.name, *tc.expected)
		case tc.expected != nil && *got.DaysRemaining != *tc.expected:
			t.Fatalf("%s: daysRemaining = %d, want %d", tc.name, *got.DaysRemaining, *tc.expected)
		}
	}
}

func TestDaysRemainingNeverNegative(t *testing.T) {
	now := time.Now()
	end := now.Add(-100 * 24 * time.Hour)
	goal := models.Goal{SpendLimit: dec("100"), EndDate: &end}
	got := ComputeGoalProgress(goal, decimal.Zero, now)
	if got.DaysRemaining == nil || *got.DaysRemaining != 0 {
		t.Fatalf("daysRemaining for past end date = %v, want 0", got.DaysRemaining)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }
