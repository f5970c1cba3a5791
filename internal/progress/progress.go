// Package progress derives goal progress from a card's total spend.
// Everything here is pure and safe to call concurrently.
package progress

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

const dayMillis = 24 * 60 * 60 * 1000

// ComputeGoalProgress evaluates one goal against the total spend of its
// owning card (the sum over all the card's transactions, not a
// goal-scoped subset).
//
// Progress is totalSpend/spendLimit clamped to [0,1]; a non-positive
// limit (upstream data corruption) yields 0. Remaining never goes
// negative. DaysRemaining is nil without an end date, 0 once the end
// date has passed, and otherwise the whole-day difference, truncated:
// an end date N days and some hours ahead reports N.
func ComputeGoalProgress(goal models.Goal, totalSpend decimal.Decimal, now time.Time) models.GoalProgress {
	var daysRemaining *int
	if goal.EndDate != nil {
		days := 0
		if diff := goal.EndDate.UnixMilli() - now.UnixMilli(); diff > 0 {
			days = int(diff / dayMillis)
		}
		daysRemaining = &days
	}

	p := 0.0
	if goal.SpendLimit.IsPositive() {
		p = clamp(totalSpend.Div(goal.SpendLimit).InexactFloat64(), 0, 1)
	}

	remaining := goal.SpendLimit.Sub(totalSpend)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return models.GoalProgress{
		Goal:          goal,
		Progress:      p,
		Remaining:     remaining,
		DaysRemaining: daysRemaining,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
