package models

import (
	"github.com/shopspring/decimal"
)

// GoalProgress is derived per goal from the owning card's total spend.
// Never persisted; recomputed on every relevant change.
type GoalProgress struct {
	Goal      Goal            `json:"goal"`
	Progress  float64         `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
	// DaysRemaining is nil when the goal has no end date, and 0 once the
	// end date has passed.
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

// CardSummary is the denormalized per-card view published by the
// aggregation pipeline: the card, its total spend across all
// transactions, and the progress of each of its goals.
type CardSummary struct {
	Card       Card            `json:"card"`
	TotalSpend decimal.Decimal `json:"total_spend"`
	Goals      []GoalProgress  `json:"goals"`
}
