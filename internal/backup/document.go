// Package backup flattens the card/goal/transaction graph into a
// portable JSON document and merges such documents back into the
// store.
package backup

// FormatVersion is written into every exported document.
const FormatVersion = 1

// Document is the backup wire format. Cards and transactions carry
// their permanent uniqueId; goals are referenced by the owning card's
// name. Timestamps are epoch milliseconds and money values are JSON
// numbers.
type Document struct {
	Version      int                 `json:"version"`
	ExportDate   int64               `json:"exportDate"`
	Cards        []CardRecord        `json:"cards"`
	Goals        []GoalRecord        `json:"goals"`
	Transactions []TransactionRecord `json:"transactions"`
}

type CardRecord struct {
	UniqueID  string `json:"uniqueId"`
	Name      string `json:"name"`
	Color     int64  `json:"color"`
	CreatedAt int64  `json:"createdAt"`
}

type GoalRecord struct {
	CardName   string  `json:"cardName"`
	Title      string  `json:"title"`
	SpendLimit float64 `json:"spendLimit"`
	EndDate    *int64  `json:"endDate"`
	Comment    string  `json:"comment"`
	CreatedAt  int64   `json:"createdAt"`
}

type TransactionRecord struct {
	UniqueID     string  `json:"uniqueId"`
	CardUniqueID string  `json:"cardUniqueId"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Date         int64   `json:"date"`
}

// ImportResult reports what a reconcile run achieved. Per-record
// problems land in Errors and never abort the run; Success simply
// means Errors is empty. Transactions skipped as duplicates count
// neither as imported nor as errors.
type ImportResult struct {
	Success              bool     `json:"success"`
	CardsImported        int      `json:"cards_imported"`
	GoalsImported        int      `json:"goals_imported"`
	TransactionsImported int      `json:"transactions_imported"`
	Errors               []string `json:"errors"`
}
