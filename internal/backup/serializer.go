package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kchen52/CardSpendTracker/internal/database"
)

// Manager exports the store to backup documents and reconciles
// documents back in.
type Manager struct {
	repo *database.Repository
	now  func() time.Time
}

func NewManager(repo *database.Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

// ExportData flattens the current store state into a pretty-printed
// JSON document.
func (m *Manager) ExportData() (string, error) {
	cards, err := m.repo.ListCards()
	if err != nil {
		return "", fmt.Errorf("failed to read cards: %w", err)
	}

	doc := Document{
		Version:      FormatVersion,
		ExportDate:   m.now().UnixMilli(),
		Cards:        []CardRecord{},
		Goals:        []GoalRecord{},
		Transactions: []TransactionRecord{},
	}

	for _, card := range cards {
		doc.Cards = append(doc.Cards, CardRecord{
			UniqueID:  card.UniqueID,
			Name:      card.Name,
			Color:     card.Color,
			CreatedAt: card.CreatedAt.UnixMilli(),
		})

		goals, err := m.repo.ListGoalsForCard(card.ID)
		if err != nil {
			return "", fmt.Errorf("failed to read goals for card %q: %w", card.Name, err)
		}
		for _, goal := range goals {
			var endDate *int64
			if goal.EndDate != nil {
				ms := goal.EndDate.UnixMilli()
				endDate = &ms
			}
			doc.Goals = append(doc.Goals, GoalRecord{
				CardName:   card.Name,
				Title:      goal.Title,
				SpendLimit: goal.SpendLimit.InexactFloat64(),
				EndDate:    endDate,
				Comment:    goal.Comment,
				CreatedAt:  goal.CreatedAt.UnixMilli(),
			})
		}

		txns, err := m.repo.ListTransactionsForCard(card.ID)
		if err != nil {
			return "", fmt.Errorf("failed to read transactions for card %q: %w", card.Name, err)
		}
		for _, tx := range txns {
			doc.Transactions = append(doc.Transactions, TransactionRecord{
				UniqueID:     tx.UniqueID,
				CardUniqueID: card.UniqueID,
				Amount:       tx.Amount.InexactFloat64(),
				Description:  tx.Description,
				Date:         tx.Date.UnixMilli(),
			})
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(out), nil
}

// GenerateFileName returns a timestamped, human-readable backup file
// name.
func (m *Manager) GenerateFileName() string {
	return "card_spend_tracker_" + m.now().Format("2006-01-02_15-04-05") + ".json"
}
