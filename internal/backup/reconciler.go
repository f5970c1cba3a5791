package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

// ImportData merges a backup document into the store. It runs three
// phases in order: cards resolve the uniqueId -> local id mapping,
// goals are re-attached by card name, then transactions are deduped by
// uniqueId. A bad record is recorded and skipped, never aborts the
// run; only a document-level parse failure short-circuits. There is no
// wrapping store transaction, so an interrupted import leaves whatever
// was already applied.
func (m *Manager) ImportData(text string) ImportResult {
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return ImportResult{
			Success: false,
			Errors:  []string{fmt.Sprintf("Failed to parse document: %v", err)},
		}
	}

	result := ImportResult{Errors: []string{}}

	// Phase 1: cards. Existing cards match by uniqueId and keep both
	// their uniqueId and store-assigned id; new cards carry the
	// imported uniqueId so future re-imports recognize them.
	cardIDByUniqueID := make(map[string]int64)
	for _, rec := range doc.Cards {
		existing, err := m.repo.GetCardByUniqueID(rec.UniqueID)
		switch {
		case err == nil:
			updated := *existing
			updated.Name = rec.Name
			updated.Color = rec.Color
			if err := m.repo.UpdateCard(updated); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Failed to import card '%s': %v", rec.Name, err))
				continue
			}
			cardIDByUniqueID[rec.UniqueID] = existing.ID
			result.CardsImported++
		case errors.Is(err, sql.ErrNoRows):
			card := models.Card{
				UniqueID:  rec.UniqueID,
				Name:      rec.Name,
				Color:     rec.Color,
				CreatedAt: time.UnixMilli(rec.CreatedAt),
			}
			id, err := m.repo.InsertCard(card)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Failed to import card '%s': %v", rec.Name, err))
				continue
			}
			cardIDByUniqueID[rec.UniqueID] = id
			result.CardsImported++
		default:
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to import card '%s': %v", rec.Name, err))
		}
	}

	// Phase 2: goals. Goals key off card name, so the authoritative
	// mapping is a re-read of the full card set, not the phase-1 map.
	// Goals have no dedup key: every import of the same document adds
	// them again.
	cardIDByName := make(map[string]int64)
	allCards, err := m.repo.ListCards()
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Failed to read cards for goal import: %v", err))
	} else {
		for _, card := range allCards {
			cardIDByName[card.Name] = card.ID
		}
	}
	for _, rec := range doc.Goals {
		cardID, ok := cardIDByName[rec.CardName]
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Goal '%s' references unknown card '%s'", rec.Title, rec.CardName))
			continue
		}
		goal := models.Goal{
			CardID:     cardID,
			Title:      rec.Title,
			SpendLimit: decimal.NewFromFloat(rec.SpendLimit),
			Comment:    rec.Comment,
			CreatedAt:  time.UnixMilli(rec.CreatedAt),
		}
		if rec.EndDate != nil {
			t := time.UnixMilli(*rec.EndDate)
			goal.EndDate = &t
		}
		if _, err := m.repo.InsertGoal(goal); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to import goal '%s': %v", rec.Title, err))
			continue
		}
		result.GoalsImported++
	}

	// Phase 3: transactions, deduped by uniqueId. Duplicates are
	// skipped silently: not an error, not counted.
	for _, rec := range doc.Transactions {
		cardID, ok := cardIDByUniqueID[rec.CardUniqueID]
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Transaction references unknown card (uniqueId: %s)", rec.CardUniqueID))
			continue
		}
		_, err := m.repo.GetTransactionByUniqueID(rec.UniqueID)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to import transaction %s: %v", rec.UniqueID, err))
			continue
		}
		tx := models.Transaction{
			UniqueID:    rec.UniqueID,
			CardID:      cardID,
			Amount:      decimal.NewFromFloat(rec.Amount),
			Description: rec.Description,
			Date:        time.UnixMilli(rec.Date),
		}
		if _, err := m.repo.InsertTransaction(tx); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to import transaction %s: %v", rec.UniqueID, err))
			continue
		}
		result.TransactionsImported++
	}

	result.Success = len(result.Errors) == 0
	return result
}
