package database

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

// Repository is the single shared handle to the entity store. It is
// constructed once in main and passed to whichever component needs it.
// Every mutation notifies the watch hub so live streams re-query.
type Repository struct {
	db  *sql.DB
	hub *watchHub
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, hub: newWatchHub()}
}

// --- Cards ---

func (r *Repository) ListCards() ([]models.Card, error) {
	rows, err := r.db.Query(`
		SELECT id, unique_id, name, color, created_at
		FROM cards ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *Repository) GetCard(id int64) (*models.Card, error) {
	row := r.db.QueryRow(`SELECT id, unique_id, name, color, created_at FROM cards WHERE id = ?`, id)
	return scanCardPtr(row)
}

func (r *Repository) GetCardByUniqueID(uniqueID string) (*models.Card, error) {
	row := r.db.QueryRow(`SELECT id, unique_id, name, color, created_at FROM cards WHERE unique_id = ?`, uniqueID)
	return scanCardPtr(row)
}

func (r *Repository) InsertCard(card models.Card) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO cards (unique_id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		card.UniqueID, card.Name, card.Color, card.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.hub.notify(topicCards)
	return id, nil
}

// UpdateCard changes name and color only. unique_id and created_at are
// immutable after creation.
func (r *Repository) UpdateCard(card models.Card) error {
	result, err := r.db.Exec(`UPDATE cards SET name = ?, color = ? WHERE id = ?`,
		card.Name, card.Color, card.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(result); err != nil {
		return err
	}
	r.hub.notify(topicCards)
	return nil
}

// DeleteCard cascades to the card's goals and transactions via the
// foreign keys, so their topics are notified too.
func (r *Repository) DeleteCard(id int64) error {
	result, err := r.db.Exec(`DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(result); err != nil {
		return err
	}
	r.hub.notify(topicCards, topicGoals(id), topicSpend(id))
	return nil
}

// --- Goals ---

func (r *Repository) ListGoalsForCard(cardID int64) ([]models.Goal, error) {
	rows, err := r.db.Query(`
		SELECT id, card_id, title, spend_limit, end_date, comment, created_at
		FROM goals WHERE card_id = ? ORDER BY created_at DESC, id DESC
	`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *Repository) GetGoal(id int64) (*models.Goal, error) {
	row := r.db.QueryRow(`
		SELECT id, card_id, title, spend_limit, end_date, comment, created_at
		FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) InsertGoal(goal models.Goal) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO goals (card_id, title, spend_limit, end_date, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		goal.CardID, goal.Title, goal.SpendLimit, millisOrNil(goal.EndDate),
		goal.Comment, goal.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.hub.notify(topicGoals(goal.CardID))
	return id, nil
}

func (r *Repository) UpdateGoal(goal models.Goal) error {
	result, err := r.db.Exec(`
		UPDATE goals SET title = ?, spend_limit = ?, end_date = ?, comment = ?
		WHERE id = ?`,
		goal.Title, goal.SpendLimit, millisOrNil(goal.EndDate), goal.Comment, goal.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(result); err != nil {
		return err
	}
	r.hub.notify(topicGoals(goal.CardID))
	return nil
}

func (r *Repository) DeleteGoal(id int64) error {
	goal, err := r.GetGoal(id)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(`DELETE FROM goals WHERE id = ?`, id); err != nil {
		return err
	}
	r.hub.notify(topicGoals(goal.CardID))
	return nil
}

// --- Transactions ---

func (r *Repository) ListTransactionsForCard(cardID int64) ([]models.Transaction, error) {
	return r.listTransactions(`
		SELECT id, unique_id, card_id, amount, description, date
		FROM transactions WHERE card_id = ? ORDER BY date DESC, id DESC
	`, cardID)
}

func (r *Repository) ListRecentTransactions(limit int) ([]models.Transaction, error) {
	return r.listTransactions(`
		SELECT id, unique_id, card_id, amount, description, date
		FROM transactions ORDER BY date DESC, id DESC LIMIT ?
	`, limit)
}

func (r *Repository) listTransactions(query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, tx)
	}
	return txns, rows.Err()
}

func (r *Repository) GetTransaction(id int64) (*models.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT id, unique_id, card_id, amount, description, date
		FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) GetTransactionByUniqueID(uniqueID string) (*models.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT id, unique_id, card_id, amount, description, date
		FROM transactions WHERE unique_id = ?`, uniqueID)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) InsertTransaction(tx models.Transaction) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO transactions (unique_id, card_id, amount, description, date)
		VALUES (?, ?, ?, ?, ?)`,
		tx.UniqueID, tx.CardID, tx.Amount, tx.Description, tx.Date.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.hub.notify(topicSpend(tx.CardID))
	return id, nil
}

func (r *Repository) UpdateTransaction(tx models.Transaction) error {
	result, err := r.db.Exec(`
		UPDATE transactions SET amount = ?, description = ?, date = ? WHERE id = ?`,
		tx.Amount, tx.Description, tx.Date.UnixMilli(), tx.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(result); err != nil {
		return err
	}
	r.hub.notify(topicSpend(tx.CardID))
	return nil
}

func (r *Repository) DeleteTransaction(id int64) error {
	tx, err := r.GetTransaction(id)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(`DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return err
	}
	r.hub.notify(topicSpend(tx.CardID))
	return nil
}

// TotalSpend sums all transaction amounts for a card in decimal
// arithmetic. Amounts are stored as decimal strings, so the sum is done
// here rather than in SQL.
func (r *Repository) TotalSpend(cardID int64) (decimal.Decimal, error) {
	rows, err := r.db.Query(`SELECT amount FROM transactions WHERE card_id = ?`, cardID)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}
