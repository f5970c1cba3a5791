package database

import (
	"database/sql"
	"time"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(s scanner) (models.Card, error) {
	var c models.Card
	var createdAt int64
	if err := s.Scan(&c.ID, &c.UniqueID, &c.Name, &c.Color, &createdAt); err != nil {
		return models.Card{}, err
	}
	c.CreatedAt = time.UnixMilli(createdAt)
	return c, nil
}

func scanCardPtr(s scanner) (*models.Card, error) {
	c, err := scanCard(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanGoal(s scanner) (models.Goal, error) {
	var g models.Goal
	var endDate sql.NullInt64
	var createdAt int64
	if err := s.Scan(&g.ID, &g.CardID, &g.Title, &g.SpendLimit, &endDate, &g.Comment, &createdAt); err != nil {
		return models.Goal{}, err
	}
	if endDate.Valid {
		t := time.UnixMilli(endDate.Int64)
		g.EndDate = &t
	}
	g.CreatedAt = time.UnixMilli(createdAt)
	return g, nil
}

func scanTransaction(s scanner) (models.Transaction, error) {
	var tx models.Transaction
	var date int64
	if err := s.Scan(&tx.ID, &tx.UniqueID, &tx.CardID, &tx.Amount, &tx.Description, &date); err != nil {
		return models.Transaction{}, err
	}
	tx.Date = time.UnixMilli(date)
	return tx, nil
}

func millisOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
