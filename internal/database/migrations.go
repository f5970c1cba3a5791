package database

import "database/sql"

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unique_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		spend_limit TEXT NOT NULL,
		end_date INTEGER,
		comment TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unique_id TEXT NOT NULL,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		amount TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date INTEGER NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_cards_unique_id ON cards(unique_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_unique_id ON transactions(unique_id);
	CREATE INDEX IF NOT EXISTS idx_goals_card_id ON goals(card_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_card_id ON transactions(card_id);
	CREATE INDEX IF NOT EXISTS idx_cards_created_at ON cards(created_at);
	CREATE INDEX IF NOT EXISTS idx_goals_created_at ON goals(created_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return err
	}

	// Migration: add columns introduced after the first release
	// (ignore errors for columns that already exist).
	migrations := []string{
		`ALTER TABLE goals ADD COLUMN comment TEXT DEFAULT ''`,
		`ALTER TABLE goals ADD COLUMN end_date INTEGER`,
	}
	for _, m := range migrations {
		db.Exec(m)
	}

	return nil
}
