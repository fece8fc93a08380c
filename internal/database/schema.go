package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migrate applies the schema. Every statement is idempotent so the
// server can run it unconditionally on startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	log.Println("Database schema up to date")
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		uid        TEXT NOT NULL,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT '',
		balance    NUMERIC(18,2) NOT NULL DEFAULT 0,
		version    BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_uid ON accounts (uid)`,

	`CREATE TABLE IF NOT EXISTS balances (
		seq         BIGSERIAL UNIQUE,
		id          TEXT PRIMARY KEY,
		uid         TEXT NOT NULL,
		account_id  TEXT NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		amount      NUMERIC(18,2) NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_balances_account ON balances (uid, account_id, recorded_at DESC)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id               TEXT PRIMARY KEY,
		uid              TEXT NOT NULL,
		name             TEXT NOT NULL,
		bank             TEXT NOT NULL DEFAULT '',
		card_type        TEXT NOT NULL,
		credit_limit     NUMERIC(18,2) NOT NULL DEFAULT 0,
		current_balance  NUMERIC(18,2) NOT NULL DEFAULT 0,
		available_credit NUMERIC(18,2) NOT NULL DEFAULT 0,
		last_four        TEXT NOT NULL DEFAULT '',
		expiry_date      TEXT NOT NULL DEFAULT '',
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		version          BIGINT NOT NULL DEFAULT 1,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_uid ON cards (uid)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id             TEXT PRIMARY KEY,
		uid            TEXT NOT NULL,
		account_id     TEXT NOT NULL,
		to_account_id  TEXT NOT NULL DEFAULT '',
		tx_type        TEXT NOT NULL,
		amount         NUMERIC(18,2) NOT NULL,
		category       TEXT NOT NULL DEFAULT '',
		reason         TEXT NOT NULL DEFAULT '',
		source         TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		tx_date        TIMESTAMPTZ NOT NULL,
		month          TEXT NOT NULL,
		year           TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_month ON transactions (uid, month, year)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (uid, account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (uid, tx_date DESC)`,

	`CREATE TABLE IF NOT EXISTS recurring_items (
		id                TEXT PRIMARY KEY,
		uid               TEXT NOT NULL,
		name              TEXT NOT NULL,
		amount            NUMERIC(18,2) NOT NULL,
		tx_type           TEXT NOT NULL,
		frequency         TEXT NOT NULL,
		next_due_date     TIMESTAMPTZ NOT NULL,
		auto_pay          BOOLEAN NOT NULL DEFAULT FALSE,
		account_id        TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL DEFAULT '',
		last_processed_at TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recurring_due ON recurring_items (uid, next_due_date)`,

	`CREATE TABLE IF NOT EXISTS budgets (
		id          TEXT PRIMARY KEY,
		uid         TEXT NOT NULL,
		category    TEXT NOT NULL,
		spend_limit NUMERIC(18,2) NOT NULL DEFAULT 0,
		period      TEXT NOT NULL DEFAULT 'monthly',
		UNIQUE (uid, category)
	)`,

	`CREATE TABLE IF NOT EXISTS budget_configs (
		uid        TEXT PRIMARY KEY,
		levels     JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS alerts (
		id         TEXT PRIMARY KEY,
		uid        TEXT NOT NULL,
		alert_type TEXT NOT NULL,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		level      INT NOT NULL DEFAULT 0,
		month      INT NOT NULL,
		year       INT NOT NULL,
		is_read    BOOLEAN NOT NULL DEFAULT FALSE,
		cleared    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_month ON alerts (uid, month, year)`,
}
