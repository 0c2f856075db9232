package repository

import (
	"context"
	"database/sql"
	"fmt"
)

const timestampLayout = "2006-01-02 15:04:05"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS auctions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		car_name TEXT NOT NULL,
		car_description TEXT,
		image_url TEXT,
		starting_bid REAL NOT NULL,
		current_bid REAL NOT NULL,
		end_time TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		status TEXT DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		auction_id INTEGER,
		user_id INTEGER,
		amount REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (auction_id) REFERENCES auctions (id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bids_auction_user ON bids (auction_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_auctions_status ON auctions (status)`,
}

// child tables first so foreign keys never dangle
var dropStatements = []string{
	`DROP TABLE IF EXISTS bids`,
	`DROP TABLE IF EXISTS auctions`,
	`DROP TABLE IF EXISTS users`,
}

// Initialize creates the users, auctions and bids tables when absent.
// Existing tables and rows are left untouched.
func (s *SQLStore) Initialize(ctx context.Context) error {
	return s.withTx(ctx, "initialize", func(tx *sql.Tx) error {
		return createSchema(ctx, tx)
	})
}

func createSchema(ctx context.Context, ex execer) error {
	for _, stmt := range schemaStatements {
		if _, err := ex.ExecContext(ctx, stmt); err != nil {
			return storageError("create schema", err)
		}
	}
	return nil
}

func dropSchema(ctx context.Context, ex execer) error {
	for _, stmt := range dropStatements {
		if _, err := ex.ExecContext(ctx, stmt); err != nil {
			return storageError(fmt.Sprintf("drop schema %q", stmt), err)
		}
	}
	return nil
}
