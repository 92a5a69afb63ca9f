package db

import (
	"database/sql"
	"log"

	_ "modernc.org/sqlite"
)

var conn *sql.DB

// InitDB opens the SQLite store and creates the schema. Pass ":memory:"
// in tests.
func InitDB(path string) error {
	var err error
	conn, err = sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	// A single connection serializes writers and keeps ":memory:" stores
	// from splitting across pooled connections.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return err
	}

	return runMigrations()
}

// DB returns the store handle.
func DB() *sql.DB {
	return conn
}

// CloseDB closes the store.
func CloseDB() error {
	if conn == nil {
		return nil
	}
	err := conn.Close()
	conn = nil
	return err
}

func runMigrations() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL,
			college TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			verification_type TEXT NOT NULL DEFAULT 'email',
			is_blocked INTEGER NOT NULL DEFAULT 0,
			block_reason TEXT NOT NULL DEFAULT '',
			blocked_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			price INTEGER NOT NULL,
			condition TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			images TEXT NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'active',
			views INTEGER NOT NULL DEFAULT 0,
			likes INTEGER NOT NULL DEFAULT 0,
			sold_to TEXT NOT NULL DEFAULT '',
			sold_at DATETIME,
			removed_reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS listing_comments (
			id TEXT PRIMARY KEY,
			listing_id TEXT NOT NULL REFERENCES listings(id),
			user_id TEXT NOT NULL REFERENCES users(id),
			text TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS offers (
			id TEXT PRIMARY KEY,
			listing_id TEXT NOT NULL REFERENCES listings(id),
			buyer_id TEXT NOT NULL REFERENCES users(id),
			amount INTEGER NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL REFERENCES listings(id),
			buyer_id TEXT NOT NULL REFERENCES users(id),
			seller_id TEXT NOT NULL REFERENCES users(id),
			seller_name TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL,
			amount INTEGER NOT NULL,
			delivery_method TEXT NOT NULL DEFAULT 'pickup',
			payment_method TEXT NOT NULL DEFAULT '',
			offer_id TEXT,
			status TEXT NOT NULL DEFAULT 'confirmed',
			cancel_reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS disputes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			order_id TEXT,
			type TEXT NOT NULL,
			subject TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			evidence TEXT NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'pending',
			priority TEXT NOT NULL DEFAULT 'low',
			resolution TEXT NOT NULL DEFAULT '',
			resolved_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS wallets (
			user_id TEXT PRIMARY KEY REFERENCES users(id),
			withdrawable INTEGER NOT NULL DEFAULT 0,
			usable INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			type TEXT NOT NULL,
			amount INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'completed',
			note TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS withdrawal_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			amount INTEGER NOT NULL,
			method TEXT NOT NULL,
			destination TEXT NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'pending',
			admin_note TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			processed_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			label TEXT NOT NULL DEFAULT '',
			line1 TEXT NOT NULL,
			line2 TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '',
			pincode TEXT NOT NULL DEFAULT '',
			is_default INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			read INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS otps (
			key TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			payload TEXT NOT NULL DEFAULT '{}',
			expires_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_seller ON listings(seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_offers_listing ON offers(listing_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders(seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_txns_user ON wallet_transactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
	}

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			log.Println("Migration failed:", err)
			return err
		}
	}
	return nil
}
