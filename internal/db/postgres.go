package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// pgSchema bootstraps the product table. The id and position sequences are
// explicit so the store can reset or fast-forward them during restore.
const pgSchema = `
CREATE SEQUENCE IF NOT EXISTS products_id_seq;
CREATE SEQUENCE IF NOT EXISTS products_position_seq;

CREATE TABLE IF NOT EXISTS products (
    id            INTEGER PRIMARY KEY DEFAULT nextval('products_id_seq'),
    position      INTEGER NOT NULL DEFAULT nextval('products_position_seq'),
    name          TEXT NOT NULL,
    expiry_date   TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    price         DOUBLE PRECISION NOT NULL DEFAULT 0,
    quantity      INTEGER NOT NULL DEFAULT 1,
    location      TEXT NOT NULL DEFAULT '',
    barcode       TEXT NOT NULL DEFAULT '',
    notes         TEXT NOT NULL DEFAULT '',
    purchase_date TEXT NOT NULL DEFAULT '',
    date_added    TEXT NOT NULL DEFAULT '',
    last_modified TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);
`

// Connect opens a Postgres connection with the given URL, verifies it and
// ensures the schema exists.
func Connect(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}
