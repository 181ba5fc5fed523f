package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// schema is applied on startup. The id counter lives in store_meta so that
// ids stay strictly increasing across deletions and restarts; position
// preserves insertion order even when a restore supplies ids out of order.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
    id            INTEGER PRIMARY KEY,
    position      INTEGER NOT NULL,
    name          TEXT NOT NULL,
    expiry_date   TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    price         REAL NOT NULL DEFAULT 0,
    quantity      INTEGER NOT NULL DEFAULT 1,
    location      TEXT NOT NULL DEFAULT '',
    barcode       TEXT NOT NULL DEFAULT '',
    notes         TEXT NOT NULL DEFAULT '',
    purchase_date TEXT NOT NULL DEFAULT '',
    date_added    TEXT NOT NULL DEFAULT '',
    last_modified TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS store_meta (
    key   TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO store_meta (key, value) VALUES ('next_id', 1);
INSERT OR IGNORE INTO store_meta (key, value) VALUES ('next_position', 1);

CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);
`

const productColumns = `id, name, expiry_date, category, price, quantity, location, barcode, notes, purchase_date, date_added, last_modified`

// SQLiteProductRepository is a SQLite-backed ProductRepository. It is the
// local-persistence driver: one file on disk, no server.
type SQLiteProductRepository struct {
	db *sql.DB
}

// NewSQLiteProductRepository opens (creating if needed) the database at path
// and applies the schema.
func NewSQLiteProductRepository(path string) (*SQLiteProductRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteProductRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteProductRepository) Close() error {
	return r.db.Close()
}

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.ExpiryDate, &p.Category, &p.Price, &p.Quantity,
		&p.Location, &p.Barcode, &p.Notes, &p.PurchaseDate, &p.DateAdded, &p.LastModified)
	return p, err
}

func bumpMeta(tx *sql.Tx, key string) (int, error) {
	var v int
	if err := tx.QueryRow(`SELECT value FROM store_meta WHERE key = ?`, key).Scan(&v); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`UPDATE store_meta SET value = value + 1 WHERE key = ?`, key); err != nil {
		return 0, err
	}
	return v, nil
}

func (r *SQLiteProductRepository) Create(p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return models.Product{}, err
	}
	defer tx.Rollback()

	id, err := bumpMeta(tx, "next_id")
	if err != nil {
		return models.Product{}, err
	}
	pos, err := bumpMeta(tx, "next_position")
	if err != nil {
		return models.Product{}, err
	}

	p.ID = id
	_, err = tx.Exec(`INSERT INTO products (`+productColumns+`, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.ExpiryDate, p.Category, p.Price, p.Quantity,
		p.Location, p.Barcode, p.Notes, p.PurchaseDate, p.DateAdded, p.LastModified, pos)
	if err != nil {
		return models.Product{}, err
	}
	return p, tx.Commit()
}

func (r *SQLiteProductRepository) GetAll() ([]models.Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *SQLiteProductRepository) GetByID(id int) (models.Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *SQLiteProductRepository) Update(p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}

	existing, err := r.GetByID(p.ID)
	if err != nil {
		return models.Product{}, err
	}
	if p.DateAdded == "" {
		p.DateAdded = existing.DateAdded
	}

	res, err := r.db.Exec(`UPDATE products SET name = ?, expiry_date = ?, category = ?, price = ?, quantity = ?, location = ?, barcode = ?, notes = ?, purchase_date = ?, date_added = ?, last_modified = ? WHERE id = ?`,
		p.Name, p.ExpiryDate, p.Category, p.Price, p.Quantity,
		p.Location, p.Barcode, p.Notes, p.PurchaseDate, p.DateAdded, p.LastModified, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *SQLiteProductRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *SQLiteProductRepository) BulkDelete(ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.db.Exec(`DELETE FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *SQLiteProductRepository) Filter(criteria FilterCriteria, now time.Time, thresholdDays int) ([]models.Product, int, error) {
	products, err := r.GetAll()
	if err != nil {
		return nil, 0, err
	}
	filtered := filterProducts(products, criteria, now, thresholdDays)
	return filtered, len(filtered), nil
}

func (r *SQLiteProductRepository) ReplaceAll(products []models.Product, nextID int) error {
	if err := validateImport(products); err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	for i, p := range products {
		_, err := tx.Exec(`INSERT INTO products (`+productColumns+`, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.ExpiryDate, p.Category, p.Price, p.Quantity,
			p.Location, p.Barcode, p.Notes, p.PurchaseDate, p.DateAdded, p.LastModified, i+1)
		if err != nil {
			return err
		}
	}

	next := nextIDAfter(products, nextID)
	if _, err := tx.Exec(`UPDATE store_meta SET value = ? WHERE key = 'next_id'`, next); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE store_meta SET value = ? WHERE key = 'next_position'`, len(products)+1); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteProductRepository) NextID() (int, error) {
	var v int
	err := r.db.QueryRow(`SELECT value FROM store_meta WHERE key = 'next_id'`).Scan(&v)
	return v, err
}

func (r *SQLiteProductRepository) Clear() error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE store_meta SET value = 1`); err != nil {
		return err
	}
	return tx.Commit()
}
