package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// PostgresProductRepository is a Postgres-backed ProductRepository. Ids come
// from a dedicated sequence so they stay strictly increasing across deletions;
// position comes from its own sequence and preserves insertion order.
type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const pgColumns = `id, name, expiry_date, category, price, quantity, location, barcode, notes, purchase_date, date_added, last_modified`

func pgScan(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.ExpiryDate, &p.Category, &p.Price, &p.Quantity,
		&p.Location, &p.Barcode, &p.Notes, &p.PurchaseDate, &p.DateAdded, &p.LastModified)
	return p, err
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}

	query := `INSERT INTO products (name, expiry_date, category, price, quantity, location, barcode, notes, purchase_date, date_added, last_modified, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, nextval('products_position_seq')) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.ExpiryDate, p.Category, p.Price, p.Quantity,
		p.Location, p.Barcode, p.Notes, p.PurchaseDate, p.DateAdded, p.LastModified).Scan(&p.ID)
	return p, err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+pgColumns+` FROM products ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := pgScan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := pgScan(r.db.QueryRowContext(ctx, `SELECT `+pgColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `UPDATE products SET name = $1, expiry_date = $2, category = $3, price = $4, quantity = $5,
		location = $6, barcode = $7, notes = $8, purchase_date = $9,
		date_added = CASE WHEN $10 = '' THEN date_added ELSE $10 END, last_modified = $11
		WHERE id = $12`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.ExpiryDate, p.Category, p.Price, p.Quantity,
		p.Location, p.Barcode, p.Notes, p.PurchaseDate, p.DateAdded, p.LastModified, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) BulkDelete(ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *PostgresProductRepository) Filter(criteria FilterCriteria, now time.Time, thresholdDays int) ([]models.Product, int, error) {
	products, err := r.GetAll()
	if err != nil {
		return nil, 0, err
	}
	filtered := filterProducts(products, criteria, now, thresholdDays)
	return filtered, len(filtered), nil
}

func (r *PostgresProductRepository) ReplaceAll(products []models.Product, nextID int) error {
	if err := validateImport(products); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for i, p := range products {
		_, err := tx.ExecContext(ctx, `INSERT INTO products (`+pgColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			p.ID, p.Name, p.ExpiryDate, p.Category, p.Price, p.Quantity,
			p.Location, p.Barcode, p.Notes, p.PurchaseDate, p.DateAdded, p.LastModified, i+1)
		if err != nil {
			return err
		}
	}

	next := nextIDAfter(products, nextID)
	if _, err := tx.ExecContext(ctx, `SELECT setval('products_id_seq', $1, false)`, next); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `SELECT setval('products_position_seq', $1, false)`, len(products)+1); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresProductRepository) NextID() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var last int64
	var called bool
	err := r.db.QueryRowContext(ctx, `SELECT last_value, is_called FROM products_id_seq`).Scan(&last, &called)
	if err != nil {
		return 0, err
	}
	if called {
		return int(last) + 1, nil
	}
	return int(last), nil
}

func (r *PostgresProductRepository) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `SELECT setval('products_id_seq', 1, false)`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `SELECT setval('products_position_seq', 1, false)`); err != nil {
		return err
	}
	return tx.Commit()
}
