package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// ErrProductNotFound is returned when an operation references an id that is
// not in the store.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidProduct is returned when a product violates an entity invariant.
// The wrapping error carries the detail.
var ErrInvalidProduct = errors.New("invalid product")

// ProductRepository defines the interface for product data operations.
//
// Implementations assign ids from a strictly increasing counter starting at 1;
// ids are never reused after deletion. Iteration order is insertion order.
// Every mutating operation either fully succeeds or fails without touching the
// stored data.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	// BulkDelete removes all matching ids, ignoring absent ones, and
	// returns the count actually removed.
	BulkDelete(ids []int) (int, error)
	// Filter returns the products matching criteria, classified at now with
	// the given alert threshold, in store iteration order.
	Filter(criteria FilterCriteria, now time.Time, thresholdDays int) ([]models.Product, int, error)
	// ReplaceAll swaps the entire collection, as during a backup restore.
	// All records are validated first; on any invalid record the store is
	// left unchanged. The id counter advances to max(ids)+1 or nextID,
	// whichever keeps it strictly monotonic.
	ReplaceAll(products []models.Product, nextID int) error
	NextID() (int, error)
	Clear() error
}

// ValidateProduct checks the entity invariants: non-empty name, a parseable
// expiry date, quantity >= 1 and price >= 0.
func ValidateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.ExpiryDate) == "" {
		return fmt.Errorf("%w: expiry date is required", ErrInvalidProduct)
	}
	if _, err := expiry.ParseDate(p.ExpiryDate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if p.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	return nil
}

// validateImport checks a full replacement set: entity invariants plus
// positive, unique ids.
func validateImport(products []models.Product) error {
	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if p.ID < 1 {
			return fmt.Errorf("%w: record %d has non-positive id %d", ErrInvalidProduct, i+1, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
		if err := ValidateProduct(p); err != nil {
			return fmt.Errorf("record %d (id %d): %w", i+1, p.ID, err)
		}
	}
	return nil
}

// nextIDAfter picks the id counter value after a replacement: the supplied
// value unless an imported id would collide with it.
func nextIDAfter(products []models.Product, supplied int) int {
	next := supplied
	if next < 1 {
		next = 1
	}
	for _, p := range products {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
