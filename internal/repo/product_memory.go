package repo

import (
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// InMemoryProductRepository is the canonical in-memory implementation of
// ProductRepository. It is the default store: the application is single-user
// and exports its state explicitly, so nothing needs to survive the process
// unless a durable driver is configured.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates an empty store with the id counter at 1.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

// Create validates the draft, assigns the next id and appends the product.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	if err := ValidateProduct(product); err != nil {
		return models.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll returns all products in insertion order.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces the stored record matching product.ID, keeping its position
// and its original DateAdded.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	if err := ValidateProduct(product); err != nil {
		return models.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			if product.DateAdded == "" {
				product.DateAdded = p.DateAdded
			}
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product by its ID. The id is not reused afterwards.
func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// BulkDelete removes every product whose id is in ids, ignoring absent ids.
func (r *InMemoryProductRepository) BulkDelete(ids []int) (int, error) {
	doomed := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.products[:0]
	removed := 0
	for _, p := range r.products {
		if _, ok := doomed[p.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.products = kept
	return removed, nil
}

// Filter returns the products matching criteria in insertion order, together
// with the match count.
func (r *InMemoryProductRepository) Filter(criteria FilterCriteria, now time.Time, thresholdDays int) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := filterProducts(r.products, criteria, now, thresholdDays)
	return filtered, len(filtered), nil
}

// ReplaceAll swaps the whole collection after validating every record. On any
// invalid record the store is left untouched.
func (r *InMemoryProductRepository) ReplaceAll(products []models.Product, nextID int) error {
	if err := validateImport(products); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = slices.Clone(products)
	r.nextID = nextIDAfter(products, nextID)
	return nil
}

// NextID reports the id the next Create will assign.
func (r *InMemoryProductRepository) NextID() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID, nil
}

// Clear empties the store and resets the id counter to 1.
func (r *InMemoryProductRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = nil
	r.nextID = 1
	return nil
}
