package repo

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

func newSQLiteRepo(t *testing.T) *SQLiteProductRepository {
	t.Helper()
	r, err := NewSQLiteProductRepository(filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteCreateAndGet(t *testing.T) {
	r := newSQLiteRepo(t)

	p := newTestProduct("Milk", "2025-09-20")
	p.Notes = "Keep refrigerated"
	p.DateAdded = "2025-09-15"
	created, err := r.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}

	got, err := r.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Milk" || got.Notes != "Keep refrigerated" || got.DateAdded != "2025-09-15" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if _, err := r.GetByID(99); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSQLiteIDsSurviveDeletion(t *testing.T) {
	r := newSQLiteRepo(t)

	for _, name := range []string{"Milk", "Bread", "Yogurt"} {
		if _, err := r.Create(newTestProduct(name, "2025-09-20")); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := r.Delete(3); err != nil {
		t.Fatalf("delete: %v", err)
	}

	created, err := r.Create(newTestProduct("Salmon", "2025-09-19"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 4 {
		t.Errorf("expected id 4 after deleting id 3, got %d", created.ID)
	}
}

func TestSQLiteReplaceAllPreservesOrder(t *testing.T) {
	r := newSQLiteRepo(t)

	// Ids deliberately out of ascending order: iteration must follow the
	// supplied order, not the ids.
	b := newTestProduct("Bread", "2025-09-25")
	b.ID = 9
	a := newTestProduct("Milk", "2025-09-20")
	a.ID = 2

	if err := r.ReplaceAll([]models.Product{b, a}, 1); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	all, err := r.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Bread" || all[1].Name != "Milk" {
		t.Errorf("expected supplied order preserved, got %v", all)
	}

	next, err := r.NextID()
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if next != 10 {
		t.Errorf("expected next id 10, got %d", next)
	}
}

func TestSQLiteBulkDeleteAndClear(t *testing.T) {
	r := newSQLiteRepo(t)

	for _, name := range []string{"Milk", "Bread", "Yogurt"} {
		if _, err := r.Create(newTestProduct(name, "2025-09-20")); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	removed, err := r.BulkDelete([]int{1, 3, 99})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	if err := r.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	created, err := r.Create(newTestProduct("Fresh Start", "2025-09-21"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id counter reset to 1, got %d", created.ID)
	}
}
