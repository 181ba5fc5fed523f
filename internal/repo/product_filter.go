package repo

import (
	"strings"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// FilterCriteria is the ephemeral search/filter state. Zero values pass
// everything through; the three predicates are ANDed.
type FilterCriteria struct {
	Search   string
	Category string
	Status   expiry.Status
}

// Matches reports whether p satisfies the criteria. The search term matches
// case-insensitively against name, notes, category, barcode and location;
// category is exact; status is computed live from the expiry date.
func (c FilterCriteria) Matches(p models.Product, now time.Time, thresholdDays int) bool {
	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		if !anyContains(term, p.Name, p.Notes, p.Category, p.Barcode, p.Location) {
			return false
		}
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if c.Status != "" {
		status, _, err := expiry.ClassifyDate(p.ExpiryDate, now, thresholdDays)
		if err != nil || status != c.Status {
			return false
		}
	}
	return true
}

func anyContains(term string, fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// filterProducts applies criteria over a snapshot, preserving order. Shared by
// all store implementations: status is derived per call, never stored, so the
// status predicate cannot be pushed into SQL.
func filterProducts(products []models.Product, c FilterCriteria, now time.Time, thresholdDays int) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p, now, thresholdDays) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
