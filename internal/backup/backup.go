// Package backup implements the export/import format: a single JSON document
// carrying the full product set and the current settings. Restore is
// all-or-nothing; a backup with any invalid record is rejected before the
// store is touched.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tailscale/hujson"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
)

// Version identifies the backup layout. Kept at the value earlier releases
// wrote so their files import unchanged.
const Version = "2.0"

// Backup is the persisted state layout.
type Backup struct {
	Version    string           `json:"version"`
	SnapshotID string           `json:"snapshotId,omitempty"`
	ExportedAt string           `json:"exported,omitempty"`
	Products   []models.Product `json:"products"`
	Settings   *models.Settings `json:"settings,omitempty"`
}

// Serialize captures the given state as a backup document.
func Serialize(products []models.Product, settings models.Settings, now time.Time) Backup {
	return Backup{
		Version:    Version,
		SnapshotID: uuid.NewString(),
		ExportedAt: now.UTC().Format(time.RFC3339),
		Products:   products,
		Settings:   &settings,
	}
}

// Marshal renders a backup as indented JSON, matching the files users
// download.
func Marshal(b Backup) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Parse decodes a backup document. Input is standardized with hujson first,
// so hand-edited files with comments or trailing commas still import.
func Parse(data []byte) (Backup, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Backup{}, fmt.Errorf("%w: not valid JSON: %v", repo.ErrInvalidProduct, err)
	}

	var b Backup
	if err := json.Unmarshal(std, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: malformed backup: %v", repo.ErrInvalidProduct, err)
	}
	if b.Products == nil {
		return Backup{}, fmt.Errorf("%w: backup has no products array", repo.ErrInvalidProduct)
	}
	return b, nil
}

// Restore validates every record and atomically replaces the store contents.
// The id counter advances to max(imported ids)+1.
func Restore(b Backup, store repo.ProductRepository) error {
	return store.ReplaceAll(b.Products, nextID(b.Products))
}

func nextID(products []models.Product) int {
	next := 1
	for _, p := range products {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
