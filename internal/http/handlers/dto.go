package handlers

import (
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
	"github.com/rogerio-castellano/expiry-tracker/internal/report"
)

type ProductRequest struct {
	Name         string  `json:"name"`
	ExpiryDate   string  `json:"expiryDate"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Location     string  `json:"location"`
	Barcode      string  `json:"barcode"`
	Notes        string  `json:"notes"`
	PurchaseDate string  `json:"purchaseDate"`
}

// ProductResponse carries the stored record plus its live classification.
// Status and daysUntilExpiry are computed at response time, never persisted.
type ProductResponse struct {
	Id              int      `json:"id"`
	Name            string   `json:"name"`
	ExpiryDate      string   `json:"expiryDate"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	Quantity        int      `json:"quantity"`
	Location        string   `json:"location,omitempty"`
	Barcode         string   `json:"barcode,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	PurchaseDate    string   `json:"purchaseDate,omitempty"`
	DateAdded       string   `json:"dateAdded,omitempty"`
	LastModified    string   `json:"lastModified,omitempty"`
	Status          string   `json:"status"`
	DaysUntilExpiry int      `json:"daysUntilExpiry"`
	TotalValue      float64  `json:"totalValue"`
	Warnings        []string `json:"warnings,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type BulkModeRequest struct {
	BulkMode bool `json:"bulkMode"`
}

type SelectionResponse struct {
	BulkMode bool  `json:"bulkMode"`
	Selected []int `json:"selected"`
	Count    int   `json:"count"`
}

type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
	Dropped int `json:"dropped"` // selected ids that no longer existed
}

type DashboardResult struct {
	Stats      report.DashboardStats  `json:"stats"`
	Categories []report.CategoryCount `json:"categories"`
	Trend      []report.TrendPoint    `json:"trend"`
}

type ImportResult struct {
	ImportedProductsCount int    `json:"imported"`
	SnapshotID            string `json:"snapshotId,omitempty"`
}

type SnapshotResult struct {
	Path  string `json:"path"`
	S3Key string `json:"s3Key,omitempty"`
}

// toProductResponse classifies p as of now under the current alert threshold.
func toProductResponse(p models.Product, now time.Time) ProductResponse {
	resp := ProductResponse{
		Id:           p.ID,
		Name:         p.Name,
		ExpiryDate:   p.ExpiryDate,
		Category:     p.Category,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Location:     p.Location,
		Barcode:      p.Barcode,
		Notes:        p.Notes,
		PurchaseDate: p.PurchaseDate,
		DateAdded:    p.DateAdded,
		LastModified: p.LastModified,
		TotalValue:   p.Price * float64(p.Quantity),
	}

	status, days, err := expiry.ClassifyDate(p.ExpiryDate, now, settingsStore.AlertThresholdDays())
	if err == nil {
		resp.Status = string(status)
		resp.DaysUntilExpiry = days
	}
	return resp
}

func toProductResponses(products []models.Product, now time.Time) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p, now)
	}
	return out
}
