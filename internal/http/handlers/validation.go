package handlers

import (
	"strings"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.ExpiryDate) == "" {
		errs = append(errs, ProductValidationError{Field: "ExpiryDate", Description: "Expiry date is required"})
	} else if _, err := expiry.ParseDate(p.ExpiryDate); err != nil {
		errs = append(errs, ProductValidationError{Field: "ExpiryDate", Description: "Expiry date must be YYYY-MM-DD"})
	}
	if p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if p.PurchaseDate != "" {
		if _, err := expiry.ParseDate(p.PurchaseDate); err != nil {
			errs = append(errs, ProductValidationError{Field: "PurchaseDate", Description: "Purchase date must be YYYY-MM-DD"})
		}
	}
	return errs
}

// normalizeProduct applies the entry defaults: a missing quantity becomes 1, a
// missing category falls back to the configured default, and the purchase date
// defaults to today.
func normalizeProduct(req ProductRequest, now time.Time) ProductRequest {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if strings.TrimSpace(req.Category) == "" {
		req.Category = settingsStore.DefaultCategory()
	}
	if strings.TrimSpace(req.PurchaseDate) == "" {
		req.PurchaseDate = expiry.FormatDate(now)
	}
	return req
}

// entryWarnings flags conditions that do not block the save. An already
// expired product is accepted; the caller decides how loudly to surface it.
func entryWarnings(req ProductRequest, now time.Time) []string {
	status, _, err := expiry.ClassifyDate(req.ExpiryDate, now, settingsStore.AlertThresholdDays())
	if err != nil {
		return nil
	}
	if status == expiry.StatusExpired {
		return []string{"product is already expired"}
	}
	return nil
}
