package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
)

// CreateProductHandler godoc
// @Summary Add a product
// @Description Adds a perishable product to the tracker. Quantity defaults to 1,
// @Description the category falls back to the configured default, and already
// @Description expired products are accepted with an advisory warning.
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	now := time.Now()
	req = normalizeProduct(req, now)

	product := models.Product{
		Name:         req.Name,
		ExpiryDate:   req.ExpiryDate,
		Category:     req.Category,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Location:     req.Location,
		Barcode:      req.Barcode,
		Notes:        req.Notes,
		PurchaseDate: req.PurchaseDate,
		DateAdded:    expiry.FormatDate(now),
		LastModified: now.UTC().Format(time.RFC3339),
	}
	created, err := productRepo.Create(product)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidProduct) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	resp := toProductResponse(created, now)
	resp.Warnings = entryWarnings(req, now)

	writeJSON(w, http.StatusCreated, resp)
}

// GetProductsHandler godoc
// @Summary List all products
// @Description Lists every product in insertion order with its live status.
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products, time.Now()))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product, time.Now()))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces the editable fields of a product. The original
// @Description dateAdded is preserved; lastModified is set to now.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	now := time.Now()
	req = normalizeProduct(req, now)

	product := models.Product{
		ID:           id,
		Name:         req.Name,
		ExpiryDate:   req.ExpiryDate,
		Category:     req.Category,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Location:     req.Location,
		Barcode:      req.Barcode,
		Notes:        req.Notes,
		PurchaseDate: req.PurchaseDate,
		LastModified: now.UTC().Format(time.RFC3339),
	}
	updated, err := productRepo.Update(product)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	resp := toProductResponse(updated, now)
	resp.Warnings = entryWarnings(req, now)
	writeJSON(w, http.StatusOK, resp)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Deletes a product and drops its id from the bulk selection.
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	reconcileSelection()
	w.WriteHeader(http.StatusNoContent)
}

// ClearProductsHandler godoc
// @Summary Delete all products
// @Description Empties the store and the bulk selection. The id counter is
// @Description reset; this is the only operation that reuses ids.
// @Tags products
// @Success 204 "Cleared"
// @Failure 500 {string} string "Internal error"
// @Router /products [delete]
func ClearProductsHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.Clear(); err != nil {
		http.Error(w, "could not clear products", http.StatusInternalServerError)
		return
	}
	selectionMgr.DeselectAll()
	w.WriteHeader(http.StatusNoContent)
}

// SearchProductsHandler godoc
// @Summary Search and filter products
// @Description Filters by a free-text term (name, notes, category, barcode,
// @Description location), an exact category and a live-computed status. The
// @Description three predicates are ANDed. Changing the filter while bulk mode
// @Description is active clears the selection.
// @Tags products
// @Produce json
// @Param search query string false "Free-text search term"
// @Param category query string false "Exact category"
// @Param status query string false "fresh | expiring | expired"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid status"
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := repo.FilterCriteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if s := q.Get("status"); s != "" {
		status, ok := expiry.ParseStatus(s)
		if !ok {
			http.Error(w, "status must be fresh, expiring or expired", http.StatusBadRequest)
			return
		}
		criteria.Status = status
	}

	now := time.Now()
	products, total, err := productRepo.Filter(criteria, now, settingsStore.AlertThresholdDays())
	if err != nil {
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	// A filter change invalidates any selection made against the previous
	// view, so bulk mode drops it.
	if selectionMgr.BulkMode() {
		selectionMgr.DeselectAll()
	}

	resp := ProductsSearchResult{
		Data: toProductResponses(products, now),
		Meta: Meta{TotalCount: total},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// reconcileSelection drops selected ids that no longer exist in the store.
func reconcileSelection() {
	products, err := productRepo.GetAll()
	if err != nil {
		return
	}
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	selectionMgr.Reconcile(ids)
}
