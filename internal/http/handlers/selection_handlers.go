package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
)

func selectionResponse() SelectionResponse {
	ids := selectionMgr.IDs()
	return SelectionResponse{
		BulkMode: selectionMgr.BulkMode(),
		Selected: ids,
		Count:    len(ids),
	}
}

// GetSelectionHandler godoc
// @Summary Current bulk selection
// @Tags selection
// @Produce json
// @Success 200 {object} SelectionResponse
// @Router /selection [get]
func GetSelectionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, selectionResponse())
}

// SetBulkModeHandler godoc
// @Summary Switch bulk mode on or off
// @Description Either transition clears the current selection.
// @Tags selection
// @Accept json
// @Produce json
// @Param mode body BulkModeRequest true "Desired mode"
// @Success 200 {object} SelectionResponse
// @Failure 400 {string} string "Invalid input"
// @Router /selection/mode [post]
func SetBulkModeHandler(w http.ResponseWriter, r *http.Request) {
	var req BulkModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	selectionMgr.SetBulkMode(req.BulkMode)
	writeJSON(w, http.StatusOK, selectionResponse())
}

// ToggleSelectionHandler godoc
// @Summary Toggle one product in the selection
// @Tags selection
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} SelectionResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Bulk mode is off"
// @Router /selection/toggle/{id} [post]
func ToggleSelectionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if !selectionMgr.BulkMode() {
		http.Error(w, "bulk mode is off", http.StatusConflict)
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	selectionMgr.Toggle(id)
	writeJSON(w, http.StatusOK, selectionResponse())
}

// SelectAllHandler godoc
// @Summary Select every visible product
// @Description Adds the products matching the given filter to the selection.
// @Description With no filter parameters the whole store is selected.
// @Tags selection
// @Produce json
// @Param search query string false "Free-text search term"
// @Param category query string false "Exact category"
// @Param status query string false "fresh | expiring | expired"
// @Success 200 {object} SelectionResponse
// @Failure 400 {string} string "Invalid status"
// @Failure 409 {string} string "Bulk mode is off"
// @Failure 500 {string} string "Internal error"
// @Router /selection/select-all [post]
func SelectAllHandler(w http.ResponseWriter, r *http.Request) {
	if !selectionMgr.BulkMode() {
		http.Error(w, "bulk mode is off", http.StatusConflict)
		return
	}

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

	products, _, err := productRepo.Filter(criteria, time.Now(), settingsStore.AlertThresholdDays())
	if err != nil {
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	selectionMgr.SelectAll(ids)
	writeJSON(w, http.StatusOK, selectionResponse())
}

// DeselectAllHandler godoc
// @Summary Empty the selection
// @Tags selection
// @Produce json
// @Success 200 {object} SelectionResponse
// @Router /selection/deselect-all [post]
func DeselectAllHandler(w http.ResponseWriter, r *http.Request) {
	selectionMgr.DeselectAll()
	writeJSON(w, http.StatusOK, selectionResponse())
}

// BulkDeleteHandler godoc
// @Summary Delete all selected products
// @Description Reconciles the selection against the store first, deletes every
// @Description surviving selected product, then clears the selection.
// @Tags selection
// @Produce json
// @Success 200 {object} BulkDeleteResult
// @Failure 409 {string} string "Bulk mode is off"
// @Failure 500 {string} string "Internal error"
// @Router /selection [delete]
func BulkDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !selectionMgr.BulkMode() {
		http.Error(w, "bulk mode is off", http.StatusConflict)
		return
	}

	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	valid := make([]int, len(products))
	for i, p := range products {
		valid[i] = p.ID
	}
	dropped := selectionMgr.Reconcile(valid)

	deleted, err := productRepo.BulkDelete(selectionMgr.IDs())
	if err != nil {
		http.Error(w, "could not delete products", http.StatusInternalServerError)
		return
	}
	selectionMgr.DeselectAll()

	writeJSON(w, http.StatusOK, BulkDeleteResult{Deleted: deleted, Dropped: dropped})
}
