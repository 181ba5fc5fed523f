package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/alerts"
	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	handler "github.com/rogerio-castellano/expiry-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
	"github.com/rogerio-castellano/expiry-tracker/internal/selection"
	"github.com/rogerio-castellano/expiry-tracker/internal/settings"
)

var (
	productRepo   *repo.InMemoryProductRepository
	settingsStore *settings.Store
	selectionMgr  *selection.Manager
)

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	settingsStore = settings.NewStore(models.DefaultSettings())
	handler.SetSettingsStore(settingsStore)

	selectionMgr = selection.NewManager()
	handler.SetSelectionManager(selectionMgr)

	// No redis in tests: every alert counts as unseen.
	handler.SetNotifier(alerts.NewNotifier(nil))
}

func resetState() {
	productRepo.Clear()
	selectionMgr.SetBulkMode(false)
	settingsStore.Update(models.DefaultSettings())
}

// dateFromToday returns the civil date the given number of days from today.
// Negative values produce dates in the past.
func dateFromToday(days int) string {
	return expiry.FormatDate(time.Now().AddDate(0, 0, days))
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/products", p)
}

func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("expected 201 creating %q, got %d: %s", p.Name, w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding create response: %v", err))
	}
	return resp
}

func enableBulkMode(r http.Handler) {
	doRequest(r, http.MethodPost, "/selection/mode", handler.BulkModeRequest{BulkMode: true})
}
