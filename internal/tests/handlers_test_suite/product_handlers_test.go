package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/expiry-tracker/internal/http"
	handler "github.com/rogerio-castellano/expiry-tracker/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{
		Name:       "Organic Milk",
		ExpiryDate: dateFromToday(10),
		Category:   "Dairy",
		Price:      4.99,
		Quantity:   2,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Organic Milk" {
		t.Errorf("expected name 'Organic Milk', got %v", resp.Name)
	}
	if resp.Status != "fresh" {
		t.Errorf("expected status 'fresh' for a far-future expiry, got %v", resp.Status)
	}
	if resp.DaysUntilExpiry != 10 {
		t.Errorf("expected 10 days until expiry, got %d", resp.DaysUntilExpiry)
	}
	if resp.TotalValue != 9.98 {
		t.Errorf("expected total value 9.98, got %v", resp.TotalValue)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", resp.Warnings)
	}
}

func TestCreateProductHandler_AppliesDefaults(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	resp := mustCreateProduct(r, handler.ProductRequest{
		Name:       "Mystery Jar",
		ExpiryDate: dateFromToday(30),
	})

	if resp.Quantity != 1 {
		t.Errorf("expected quantity to default to 1, got %d", resp.Quantity)
	}
	if resp.Category != "Other" {
		t.Errorf("expected default category 'Other', got %q", resp.Category)
	}
	if resp.PurchaseDate != dateFromToday(0) {
		t.Errorf("expected purchase date to default to today, got %q", resp.PurchaseDate)
	}
	if resp.DateAdded != dateFromToday(0) {
		t.Errorf("expected dateAdded to be today, got %q", resp.DateAdded)
	}
}

func TestCreateProductHandler_ExpiredAcceptedWithWarning(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{
		Name:       "Old Yogurt",
		ExpiryDate: dateFromToday(-2),
		Quantity:   1,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected expired product to be accepted, got %d", w.Code)
	}

	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != "expired" {
		t.Errorf("expected status 'expired', got %v", resp.Status)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("expected one advisory warning, got %v", resp.Warnings)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name and expiry",
			payload:        handler.ProductRequest{Name: "", ExpiryDate: ""},
			expectedErrors: []string{"Name", "ExpiryDate"},
		},
		{
			name:           "Malformed expiry date",
			payload:        handler.ProductRequest{Name: "Milk", ExpiryDate: "20/09/2025"},
			expectedErrors: []string{"ExpiryDate"},
		},
		{
			name:           "Negative price",
			payload:        handler.ProductRequest{Name: "Milk", ExpiryDate: dateFromToday(5), Price: -1},
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Malformed purchase date",
			payload:        handler.ProductRequest{Name: "Milk", ExpiryDate: dateFromToday(5), PurchaseDate: "yesterday"},
			expectedErrors: []string{"PurchaseDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	badJSON := `{Name: "Invalid" ExpiryDate: "2025-09-20"}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestGetProductsHandler_InsertionOrder(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Milk", ExpiryDate: dateFromToday(3)})
	mustCreateProduct(r, handler.ProductRequest{Name: "Bread", ExpiryDate: dateFromToday(5)})

	w := doRequest(r, http.MethodGet, "/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var products []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
	if products[0].Name != "Milk" || products[1].Name != "Bread" {
		t.Errorf("expected insertion order Milk, Bread; got %v, %v", products[0].Name, products[1].Name)
	}
}

func TestGetProductByIDHandler_NotFound(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	w := doRequest(r, http.MethodGet, "/products/999999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateProductHandler_PreservesDateAdded(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	created := mustCreateProduct(r, handler.ProductRequest{Name: "Old Name", ExpiryDate: dateFromToday(5), Price: 1.0})

	update := handler.ProductRequest{Name: "New Name", ExpiryDate: dateFromToday(8), Price: 2.0, Quantity: 3}
	w := doRequest(r, http.MethodPut, fmt.Sprintf("/products/%d", created.Id), update)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var updated handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("expected name 'New Name', got %v", updated.Name)
	}
	if updated.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", updated.Quantity)
	}
	if updated.DateAdded != created.DateAdded {
		t.Errorf("expected dateAdded %q to be preserved, got %q", created.DateAdded, updated.DateAdded)
	}
	if updated.DaysUntilExpiry != 8 {
		t.Errorf("expected 8 days until expiry after update, got %d", updated.DaysUntilExpiry)
	}
}

func TestUpdateProductHandler_NotFound(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	update := handler.ProductRequest{Name: "Ghost", ExpiryDate: dateFromToday(1)}
	w := doRequest(r, http.MethodPut, "/products/999999", update)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestDeleteProductHandler_NeverReusesIDs(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	first := mustCreateProduct(r, handler.ProductRequest{Name: "Milk", ExpiryDate: dateFromToday(3)})

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/products/%d", first.Id), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	if got := doRequest(r, http.MethodGet, fmt.Sprintf("/products/%d", first.Id), nil); got.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", got.Code)
	}

	second := mustCreateProduct(r, handler.ProductRequest{Name: "Bread", ExpiryDate: dateFromToday(4)})
	if second.Id <= first.Id {
		t.Errorf("expected a fresh id after deletion, got %d (deleted %d)", second.Id, first.Id)
	}
}

func TestClearProductsHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	mustCreateProduct(r, handler.ProductRequest{Name: "Milk", ExpiryDate: dateFromToday(3)})
	mustCreateProduct(r, handler.ProductRequest{Name: "Bread", ExpiryDate: dateFromToday(4)})

	w := doRequest(r, http.MethodDelete, "/products", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	var products []handler.ProductResponse
	got := doRequest(r, http.MethodGet, "/products", nil)
	json.NewDecoder(got.Body).Decode(&products)
	if len(products) != 0 {
		t.Errorf("expected empty store after clear, got %d products", len(products))
	}
}

func TestSearchProductsHandler(t *testing.T) {
	t.Cleanup(resetState)
	r := api.NewRouter()

	products := []handler.ProductRequest{
		{Name: "Organic Milk", ExpiryDate: dateFromToday(1), Category: "Dairy"},
		{Name: "Cheddar", ExpiryDate: dateFromToday(20), Category: "Dairy", Notes: "sharp"},
		{Name: "Sourdough", ExpiryDate: dateFromToday(-1), Category: "Bakery", Location: "Pantry"},
	}
	for _, p := range products {
		mustCreateProduct(r, p)
	}

	search := func(t *testing.T, query string) handler.ProductsSearchResult {
		w := doRequest(r, http.MethodGet, "/products/search?"+query, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp handler.ProductsSearchResult
		json.NewDecoder(w.Body).Decode(&resp)
		return resp
	}

	t.Run("By name fragment", func(t *testing.T) {
		resp := search(t, "search=milk")
		if len(resp.Data) != 1 || resp.Data[0].Name != "Organic Milk" {
			t.Errorf("expected only 'Organic Milk', got %v", resp.Data)
		}
	})

	t.Run("Search covers notes and location", func(t *testing.T) {
		if resp := search(t, "search=sharp"); len(resp.Data) != 1 || resp.Data[0].Name != "Cheddar" {
			t.Errorf("expected notes match for 'Cheddar', got %v", resp.Data)
		}
		if resp := search(t, "search=pantry"); len(resp.Data) != 1 || resp.Data[0].Name != "Sourdough" {
			t.Errorf("expected location match for 'Sourdough', got %v", resp.Data)
		}
	})

	t.Run("By category", func(t *testing.T) {
		resp := search(t, "category=Dairy")
		if len(resp.Data) != 2 {
			t.Errorf("expected two dairy products, got %d", len(resp.Data))
		}
	})

	t.Run("By status", func(t *testing.T) {
		resp := search(t, "status=expired")
		if len(resp.Data) != 1 || resp.Data[0].Name != "Sourdough" {
			t.Errorf("expected only the expired product, got %v", resp.Data)
		}
	})

	t.Run("Combined predicates", func(t *testing.T) {
		resp := search(t, "category=Dairy&status=expiring")
		if len(resp.Data) != 1 || resp.Data[0].Name != "Organic Milk" {
			t.Errorf("expected only 'Organic Milk' as expiring dairy, got %v", resp.Data)
		}
	})

	t.Run("No match", func(t *testing.T) {
		resp := search(t, "search=xyz")
		if len(resp.Data) != 0 {
			t.Errorf("expected empty result, got %d items", len(resp.Data))
		}
		if resp.Meta.TotalCount != 0 {
			t.Errorf("expected total count 0, got %d", resp.Meta.TotalCount)
		}
	})

	t.Run("Invalid status", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/products/search?status=rotten", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown status, got %d", w.Code)
		}
	})
}
