package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/expiry-tracker/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Use(RequestLogger)

	r.Post("/products", handlers.CreateProductHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Delete("/products", handlers.ClearProductsHandler)
	r.Get("/products/search", handlers.SearchProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Put("/products/{id}", handlers.UpdateProductHandler)
	r.Delete("/products/{id}", handlers.DeleteProductHandler)

	r.Get("/selection", handlers.GetSelectionHandler)
	r.Post("/selection/mode", handlers.SetBulkModeHandler)
	r.Post("/selection/toggle/{id}", handlers.ToggleSelectionHandler)
	r.Post("/selection/select-all", handlers.SelectAllHandler)
	r.Post("/selection/deselect-all", handlers.DeselectAllHandler)
	r.Delete("/selection", handlers.BulkDeleteHandler)

	r.Get("/dashboard", handlers.DashboardHandler)
	r.Get("/reports/monthly", handlers.MonthlyReportHandler)
	r.Get("/alerts", handlers.AlertsHandler)

	r.Get("/settings", handlers.GetSettingsHandler)
	r.Put("/settings", handlers.UpdateSettingsHandler)

	r.Get("/backup/export", handlers.ExportBackupHandler)
	r.Post("/backup/import", handlers.ImportBackupHandler)
	r.Post("/backup/snapshot", handlers.SnapshotHandler)

	r.Get("/healthz", handlers.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
