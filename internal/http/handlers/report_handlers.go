package handlers

import (
	"net/http"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/alerts"
	"github.com/rogerio-castellano/expiry-tracker/internal/report"
)

const trendDays = 7

// DashboardHandler godoc
// @Summary Dashboard statistics
// @Description Summary counts, total inventory value, the category breakdown
// @Description and the expiry trend over the last week. Everything is derived
// @Description from the live product set on each call.
// @Tags reports
// @Produce json
// @Success 200 {object} DashboardResult
// @Failure 500 {string} string "Internal error"
// @Router /dashboard [get]
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	threshold := settingsStore.AlertThresholdDays()
	resp := DashboardResult{
		Stats:      report.Dashboard(products, now, threshold),
		Categories: report.CategoryBreakdown(products),
		Trend:      report.ExpiryTrend(products, now, threshold, trendDays),
	}
	writeJSON(w, http.StatusOK, resp)
}

// MonthlyReportHandler godoc
// @Summary Monthly report
// @Description Generates the report for the current or last calendar month.
// @Description The period changes the title and month label only; statistics
// @Description always cover the full live product set.
// @Tags reports
// @Produce json
// @Param period query string false "current | last" default(current)
// @Success 200 {object} report.Monthly
// @Failure 400 {string} string "Invalid period"
// @Failure 500 {string} string "Internal error"
// @Router /reports/monthly [get]
func MonthlyReportHandler(w http.ResponseWriter, r *http.Request) {
	period, ok := report.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		http.Error(w, "period must be current or last", http.StatusBadRequest)
		return
	}

	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	monthly := report.MonthlyReport(products, time.Now(), settingsStore.AlertThresholdDays(), period)
	writeJSON(w, http.StatusOK, monthly)
}

// AlertsHandler godoc
// @Summary Products due for an expiry alert
// @Description Returns every expiring or expired product. With unseen=true and
// @Description redis configured, alerts already delivered today are filtered
// @Description out and the returned ones are marked delivered.
// @Tags reports
// @Produce json
// @Param unseen query bool false "Only alerts not yet delivered today"
// @Success 200 {array} alerts.Alert
// @Failure 500 {string} string "Internal error"
// @Router /alerts [get]
func AlertsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	due := alerts.Due(products, now, settingsStore.AlertThresholdDays())

	if r.URL.Query().Get("unseen") == "true" && notifier != nil {
		due, err = notifier.FilterUnseen(due, now)
		if err != nil {
			http.Error(w, "could not check delivered alerts", http.StatusInternalServerError)
			return
		}
	}

	if due == nil {
		due = []alerts.Alert{}
	}
	writeJSON(w, http.StatusOK, due)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags system
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
