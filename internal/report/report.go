// Package report computes dashboard statistics and monthly reports from the
// live product set. Every figure is derived on demand from the store and the
// classification engine; nothing is cached.
package report

import (
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// DashboardStats is the summary shown on the dashboard. A product counts in
// at most one of expired/expiringSoon; fresh products count in neither.
type DashboardStats struct {
	Total             int     `json:"total"`
	ExpiredCount      int     `json:"expired"`
	ExpiringSoonCount int     `json:"expiringSoon"`
	TotalValue        float64 `json:"totalValue"`
}

// Dashboard computes the summary in a single pass over all products.
func Dashboard(products []models.Product, now time.Time, thresholdDays int) DashboardStats {
	stats := DashboardStats{Total: len(products)}
	for _, p := range products {
		stats.TotalValue += p.Price * float64(p.Quantity)

		status, _, err := expiry.ClassifyDate(p.ExpiryDate, now, thresholdDays)
		if err != nil {
			continue
		}
		switch status {
		case expiry.StatusExpired:
			stats.ExpiredCount++
		case expiry.StatusExpiring:
			stats.ExpiringSoonCount++
		}
	}
	return stats
}

// CategoryCount is one slice of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryBreakdown groups products by exact category string. Categories are
// ordered by first appearance in the store.
func CategoryBreakdown(products []models.Product) []CategoryCount {
	index := make(map[string]int)
	var breakdown []CategoryCount
	for _, p := range products {
		if i, ok := index[p.Category]; ok {
			breakdown[i].Count++
			continue
		}
		index[p.Category] = len(breakdown)
		breakdown = append(breakdown, CategoryCount{Category: p.Category, Count: 1})
	}
	return breakdown
}

// Period selects which calendar month a report is labeled with.
type Period string

const (
	PeriodCurrent Period = "current"
	PeriodLast    Period = "last"
)

// ParsePeriod validates a period value from user input; empty defaults to
// current.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodCurrent, "":
		return PeriodCurrent, true
	case PeriodLast:
		return PeriodLast, true
	default:
		return "", false
	}
}

// Monthly is a generated report. The period changes only the title and month
// label; the statistics always cover the live, full product set. That
// asymmetry is intentional and matches the behavior users already rely on.
type Monthly struct {
	Title         string          `json:"title"`
	Month         string          `json:"month"`
	TotalProducts int             `json:"totalProducts"`
	ExpiredCount  int             `json:"expired"`
	TotalValue    float64         `json:"totalValue"`
	Categories    []CategoryCount `json:"categories"`
}

// MonthlyReport builds the report for the given period.
func MonthlyReport(products []models.Product, now time.Time, thresholdDays int, period Period) Monthly {
	reportMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	title := "Current Month Report"
	if period == PeriodLast {
		reportMonth = reportMonth.AddDate(0, -1, 0)
		title = "Last Month Report"
	}

	stats := Dashboard(products, now, thresholdDays)
	return Monthly{
		Title:         title,
		Month:         reportMonth.Format("January 2006"),
		TotalProducts: stats.Total,
		ExpiredCount:  stats.ExpiredCount,
		TotalValue:    stats.TotalValue,
		Categories:    CategoryBreakdown(products),
	}
}

// TrendPoint is one day of the expiry trend series.
type TrendPoint struct {
	Date     string `json:"date"`
	Expired  int    `json:"expired"`
	Expiring int    `json:"expiring"`
}

// ExpiryTrend classifies the current product set as of each of the last days
// calendar days, newest last. It feeds the dashboard trend chart with real
// counts instead of sampled placeholders.
func ExpiryTrend(products []models.Product, now time.Time, thresholdDays, days int) []TrendPoint {
	trend := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		asOf := expiry.StartOfDay(now).AddDate(0, 0, -i)
		point := TrendPoint{Date: expiry.FormatDate(asOf)}
		for _, p := range products {
			status, _, err := expiry.ClassifyDate(p.ExpiryDate, asOf, thresholdDays)
			if err != nil {
				continue
			}
			switch status {
			case expiry.StatusExpired:
				point.Expired++
			case expiry.StatusExpiring:
				point.Expiring++
			}
		}
		trend = append(trend, point)
	}
	return trend
}
