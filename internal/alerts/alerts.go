// Package alerts computes which products are due for an expiry notification.
// Delivery (visual, audible, OS-level) belongs to the caller; this package
// only decides what crossed the expiring/expired boundary and, when redis is
// available, which alerts were already delivered today.
package alerts

import (
	"fmt"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
	"github.com/rogerio-castellano/expiry-tracker/internal/redissvc"
)

// Alert pairs a product with its live classification.
type Alert struct {
	Product         models.Product `json:"product"`
	Status          expiry.Status  `json:"status"`
	DaysUntilExpiry int            `json:"daysUntilExpiry"`
}

// Due returns an alert for every non-fresh product, in store order.
func Due(products []models.Product, now time.Time, thresholdDays int) []Alert {
	var due []Alert
	for _, p := range products {
		status, days, err := expiry.ClassifyDate(p.ExpiryDate, now, thresholdDays)
		if err != nil || status == expiry.StatusFresh {
			continue
		}
		due = append(due, Alert{Product: p, Status: status, DaysUntilExpiry: days})
	}
	return due
}

// Notifier deduplicates alert delivery: each product alerts at most once per
// calendar day. Without redis every alert is reported as unseen.
type Notifier struct {
	redis *redissvc.RedisService
}

func NewNotifier(rs *redissvc.RedisService) *Notifier {
	return &Notifier{redis: rs}
}

// FilterUnseen keeps only the alerts not yet delivered today, marking the
// returned ones as delivered. Dedupe keys expire after two days; the date in
// the key does the actual scoping.
func (n *Notifier) FilterUnseen(as []Alert, now time.Time) ([]Alert, error) {
	if n.redis == nil {
		return as, nil
	}

	day := expiry.FormatDate(now)
	var unseen []Alert
	for _, a := range as {
		key := fmt.Sprintf("alert:%d:%s:%s", a.Product.ID, a.Status, day)
		fresh, err := n.redis.MarkOnce(key, 48*time.Hour)
		if err != nil {
			return nil, fmt.Errorf("alert dedupe: %w", err)
		}
		if fresh {
			unseen = append(unseen, a)
		}
	}
	return unseen, nil
}
