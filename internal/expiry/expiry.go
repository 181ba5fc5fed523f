// Package expiry classifies products by how close they are to their expiry
// date. Classification is pure: it depends only on the expiry date, the
// reference time and the alert threshold, and is recomputed on every call.
package expiry

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a product relative to its expiry date.
type Status string

const (
	StatusFresh    Status = "fresh"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// DateLayout is the civil date form used throughout the store.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD civil date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as a YYYY-MM-DD civil date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay normalizes t to midnight UTC of its calendar day. Comparing two
// normalized values compares calendar dates, not wall-clock instants.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from now until expiry.
// Zero means the product expires today; negative values count days since
// expiry.
func DaysUntil(expiry, now time.Time) int {
	return int(StartOfDay(expiry).Sub(StartOfDay(now)) / (24 * time.Hour))
}

// Classify maps an expiry date to a lifecycle status.
//
// A product is expired only when its expiry date is strictly before today; a
// product expiring today is still "expiring" for any threshold >= 0. The
// threshold boundary is inclusive.
func Classify(expiry, now time.Time, thresholdDays int) Status {
	days := DaysUntil(expiry, now)
	switch {
	case days < 0:
		return StatusExpired
	case days <= thresholdDays:
		return StatusExpiring
	default:
		return StatusFresh
	}
}

// ClassifyDate parses a stored civil date and classifies it.
func ClassifyDate(expiryDate string, now time.Time, thresholdDays int) (Status, int, error) {
	expiry, err := ParseDate(expiryDate)
	if err != nil {
		return "", 0, err
	}
	return Classify(expiry, now, thresholdDays), DaysUntil(expiry, now), nil
}

// ParseStatus validates a status filter value coming from user input.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusFresh, StatusExpiring, StatusExpired:
		return Status(s), true
	default:
		return "", false
	}
}
