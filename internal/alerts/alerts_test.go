package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

func TestDue(t *testing.T) {
	now := time.Date(2025, time.September, 17, 9, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: 1, Name: "Greek Yogurt", ExpiryDate: "2025-09-16"},
		{ID: 2, Name: "Organic Milk", ExpiryDate: "2025-09-17"},
		{ID: 3, Name: "Vitamin C", ExpiryDate: "2025-12-31"},
	}

	due := Due(products, now, 3)

	require.Len(t, due, 2)
	assert.Equal(t, 1, due[0].Product.ID)
	assert.Equal(t, expiry.StatusExpired, due[0].Status)
	assert.Equal(t, -1, due[0].DaysUntilExpiry)
	assert.Equal(t, 2, due[1].Product.ID)
	assert.Equal(t, expiry.StatusExpiring, due[1].Status)
	assert.Equal(t, 0, due[1].DaysUntilExpiry)
}

func TestDueEmptyWhenAllFresh(t *testing.T) {
	now := time.Date(2025, time.September, 17, 9, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: 1, Name: "Vitamin C", ExpiryDate: "2025-12-31"},
	}

	assert.Empty(t, Due(products, now, 3))
}

func TestFilterUnseenWithoutRedisPassesThrough(t *testing.T) {
	n := NewNotifier(nil)
	in := []Alert{{Product: models.Product{ID: 1}, Status: expiry.StatusExpired}}

	out, err := n.FilterUnseen(in, time.Now())

	require.NoError(t, err)
	assert.Equal(t, in, out)
}
