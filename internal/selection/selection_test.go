package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	m := NewManager()

	assert.True(t, m.Toggle(1))
	assert.True(t, m.Selected(1))
	assert.False(t, m.Toggle(1))
	assert.False(t, m.Selected(1))
	assert.Equal(t, 0, m.Count())
}

func TestSelectAllUnionsWithExisting(t *testing.T) {
	m := NewManager()
	m.Toggle(5)

	m.SelectAll([]int{1, 3})

	assert.Equal(t, []int{1, 3, 5}, m.IDs())
}

func TestDeselectAll(t *testing.T) {
	m := NewManager()
	m.SelectAll([]int{1, 2, 3})

	m.DeselectAll()

	assert.Empty(t, m.IDs())
}

func TestReconcileDropsDanglingIDs(t *testing.T) {
	m := NewManager()
	m.SelectAll([]int{1, 3})

	// Product 3 was deleted from the store.
	dropped := m.Reconcile([]int{1, 2})

	assert.Equal(t, 1, dropped)
	assert.Equal(t, []int{1}, m.IDs())
}

func TestReconcileAgainstEmptyStore(t *testing.T) {
	m := NewManager()
	m.SelectAll([]int{1, 2})

	dropped := m.Reconcile(nil)

	assert.Equal(t, 2, dropped)
	assert.Empty(t, m.IDs())
}

func TestBulkModeToggleClearsSelection(t *testing.T) {
	m := NewManager()

	m.SetBulkMode(true)
	m.SelectAll([]int{1, 2})
	assert.Equal(t, 2, m.Count())

	m.SetBulkMode(false)
	assert.False(t, m.BulkMode())
	assert.Equal(t, 0, m.Count())

	m.SetBulkMode(true)
	assert.True(t, m.BulkMode())
	assert.Equal(t, 0, m.Count())
}
