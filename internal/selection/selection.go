// Package selection tracks the set of product ids chosen for bulk actions.
// The set holds only ids, never product records; deleted products are dropped
// by Reconcile before any bulk action runs.
package selection

import (
	"slices"
	"sync"
)

// Manager owns the bulk-mode flag and the selected id set.
type Manager struct {
	mu       sync.Mutex
	bulkMode bool
	selected map[int]struct{}
}

func NewManager() *Manager {
	return &Manager{selected: make(map[int]struct{})}
}

// SetBulkMode switches bulk mode on or off. Either transition clears the
// current selection.
func (m *Manager) SetBulkMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulkMode = on
	m.selected = make(map[int]struct{})
}

func (m *Manager) BulkMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bulkMode
}

// Toggle inserts the id if absent or removes it if present, and reports
// whether the id is selected afterwards.
func (m *Manager) Toggle(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
		return false
	}
	m.selected[id] = struct{}{}
	return true
}

// SelectAll adds every given id to the selection. Callers pass the ids of the
// current filtered view, so "select all" only covers visible items.
func (m *Manager) SelectAll(ids []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.selected[id] = struct{}{}
	}
}

// DeselectAll empties the selection.
func (m *Manager) DeselectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = make(map[int]struct{})
}

// Reconcile drops every selected id not present in validIDs and returns the
// number dropped. It must run whenever the store or the filter changes.
func (m *Manager) Reconcile(validIDs []int) int {
	valid := make(map[int]struct{}, len(validIDs))
	for _, id := range validIDs {
		valid[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id := range m.selected {
		if _, ok := valid[id]; !ok {
			delete(m.selected, id)
			dropped++
		}
	}
	return dropped
}

// IDs returns the selected ids in ascending order.
func (m *Manager) IDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.selected)
}

// Selected reports whether id is currently selected.
func (m *Manager) Selected(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.selected[id]
	return ok
}
