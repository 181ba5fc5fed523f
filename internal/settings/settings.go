// Package settings owns the mutable runtime configuration. There is no
// automatic durability: settings persist only through backup export/import.
package settings

import (
	"sync"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// Store guards the current settings. Updates take effect on the next read;
// classification reads the alert threshold per call, so a threshold change
// reclassifies every product immediately.
type Store struct {
	mu      sync.RWMutex
	current models.Settings
}

func NewStore(initial models.Settings) *Store {
	return &Store{current: initial}
}

func (s *Store) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Update(next models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
}

// AlertThresholdDays is a shorthand for the classification parameter.
func (s *Store) AlertThresholdDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AlertThresholdDays
}

// DefaultCategory is the fallback applied to products added without one.
func (s *Store) DefaultCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.DefaultCategory
}
