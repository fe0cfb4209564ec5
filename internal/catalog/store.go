package catalog

import (
	"strings"
	"sync"

	"kirana_stock/internal/models"
)

// ChangeFunc receives a copy of the catalog after every successful mutation.
type ChangeFunc func(items []models.Item)

// Store owns the in-memory catalog. Items keep insertion order; display order
// is derived separately by Apply.
type Store struct {
	// changeMu serializes mutations together with their listener calls, so
	// listeners see catalog copies in the order the changes were made.
	changeMu  sync.Mutex
	mu        sync.RWMutex
	items     []models.Item
	ids       *IDGenerator
	listeners []ChangeFunc
}

func NewStore(ids *IDGenerator, initial []models.Item) *Store {
	if ids == nil {
		ids = NewIDGenerator()
	}
	s := &Store{ids: ids}
	s.items = s.adopt(initial)
	return s
}

// OnChange registers fn to run after each create, applied update and replace.
func (s *Store) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Create validates the candidate and appends it under a fresh id. On
// rejection the catalog is left exactly as it was.
func (s *Store) Create(in models.ItemInput) (models.Item, FieldErrors) {
	if errs := Validate(in); errs != nil {
		return models.Item{}, errs
	}

	var item models.Item
	s.commit(func() bool {
		id := s.ids.Next()
		for s.indexOf(id) >= 0 {
			id = s.ids.Next()
		}
		item = in.WithID(id)
		s.items = append(s.items, item)
		return true
	})
	return item, nil
}

// Update merges the provided patch fields into the item with the given id.
// An unknown id is ignored and reported through the boolean only.
func (s *Store) Update(id int64, patch models.ItemPatch) (models.Item, bool) {
	var item models.Item
	ok := s.commit(func() bool {
		idx := s.indexOf(id)
		if idx < 0 {
			return false
		}
		item = applyPatch(s.items[idx], patch)
		s.items[idx] = item
		return true
	})
	return item, ok
}

// ReplaceAll discards the catalog and installs items in the given order.
func (s *Store) ReplaceAll(items []models.Item) {
	s.commit(func() bool {
		s.items = s.adopt(items)
		return true
	})
}

// Snapshot returns a copy of the catalog in insertion order.
func (s *Store) Snapshot() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// NextID exposes the store's id source, used by importers for rows without a usable id.
func (s *Store) NextID() int64 {
	return s.ids.Next()
}

func (s *Store) adopt(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)
	for _, item := range out {
		s.ids.Observe(item.ID)
	}
	return out
}

func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyLocked() []models.Item {
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// commit applies mutate under the write lock. When it reports a change, the
// listeners get the new catalog before the next mutation may start. Listeners
// may read the store but must not mutate it.
func (s *Store) commit(mutate func() bool) bool {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()
	if !mutate() {
		s.mu.Unlock()
		return false
	}
	snapshot, listeners := s.copyLocked(), s.listeners
	s.mu.Unlock()

	notify(listeners, snapshot)
	return true
}

func notify(listeners []ChangeFunc, items []models.Item) {
	for _, fn := range listeners {
		fn(items)
	}
}

// applyPatch never touches the id. Stock values are clamped to zero; blank
// names and out-of-range enum values are dropped rather than stored.
func applyPatch(item models.Item, patch models.ItemPatch) models.Item {
	if patch.ItemName != nil && strings.TrimSpace(*patch.ItemName) != "" {
		item.ItemName = *patch.ItemName
	}
	if patch.Supplier != nil && strings.TrimSpace(*patch.Supplier) != "" {
		item.Supplier = *patch.Supplier
	}
	if patch.TargetStock != nil {
		item.TargetStock = clampStock(*patch.TargetStock)
	}
	if patch.CurrentStock != nil {
		item.CurrentStock = clampStock(*patch.CurrentStock)
	}
	if patch.VendorCycle != nil && patch.VendorCycle.Valid() {
		item.VendorCycle = *patch.VendorCycle
	}
	if patch.NextOrderDay != nil && patch.NextOrderDay.Valid() {
		item.NextOrderDay = *patch.NextOrderDay
	}
	return item
}

func clampStock(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
