package cart

import "sync"

// Store is the single owner of the cart. Mutations are applied atomically
// under a mutex and subscribers observe the post-mutation state.
type Store struct {
	mu    sync.Mutex
	items []LineItem
	subs  []func([]LineItem)
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to run synchronously after every mutation with a
// copy of the post-mutation items. Register subscribers before handing the
// store to mutating code.
func (s *Store) Subscribe(fn func([]LineItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add appends item unless an item with the same (provider, service name)
// key is already present, in which case it is a silent no-op: first write
// wins. Callers that want to surface duplicates check Contains first.
func (s *Store) Add(item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Key() == item.Key() {
			return
		}
	}
	s.items = append(s.items, item)
	s.notify()
}

// Remove drops every item selected by the given matcher and reports how
// many were removed.
func (s *Store) Remove(by RemoveBy) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !by.matches(item) {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	if removed > 0 {
		s.notify()
	}
	return removed
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.notify()
}

// ReplaceAll sets the items verbatim. It performs no de-duplication: this
// is the hydration path and trusts the stored snapshot.
func (s *Store) ReplaceAll(items []LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]LineItem(nil), items...)
	s.notify()
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LineItem(nil), s.items...)
}

// Len returns the number of line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Contains reports whether an item with the given key is in the cart.
func (s *Store) Contains(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Key() == key {
			return true
		}
	}
	return false
}

// Total returns the sum of line item costs.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Cost
	}
	return total
}

// notify runs subscribers with a snapshot. Called with the mutex held, so
// subscribers must not call back into the store.
func (s *Store) notify() {
	snapshot := append([]LineItem(nil), s.items...)
	for _, fn := range s.subs {
		fn(snapshot)
	}
}
