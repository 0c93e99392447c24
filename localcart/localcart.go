// Package localcart is the anonymous shopper's cart: a key-counted set
// of product lines kept client-side until login, when it is merged into
// the server cart and cleared.
package localcart

import (
	"encoding/json"
	"log"
	"sync"
)

// StorageKey is the single key the serialized cart lives under.
const StorageKey = "cart"

// Item is one product-quantity pair. The wire shape matches the server
// merge endpoint.
type Item struct {
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`
}

// Store is the local cart. Every mutation persists the full resulting
// set immediately; a persistence failure is logged and the in-memory
// state is kept, so the current session keeps working even when the
// write does not survive a restart.
type Store struct {
	mu      sync.Mutex
	storage Storage
	items   []Item
}

// NewStore loads any previously persisted cart from storage. A corrupt
// or unreadable payload starts the cart empty rather than failing.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	raw, err := storage.Get(StorageKey)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("localcart: failed to load cart: %v", err)
		}
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.items); err != nil {
		log.Printf("localcart: discarding corrupt cart payload: %v", err)
		s.items = nil
	}
	return s
}

// Add increments the line for productID by qty, creating it if absent.
// Non-positive qty is ignored.
func (s *Store) Add(productID uint, qty int) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Qty += qty
			s.persist()
			return
		}
	}
	s.items = append(s.items, Item{ProductID: productID, Qty: qty})
	s.persist()
}

// Subtract decrements the line for productID by qty and removes the
// line entirely once the quantity reaches zero or below. Absent lines
// and non-positive qty are no-ops.
func (s *Store) Subtract(productID uint, qty int) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		s.items[i].Qty -= qty
		if s.items[i].Qty <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		s.persist()
		return
	}
}

// Items returns a copy of the current lines. Order is not significant.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes all lines and the persisted payload.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	if err := s.storage.Delete(StorageKey); err != nil {
		log.Printf("localcart: failed to clear persisted cart: %v", err)
	}
}

// persist writes the full item set under StorageKey. Best-effort: the
// caller's mutation stands even when the write fails.
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("localcart: failed to encode cart: %v", err)
		return
	}
	if err := s.storage.Set(StorageKey, string(data)); err != nil {
		log.Printf("localcart: failed to persist cart: %v", err)
	}
}
