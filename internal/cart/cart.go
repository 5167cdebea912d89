package cart

import (
	"sync"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/store"
	"go.uber.org/zap"
)

// Signals published on cart mutations; the notification feed turns
// them into the user-facing toasts.
const (
	TopicAdded   = "cart.added"
	TopicRemoved = "cart.removed"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store holds the authoritative cart line list. Every mutation is
// mirrored synchronously to the durable KV under the fixed cart key;
// storage failures degrade to in-memory state and are only logged.
type Store struct {
	mu    sync.Mutex
	kv    store.KV
	bus   EventBus.Bus
	lines []domain.CartLine
}

// New loads the persisted cart. A missing or unparsable record yields
// an empty cart, never an error.
func New(kv store.KV, bus EventBus.Bus) *Store {
	s := &Store{kv: kv, bus: bus}
	data, found, err := kv.Get(store.BucketCart, store.KeyCart)
	if err != nil {
		zap.S().Warnf("cart: read failed, starting empty: %v", err)
		return s
	}
	if found {
		if err := json.Unmarshal(data, &s.lines); err != nil {
			zap.S().Warnf("cart: stored record unparsable, resetting: %v", err)
			s.lines = nil
		}
	}
	return s
}

// Add merges the quantity into an existing line of the same variant
// key, or appends a new line. Exactly one line exists per variant key.
func (s *Store) Add(p domain.Product, quantity int, size, color string) domain.CartLine {
	s.mu.Lock()
	line := domain.NewCartLine(p, quantity, size, color)
	key := line.Key()
	merged := false
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity += quantity
			line = s.lines[i]
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, line)
	}
	s.persist()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(TopicAdded, line)
	}
	return line
}

// UpdateQuantity adds delta to the matching line's quantity, flooring
// at 1. Quantity never reaches zero here; removal is explicit.
func (s *Store) UpdateQuantity(productID int64, size string, delta int, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.VariantKey{ProductID: productID, Size: size, Color: color}
	for i := range s.lines {
		if s.lines[i].Key() != key {
			continue
		}
		qty := s.lines[i].Quantity + delta
		if qty < 1 {
			qty = 1
		}
		s.lines[i].Quantity = qty
		s.persist()
		return
	}
}

// Remove deletes the matching line. An absent variant key is a no-op
// and fires no signal.
func (s *Store) Remove(productID int64, size, color string) {
	s.mu.Lock()
	key := domain.VariantKey{ProductID: productID, Size: size, Color: color}
	var removed *domain.CartLine
	for i := range s.lines {
		if s.lines[i].Key() == key {
			line := s.lines[i]
			removed = &line
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			break
		}
	}
	s.mu.Unlock()

	if removed != nil && s.bus != nil {
		s.bus.Publish(TopicRemoved, *removed)
	}
}

// Clear empties the cart and removes the persisted record entirely.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	if err := s.kv.Delete(store.BucketCart, store.KeyCart); err != nil {
		zap.S().Warnf("cart: clear failed: %v", err)
	}
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// Total is Σ line.price × line.quantity.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

// Count is Σ line.quantity.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// persist mirrors the full line list to storage. Callers hold the lock.
func (s *Store) persist() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		zap.S().Errorf("cart: marshal failed: %v", err)
		return
	}
	if err := s.kv.Put(store.BucketCart, store.KeyCart, data); err != nil {
		zap.S().Warnf("cart: write failed, keeping in-memory state: %v", err)
	}
}
