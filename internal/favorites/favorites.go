package favorites

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/store"
	"go.uber.org/zap"
)

const (
	TopicAdded   = "favorites.added"
	TopicRemoved = "favorites.removed"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store keeps the favorites list, persisted as one JSON record under
// the fixed favorites key. Corruption resets to an empty list.
type Store struct {
	mu    sync.Mutex
	kv    store.KV
	bus   EventBus.Bus
	items []domain.FavoriteItem
	now   func() time.Time
}

func New(kv store.KV, bus EventBus.Bus) *Store {
	s := &Store{kv: kv, bus: bus, now: time.Now}
	data, found, err := kv.Get(store.BucketFavorites, store.KeyFavorites)
	if err != nil {
		zap.S().Warnf("favorites: read failed, starting empty: %v", err)
		return s
	}
	if found {
		if err := json.Unmarshal(data, &s.items); err != nil {
			zap.S().Warnf("favorites: stored record unparsable, resetting: %v", err)
			s.items = nil
		}
	}
	return s
}

// Toggle adds the product's reduced projection when absent and removes
// it when present. Returns true when the product ends up favorited.
func (s *Store) Toggle(p domain.Product) bool {
	if p.ID == 0 {
		return false
	}

	s.mu.Lock()
	var favorited bool
	removedAt := -1
	for i := range s.items {
		if s.items[i].ID == p.ID {
			removedAt = i
			break
		}
	}
	if removedAt >= 0 {
		s.items = append(s.items[:removedAt], s.items[removedAt+1:]...)
	} else {
		s.items = append(s.items, domain.NewFavoriteItem(p, s.now()))
		favorited = true
	}
	s.persist()
	s.mu.Unlock()

	if s.bus != nil {
		if favorited {
			s.bus.Publish(TopicAdded, p)
		} else {
			s.bus.Publish(TopicRemoved, p)
		}
	}
	return favorited
}

func (s *Store) IsFavorite(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

func (s *Store) All() []domain.FavoriteItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FavoriteItem(nil), s.items...)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		zap.S().Errorf("favorites: marshal failed: %v", err)
		return
	}
	if err := s.kv.Put(store.BucketFavorites, store.KeyFavorites, data); err != nil {
		zap.S().Warnf("favorites: write failed, keeping in-memory state: %v", err)
	}
}
