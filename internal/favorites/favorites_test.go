package favorites

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/store"
)

var escarpins = domain.Product{
	ID:            7,
	Name:          "Escarpins nude",
	Price:         24000,
	OldPrice:      30000,
	Image:         "https://cdn.example/escarpins.jpg",
	Category:      "chaussures",
	CategoryGroup: "Chaussures",
	Subcategory:   "Femme",
	Sizes:         []string{"37", "38"},
	CreatedAt:     time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
}

func TestToggle(t *testing.T) {
	s := New(store.NewMemory(), nil)

	assert.True(t, s.Toggle(escarpins))
	assert.True(t, s.IsFavorite(escarpins.ID))
	assert.Equal(t, 1, s.Count())

	assert.False(t, s.Toggle(escarpins))
	assert.False(t, s.IsFavorite(escarpins.ID))
	assert.Zero(t, s.Count())
}

func TestToggleIgnoresZeroID(t *testing.T) {
	s := New(store.NewMemory(), nil)
	assert.False(t, s.Toggle(domain.Product{}))
	assert.Zero(t, s.Count())
}

func TestStoredProjection(t *testing.T) {
	s := New(store.NewMemory(), nil)
	s.now = func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }

	s.Toggle(escarpins)
	items := s.All()
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, escarpins.ID, it.ID)
	assert.Equal(t, escarpins.Name, it.Name)
	assert.Equal(t, escarpins.Image, it.Image)
	assert.Equal(t, escarpins.OldPrice, it.OldPrice)
	assert.Equal(t, "Femme", it.Subcategory)
	assert.Equal(t, time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), it.AddedAt)
}

func TestPersistenceAndCorruptionReset(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, nil)
	s.Toggle(escarpins)

	reloaded := New(kv, nil)
	assert.Equal(t, 1, reloaded.Count())

	require.NoError(t, kv.Put(store.BucketFavorites, store.KeyFavorites, []byte("][")))
	broken := New(kv, nil)
	assert.Zero(t, broken.Count())
}
