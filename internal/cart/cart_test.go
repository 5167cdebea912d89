package cart

import (
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/store"
)

var (
	robe = domain.Product{ID: 1, Name: "Robe soie", Price: 10000, Category: "robes"}
	sac  = domain.Product{ID: 2, Name: "Sac cuir", Price: 5000, Category: "sacs"}
)

func newTestStore(t *testing.T) (*Store, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	return New(kv, EventBus.New()), kv
}

func TestAddMergesSameVariant(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(robe, 2, "M", "")
	s.Add(robe, 3, "M", "")

	lines := s.Lines()
	require.Len(t, lines, 1, "same variant key must merge, never duplicate")
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, s.Count())
}

func TestAddDistinctVariantsAppend(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(robe, 1, "M", "")
	s.Add(robe, 1, "L", "")
	s.Add(robe, 1, "M", "#fff")

	assert.Len(t, s.Lines(), 3)
	assert.Equal(t, 3, s.Count())
}

func TestTotals(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(robe, 2, "", "") // 10000 × 2
	s.Add(sac, 1, "", "")  // 5000 × 1

	assert.Equal(t, float64(25000), s.Total())
	assert.Equal(t, 3, s.Count())

	s.UpdateQuantity(sac.ID, "", 2, "")
	assert.Equal(t, float64(35000), s.Total())
	assert.Equal(t, 5, s.Count())
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(robe, 3, "M", "")

	s.UpdateQuantity(robe.ID, "M", -100, "")

	lines := s.Lines()
	require.Len(t, lines, 1, "floor must not remove the line")
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestUpdateQuantityIgnoresOtherVariants(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(robe, 2, "M", "")
	s.Add(robe, 2, "L", "")

	s.UpdateQuantity(robe.ID, "M", 1, "")

	for _, l := range s.Lines() {
		switch l.SelectedSize {
		case "M":
			assert.Equal(t, 3, l.Quantity)
		case "L":
			assert.Equal(t, 2, l.Quantity)
		}
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(robe, 1, "M", "")
	s.Add(sac, 1, "", "")

	s.Remove(robe.ID, "M", "")
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, sac.ID, s.Lines()[0].ProductID)

	// absent variant key is a no-op
	s.Remove(99, "", "")
	s.Remove(robe.ID, "XL", "")
	assert.Len(t, s.Lines(), 1)
}

func TestClearRemovesStoredRecord(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add(robe, 1, "", "")

	_, found, err := kv.Get(store.BucketCart, store.KeyCart)
	require.NoError(t, err)
	require.True(t, found)

	s.Clear()
	assert.Empty(t, s.Lines())
	_, found, err = kv.Get(store.BucketCart, store.KeyCart)
	require.NoError(t, err)
	assert.False(t, found, "clear must delete the persisted record entirely")
}

func TestPersistenceAcrossRestart(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, nil)
	s.Add(robe, 2, "M", "#000")

	reloaded := New(kv, nil)
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "M", lines[0].SelectedSize)
	assert.Equal(t, "#000", lines[0].SelectedColor)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCorruptStoredCartYieldsEmpty(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Put(store.BucketCart, store.KeyCart, []byte("{not json")))

	s := New(kv, nil)
	assert.Empty(t, s.Lines())
	assert.Zero(t, s.Total())
}

func TestSignals(t *testing.T) {
	kv := store.NewMemory()
	bus := EventBus.New()

	var mu sync.Mutex
	var added, removed []domain.CartLine
	require.NoError(t, bus.Subscribe(TopicAdded, func(l domain.CartLine) {
		mu.Lock()
		added = append(added, l)
		mu.Unlock()
	}))
	require.NoError(t, bus.Subscribe(TopicRemoved, func(l domain.CartLine) {
		mu.Lock()
		removed = append(removed, l)
		mu.Unlock()
	}))

	s := New(kv, bus)
	s.Add(robe, 1, "M", "")
	s.Remove(robe.ID, "M", "")
	s.Remove(robe.ID, "M", "") // no-op fires nothing

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, added, 1)
	assert.Equal(t, robe.ID, added[0].ProductID)
	require.Len(t, removed, 1)
}
