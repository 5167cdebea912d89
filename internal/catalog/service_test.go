package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkb-shop/storefront/internal/domain"
)

type mockLister struct {
	products []domain.Product
	err      error
	calls    int
}

func (m *mockLister) ListProducts(context.Context) ([]domain.Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func TestServiceRefreshGroups(t *testing.T) {
	lister := &mockLister{products: []domain.Product{
		{ID: 1, Name: "Sac cuir", Category: "sacs"},
		{ID: 2, Name: "Escarpins", Category: "chassure"},
		{ID: 3, Name: "Robe soie", Category: "robes", CategoryGroup: "vetements"},
		{ID: 4, Name: "Parfum oud", Category: "Parfums"},
	}}
	svc := NewService(lister)
	require.NoError(t, svc.Refresh(context.Background()))

	label, products := svc.ByGroupSlug("sacs")
	assert.Equal(t, "Sacs", label)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)

	label, products = svc.ByGroupSlug("chaussure") // singular slug
	assert.Equal(t, "Chaussures", label)
	assert.Len(t, products, 1)

	// unknown categories stay addressable under their raw label
	assert.Equal(t, []string{"Sacs", "Chaussures", "Vetements", "Parfums"}, svc.GroupLabels())

	p, found := svc.Product(3)
	require.True(t, found)
	assert.Equal(t, "Robe soie", p.Name)
	_, found = svc.Product(99)
	assert.False(t, found)
}

func TestServiceRefreshFailureKeepsSnapshot(t *testing.T) {
	lister := &mockLister{products: []domain.Product{{ID: 1, Category: "sacs"}}}
	svc := NewService(lister)
	require.NoError(t, svc.Refresh(context.Background()))

	lister.err = errors.New("backend down")
	err := svc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Len(t, svc.Products(), 1, "previous snapshot must survive a failed refresh")
}

func TestServiceBySubcategorySlug(t *testing.T) {
	lister := &mockLister{products: []domain.Product{
		{ID: 1, Category: "vetements", Subcategory: "Robes"},
		{ID: 2, Category: "vetements", Subcategory: "Voiles & Hijabs"},
	}}
	svc := NewService(lister)
	require.NoError(t, svc.Refresh(context.Background()))

	group, sub, products := svc.BySubcategorySlug("vetements", "voiles-et-hijabs")
	assert.Equal(t, "Vetements", group)
	assert.Equal(t, "Voiles & Hijabs", sub)
	require.Len(t, products, 1)
	assert.Equal(t, int64(2), products[0].ID)
}
