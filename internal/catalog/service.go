package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tkb-shop/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProductLister is the slice of the backend client the catalog needs.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Service caches the backend catalog and serves it grouped by resolved
// canonical labels. Concurrent refreshes collapse into one fetch; a
// failed refresh keeps the previous snapshot.
type Service struct {
	api ProductLister
	sfg singleflight.Group

	mu        sync.RWMutex
	products  []domain.Product
	grouped   map[string][]domain.Product
	fetchedAt time.Time
}

func NewService(api ProductLister) *Service {
	return &Service{api: api, grouped: make(map[string][]domain.Product)}
}

// Refresh fetches the catalog and rebuilds the group index.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.sfg.Do("refresh", func() (interface{}, error) {
		products, err := s.api.ListProducts(ctx)
		if err != nil {
			zap.S().Warnf("catalog: refresh failed, keeping previous snapshot: %v", err)
			return nil, err
		}

		grouped := make(map[string][]domain.Product)
		for _, p := range products {
			label := GroupLabel(p)
			grouped[label] = append(grouped[label], p)
		}

		s.mu.Lock()
		s.products = products
		s.grouped = grouped
		s.fetchedAt = time.Now()
		s.mu.Unlock()

		zap.S().Infof("catalog: refreshed, %d products in %d groups", len(products), len(grouped))
		return nil, nil
	})
	return err
}

// Products returns the cached catalog in backend order.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// Product looks a cached product up by id.
func (s *Service) Product(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// GroupLabels returns the non-empty group labels, taxonomy order
// first, unknown pass-through groups after, sorted.
func (s *Service) GroupLabels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var labels []string
	seen := make(map[string]bool)
	for _, g := range Groups {
		if len(s.grouped[g.Label]) > 0 {
			labels = append(labels, g.Label)
			seen[g.Label] = true
		}
	}
	var rest []string
	for label := range s.grouped {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}

// ByGroupLabel returns the products filed under a resolved group label.
func (s *Service) ByGroupLabel(label string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.grouped[label]...)
}

// ByGroupSlug resolves a URL slug and returns the matching products.
// Unknown slugs resolve to themselves and return an empty list rather
// than an error, so routes degrade instead of failing.
func (s *Service) ByGroupSlug(slug string) (string, []domain.Product) {
	label := GroupLabelFromSlug(slug)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return label, append([]domain.Product(nil), s.grouped[label]...)
}

// BySubcategorySlug narrows a group's products to one subcategory.
func (s *Service) BySubcategorySlug(groupSlug, subSlug string) (string, string, []domain.Product) {
	groupLabel, products := s.ByGroupSlug(groupSlug)
	subLabel := SubcategoryLabelFromSlug(subSlug)
	target := Slugify(subLabel)

	var filtered []domain.Product
	for _, p := range products {
		if Slugify(p.Subcategory) == target {
			filtered = append(filtered, p)
		}
	}
	return groupLabel, subLabel, filtered
}

// FetchedAt reports when the snapshot was last rebuilt, zero before
// the first successful refresh.
func (s *Service) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
