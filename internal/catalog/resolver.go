package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/tkb-shop/storefront/internal/domain"
)

// Group is one top-level entry of the fixed shop taxonomy.
type Group struct {
	Label         string   `json:"label"`
	Subcategories []string `json:"subcategories"`
}

// Groups is the closed two-level taxonomy the storefront's filtering
// and routing are built around. Static configuration, never derived at
// runtime.
var Groups = []Group{
	{Label: "Sacs", Subcategories: []string{}},
	{Label: "Chaussures", Subcategories: []string{"Femme", "Homme", "Bebe"}},
	{Label: "Accessoires", Subcategories: []string{"Colliers", "Bagues", "Bracelets"}},
	{Label: "Vetements", Subcategories: []string{"Robes", "Abayas", "Voiles & Hijabs"}},
}

// groupAliases catches the known misspellings and singular/plural
// variants seen in backend data. Checked before the substring fallback
// so a short alias can never be shadowed by containment in an
// unrelated longer category.
var groupAliases = map[string]string{
	"sac":         "Sacs",
	"sacs":        "Sacs",
	"chaussure":   "Chaussures",
	"chaussures":  "Chaussures",
	"chassure":    "Chaussures",
	"chassures":   "Chaussures",
	"accessoire":  "Accessoires",
	"accessoires": "Accessoires",
	"vetement":    "Vetements",
	"vetements":   "Vetements",
	"vatement":    "Vetements",
	"vatements":   "Vetements",
}

// singular URL slugs fold onto their plural canonical form.
var slugAliases = map[string]string{
	"sac":        "sacs",
	"chaussure":  "chaussures",
	"accessoire": "accessoires",
	"vetement":   "vetements",
}

var groupSlugLabels = map[string]string{
	"sacs":        "Sacs",
	"chaussures":  "Chaussures",
	"accessoires": "Accessoires",
	"vetements":   "Vetements",
}

// ResolveGroup maps a raw category string onto its canonical group
// label. Resolution order: alias table, then per-group equality or
// containment against the normalized label (with trailing "s"
// optionally stripped) and each subcategory. Unknown input passes
// through unchanged so unmatched categories still render, ungrouped.
func ResolveGroup(raw string) string {
	key := Normalize(raw)
	if label, ok := groupAliases[key]; ok {
		return label
	}

	for _, group := range Groups {
		base := Normalize(group.Label)
		keys := []string{base}
		if strings.HasSuffix(base, "s") {
			keys = append(keys, strings.TrimSuffix(base, "s"))
		}
		for _, k := range keys {
			if key == k || (k != "" && strings.Contains(key, k)) {
				return group.Label
			}
		}
		for _, sub := range group.Subcategories {
			subKey := Normalize(sub)
			if key == subKey || (subKey != "" && strings.Contains(key, subKey)) {
				return group.Label
			}
		}
	}

	return raw
}

// GroupLabel resolves the canonical group for a product, preferring its
// raw category-group field over the plain category.
func GroupLabel(p domain.Product) string {
	raw := p.CategoryGroup
	if raw == "" {
		raw = p.Category
	}
	return ResolveGroup(raw)
}

// NormalizeCategorySlug folds a singular category slug onto its plural
// canonical form; anything else passes through.
func NormalizeCategorySlug(slug string) string {
	if canonical, ok := slugAliases[slug]; ok {
		return canonical
	}
	return slug
}

// GroupLabelFromSlug is the inverse mapping used by routing: URL slug
// to group label. Unmatched slugs pass through unchanged so routes
// never dead-end.
func GroupLabelFromSlug(slug string) string {
	normalized := NormalizeCategorySlug(Slugify(slug))
	if label, ok := groupSlugLabels[normalized]; ok {
		return label
	}
	return slug
}

// SubcategoryLabelFromSlug maps a URL slug back onto a subcategory
// label by slugifying every known subcategory; pass-through otherwise.
func SubcategoryLabelFromSlug(slug string) string {
	target := Slugify(slug)
	for _, group := range Groups {
		for _, sub := range group.Subcategories {
			if Slugify(sub) == target {
				return sub
			}
		}
	}
	return slug
}

// Subcategories returns the subcategory labels owned by a canonical
// group label, nil when the group is unknown or owns none.
func Subcategories(groupLabel string) []string {
	for _, group := range Groups {
		if group.Label == groupLabel {
			return group.Subcategories
		}
	}
	return nil
}

// DisplayCategory picks the most specific category string available
// for rendering.
func DisplayCategory(p domain.Product) string {
	switch {
	case p.Subcategory != "":
		return p.Subcategory
	case p.Category != "":
		return p.Category
	default:
		return p.CategoryGroup
	}
}

// IsPromo reports whether the product currently sells under its old
// price.
func IsPromo(p domain.Product) bool {
	return p.OldPrice > 0 && p.Price < p.OldPrice
}

// DiscountPercent returns the rounded promo percentage, 0 when the
// product is not discounted.
func DiscountPercent(p domain.Product) int {
	if p.OldPrice <= 0 || p.Price >= p.OldPrice {
		return 0
	}
	percent := int(math.Round((p.OldPrice - p.Price) / p.OldPrice * 100))
	if percent < 0 {
		return 0
	}
	return percent
}

// IsNew reports whether the product was created within the last `days`
// days.
func IsNew(p domain.Product, days int, now time.Time) bool {
	if p.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(p.CreatedAt) <= time.Duration(days)*24*time.Hour
}
