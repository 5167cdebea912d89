package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// NFD + strip combining marks, so "Chaussées" folds to "chaussees".
	foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	ordinalReplacer = strings.NewReplacer("ª", "", "º", "")
	nonSlugRunsRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize lower-cases the input, strips diacritics and ordinal
// indicators and trims surrounding space. It never fails: if the
// Unicode transform chain errors the lower-cased input is used as-is.
func Normalize(value string) string {
	s := strings.ToLower(value)
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	return strings.TrimSpace(ordinalReplacer.Replace(s))
}

// Slugify derives a URL-safe slug from a display label: "&" becomes
// "et", any remaining non [a-z0-9] run collapses into a single hyphen.
// Total and idempotent; Slugify("Voiles & Hijabs") == "voiles-et-hijabs".
func Slugify(value string) string {
	s := strings.ReplaceAll(Normalize(value), "&", "et")
	s = nonSlugRunsRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
