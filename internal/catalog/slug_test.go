package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ampersand becomes et", "Voiles & Hijabs", "voiles-et-hijabs"},
		{"diacritics stripped", "Écharpes d'été", "echarpes-d-ete"},
		{"spaces collapse", "  Robes   Longues ", "robes-longues"},
		{"punctuation folds to hyphen", "Sacs, pochettes & co.", "sacs-pochettes-et-co"},
		{"already a slug", "voiles-et-hijabs", "voiles-et-hijabs"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Voiles & Hijabs", "CHAUSSURES", "Bébé", "l'Été 2024", "", "a--b",
		"ªº", "Sacs à main",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slugify not idempotent for %q", in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "chaussures", Normalize("  CHAUSSURES "))
	assert.Equal(t, "bebe", Normalize("Bébé"))
	assert.Equal(t, "n1", Normalize("Nº1"))
	assert.Equal(t, "", Normalize(""))
}
