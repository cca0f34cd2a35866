package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents removes combining marks: "Búfalo" -> "Bufalo", "Carnes Frías" -> "Carnes Frias".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey lowercases, folds accents and collapses whitespace.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(FoldAccents(s))), " ")
}

// Slugify converts text to a lowercase ASCII slug: "Costilla Baby-Back 250 grs" -> "costilla-baby-back-250-grs".
// Runs of non-alphanumerics collapse into a single dash, so a slug never contains "--".
func Slugify(s string) string {
	folded := strings.ToLower(FoldAccents(s))

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CatalogItemID derives the stable catalog id for a (category, product name) pair.
// The "--" separator cannot appear inside a slug, so distinct slug pairs never collide.
func CatalogItemID(category, productName string) string {
	return Slugify(category) + "--" + Slugify(productName)
}
