package pricelist

import (
	"regexp"
	"sort"
	"strings"

	"carnes-boutique/models"
	"carnes-boutique/utils"
)

// DefaultCategories is the supplier's category vocabulary, as printed on the list.
var DefaultCategories = []string{
	"Wagyu",
	"Prime",
	"Choice",
	"Angus",
	"Res",
	"Cerdo",
	"Pollo",
	"Pavo",
	"Cordero",
	"Borrego",
	"Pescados",
	"Mariscos",
	"Embutidos",
	"Carnes Frías",
	"Búfalo",
	"Lácteos",
}

// DefaultDenylist holds header/footer fragments that never describe a product.
var DefaultDenylist = []string{
	"lista de precios",
	"precios sujetos",
	"sujeto a cambio",
	"página",
	"pagina",
	"vigencia",
	"whatsapp",
	"tel.",
	"www.",
	"iva incluido",
	"cotización",
	"pedidos",
}

// DefaultMinPrice rejects prices at or below this value as column-parsing artifacts.
const DefaultMinPrice = 5.0

var (
	// $185, $ 1,234.56, $1.234,56, $ 1 450,00 (space, no-break or narrow no-break grouping).
	// Space grouping after three leading digits needs decimals, so "$185 250 grs" stays $185.
	currencyRegex = regexp.MustCompile(
		`\$[\s\x{00A0}\x{202F}]*(?:` +
			`\d{1,2}(?:[ \x{00A0}\x{202F}]\d{3})+(?:[.,]\d+)?\b|` +
			`\d{3}(?:[ \x{00A0}\x{202F}]\d{3})+[.,]\d+\b|` +
			`\d[\d.,]*)`)

	weightUnitRegex = regexp.MustCompile(`^(precio\s+)?((por|x|/)\s*)?(kilo|kilos|kg|kgs)$`)
	pieceUnitRegex  = regexp.MustCompile(`^(precio\s+)?((por|x|/)\s*)?(pieza|piezas|pza|pzas|pz|unidad|unidades)$`)
)

type category struct {
	name  string   // display name
	words []string // normalized words, e.g. ["carnes", "frias"]
}

func buildCategories(names []string) []category {
	cats := make([]category, 0, len(names))
	for _, n := range names {
		words := strings.Fields(utils.NormalizeKey(n))
		if len(words) == 0 {
			continue
		}
		cats = append(cats, category{name: n, words: words})
	}
	// longest names first so "Carnes Frías" wins over a shorter prefix
	sort.SliceStable(cats, func(i, j int) bool {
		return len(cats[i].words) > len(cats[j].words)
	})
	return cats
}

// unitHeader reports whether a line is a unit-column header and which unit it announces.
func unitHeader(line string) (models.Unit, bool) {
	key := utils.NormalizeKey(strings.NewReplacer("$", "", ":", "", ".", " ").Replace(line))
	switch {
	case weightUnitRegex.MatchString(key):
		return models.UnitWeight, true
	case pieceUnitRegex.MatchString(key):
		return models.UnitPiece, true
	}
	return "", false
}
