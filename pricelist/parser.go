package pricelist

import (
	"strings"

	"carnes-boutique/models"
	"carnes-boutique/utils"
)

// Parser turns the plain text of a supplier price list into priced records.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	categories []category
	denylist   []string
	minPrice   float64
}

// Option customizes a Parser
type Option func(*Parser)

// WithCategories replaces the category vocabulary
func WithCategories(names ...string) Option {
	return func(p *Parser) { p.categories = buildCategories(names) }
}

// WithDenylist replaces the noise denylist
func WithDenylist(fragments ...string) Option {
	return func(p *Parser) {
		p.denylist = make([]string, 0, len(fragments))
		for _, f := range fragments {
			p.denylist = append(p.denylist, strings.ToLower(f))
		}
	}
}

// WithMinPrice changes the mis-parse threshold
func WithMinPrice(v float64) Option {
	return func(p *Parser) { p.minPrice = v }
}

// NewParser creates a parser with the default vocabulary
func NewParser(opts ...Option) *Parser {
	p := &Parser{minPrice: DefaultMinPrice}
	WithCategories(DefaultCategories...)(p)
	WithDenylist(DefaultDenylist...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one parse run
type Result struct {
	Records        []models.RawPriceRecord
	Unpriced       int // records dropped because no price was ever found
	RejectedPrices int // price tokens at or below the minimum
	SkippedLines   int // denylisted lines
}

type entry struct {
	rec    models.RawPriceRecord
	priced bool
}

// Parse parses text with the default vocabulary
func Parse(text string) []models.RawPriceRecord {
	return NewParser().Parse(text)
}

// Parse returns the fully priced records found in text, in document order.
// It never fails; unusable lines and unpriced records are dropped.
func (p *Parser) Parse(text string) []models.RawPriceRecord {
	return p.Run(text).Records
}

// Run parses text and reports what was dropped along the way
func (p *Parser) Run(text string) Result {
	var (
		res             Result
		entries         []*entry
		pending         []*entry // LIFO: last created, first filled
		currentUnit     = models.UnitWeight
		currentCategory string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if p.isNoise(line) {
			res.SkippedLines++
			continue
		}
		if unit, ok := unitHeader(line); ok {
			currentUnit = unit
			continue
		}

		prices, rejected := p.prices(line)
		res.RejectedPrices += rejected

		if cat, rest, ok := p.matchCategory(line); ok {
			currentCategory = cat
			name := cleanProductName(rest)
			if name == "" {
				// category heading
				continue
			}
			e := &entry{rec: models.RawPriceRecord{
				Category:    cat,
				ProductName: name,
				Unit:        currentUnit,
			}}
			entries = append(entries, e)
			if len(prices) > 0 {
				e.rec.WholesalePrice = prices[0]
				e.priced = true
			} else {
				pending = append(pending, e)
			}
			continue
		}

		if currentCategory == "" {
			continue
		}
		for _, price := range prices {
			if len(pending) == 0 {
				break
			}
			e := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			e.rec.WholesalePrice = price
			e.priced = true
		}
	}

	res.Records = make([]models.RawPriceRecord, 0, len(entries))
	for _, e := range entries {
		if e.priced {
			res.Records = append(res.Records, e.rec)
		}
	}
	res.Unpriced = len(pending)
	return res
}

func (p *Parser) isNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, frag := range p.denylist {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// matchCategory checks whether line starts with a known category, compared
// case- and accent-insensitively word by word. rest is the original remainder.
func (p *Parser) matchCategory(line string) (name, rest string, ok bool) {
	fields := strings.Fields(line)
	for _, c := range p.categories {
		if len(fields) < len(c.words) {
			continue
		}
		match := true
		for i, w := range c.words {
			if utils.NormalizeKey(fields[i]) != w {
				match = false
				break
			}
		}
		if match {
			return c.name, strings.Join(fields[len(c.words):], " "), true
		}
	}
	return "", "", false
}

// prices returns the valid currency amounts on a line in order of appearance
func (p *Parser) prices(line string) (valid []float64, rejected int) {
	for _, tok := range currencyRegex.FindAllString(line, -1) {
		v, ok := utils.ParseNumber(tok)
		if !ok {
			continue
		}
		if v <= p.minPrice {
			rejected++
			continue
		}
		valid = append(valid, v)
	}
	return valid, rejected
}

func cleanProductName(rest string) string {
	name := currencyRegex.ReplaceAllString(rest, " ")
	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, "*-:·.$ ")
}
