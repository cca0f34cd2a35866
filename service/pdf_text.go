package service

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor turns PDF bytes into newline-delimited plain text
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFReader extracts text with ledongthuc/pdf, rebuilding visual lines
// from positioned text fragments.
type PDFReader struct {
	rowTolerance float64 // max Y distance for fragments on the same line
}

// NewPDFReader creates a new PDFReader
func NewPDFReader() *PDFReader {
	return &PDFReader{rowTolerance: 2.0}
}

var _ PDFTextExtractor = (*PDFReader)(nil)

// ExtractText returns the document text, pages in order, one visual row per line
func (p *PDFReader) ExtractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	if r.NumPage() == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		for _, line := range assembleRows(page.Content().Text, p.rowTolerance) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

type textRow struct {
	y     float64
	texts []pdf.Text
}

// assembleRows groups fragments by baseline, top of the page first, and joins
// each row left to right. A space is inserted only where fragments are visibly apart.
func assembleRows(texts []pdf.Text, tolerance float64) []string {
	var rows []*textRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" && t.S != " " {
			continue
		}
		placed := false
		for _, row := range rows {
			if math.Abs(row.y-t.Y) < tolerance {
				row.texts = append(row.texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, &textRow{y: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF coordinates grow upwards
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.texts, func(i, j int) bool { return row.texts[i].X < row.texts[j].X })

		var b strings.Builder
		var prevEnd float64
		for i, t := range row.texts {
			if i > 0 {
				gap := t.X - prevEnd
				if gap > math.Max(t.FontSize, 1)*0.2 && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " ") {
					b.WriteByte(' ')
				}
			}
			b.WriteString(t.S)
			prevEnd = t.X + t.W
		}
		if line := strings.Join(strings.Fields(b.String()), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
