package gwgp

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Report describes how the rows of one document were processed
type Report struct {
	Rows             int // rows matching the row pattern
	Indexed          int // rows stored in the snapshot, duplicates included
	Duplicates       int // rows that replaced an earlier row of the same city
	SkippedNoCity    int // rows without a city cell
	SkippedPrices    int // rows with less than three price cells
	SkippedMalformed int // rows with a price cell missing its value or change
}

func (r Report) Skipped() int {
	return r.SkippedNoCity + r.SkippedPrices + r.SkippedMalformed
}

type Extractor struct {
	selector Selector
	patterns Patterns
}

func NewExtractor(selector Selector, patterns Patterns) *Extractor {
	return &Extractor{
		selector: selector,
		patterns: patterns,
	}
}

// Extract builds a snapshot from the parsed page.
// Rows that cannot be fully read are left out, Extract itself never fails.
func (e *Extractor) Extract(root *html.Node) (*Snapshot, Report) {
	report := Report{}
	prices := map[string]OilPrice{}
	dateInfo := e.extractDate(root)

	rows, err := e.selector.SelectAll(root, e.patterns.Row)
	if err != nil {
		return NewSnapshot(dateInfo, prices), report
	}

	for _, row := range rows {
		report.Rows++

		city, ok := e.extractCity(row)
		if !ok {
			report.SkippedNoCity++
			continue
		}

		price, err := e.extractPrices(row)
		if err != nil {
			var malformed *MalformedCellError
			if errors.As(err, &malformed) {
				report.SkippedMalformed++
			} else {
				report.SkippedPrices++
			}
			continue
		}

		if _, exists := prices[city]; exists {
			report.Duplicates++
		}
		prices[city] = price // later rows win
		report.Indexed++
	}

	return NewSnapshot(dateInfo, prices), report
}

func (e *Extractor) extractDate(root *html.Node) string {
	els, err := e.selector.SelectAll(root, e.patterns.Date)
	if err != nil || len(els) == 0 {
		return DateFallback
	}

	return e.selector.InnerText(els[0])
}

func (e *Extractor) extractCity(row *html.Node) (string, bool) {
	cells, err := e.selector.SelectAll(row, e.patterns.CityName)
	if err != nil || len(cells) == 0 {
		return "", false
	}

	return cityKey(e.selector.InnerText(cells[0])), true
}

// cityKey removes the footnote glyph the page appends to every city name
func cityKey(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	_, size := utf8.DecodeLastRuneInString(text)
	return text[:len(text)-size]
}

var errNotEnoughPrices = errors.New("row has less than three price cells")

func (e *Extractor) extractPrices(row *html.Node) (OilPrice, error) {
	price := OilPrice{}

	cells, err := e.selector.SelectAll(row, e.patterns.Price)
	if err != nil {
		return price, err
	}
	if len(cells) < 3 {
		return price, errNotEnoughPrices
	}

	fields := []*Price{&price.Regular, &price.Premium, &price.Diesel}
	for i, field := range fields {
		p, err := ParseCell(e.selector.TextSegments(cells[i]))
		if err != nil {
			return OilPrice{}, err
		}
		*field = p
	}

	return price, nil
}
