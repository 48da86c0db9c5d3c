package gwgp

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selectors = []struct {
	name     string
	selector Selector
}{
	{name: "xpath", selector: &XPathSelector{}},
	{name: "css", selector: &CSSSelector{}},
}

// page wraps rows into a document similar to the prediction page
func page(date string, rows ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if date != "" {
		b.WriteString(`<div class="price-date">` + date + `</div>`)
	}
	b.WriteString(`<table class="gwgp-table"><tbody>`)
	for _, row := range rows {
		b.WriteString(row)
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

func row(city string, cells ...string) string {
	var b strings.Builder
	b.WriteString(`<tr class="city">`)
	if city != "" {
		b.WriteString(`<td class="gwgp-cityname">` + city + `</td>`)
	}
	for _, cell := range cells {
		b.WriteString(cell)
	}
	b.WriteString("</tr>")
	return b.String()
}

func cell(value, change string) string {
	return `<td class="gwgp-price">` + value + `<span class="gwgp-up">` + change + `</span></td>`
}

func extract(t *testing.T, selector Selector, doc string) (*Snapshot, Report) {
	t.Helper()

	root, err := Parse([]byte(doc))
	require.NoError(t, err)

	return NewExtractor(selector, DefaultPatterns).Extract(root)
}

func TestExtractor_Toronto(t *testing.T) {
	doc := page("Prices for Friday",
		row("Toronto†", cell("1.53", "+0.02"), cell("1.61", "+0.01"), cell("1.45", "-0.03")),
	)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, doc)

			assert.Equal(t, "Prices for Friday", snapshot.DateInfo())
			assert.Equal(t, 1, snapshot.Len())
			assert.Equal(t, 1, report.Indexed)

			price, ok := snapshot.Lookup("Toronto")
			require.True(t, ok)
			assert.Equal(t, OilPrice{
				Regular: Price{Value: "1.53", Change: "+0.02"},
				Premium: Price{Value: "1.61", Change: "+0.01"},
				Diesel:  Price{Value: "1.45", Change: "-0.03"},
			}, price)

			_, ok = snapshot.Lookup("Toronto†")
			assert.False(t, ok)
		})
	}
}

func TestExtractor_Fixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/predictions.html")
	require.NoError(t, err)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, string(raw))

			assert.Equal(t, "Prices for Friday, January 19, 2024", snapshot.DateInfo())
			assert.Equal(t, []string{"Montréal", "Ottawa", "Toronto"}, snapshot.Cities())
			assert.Equal(t, Report{
				Rows:             6,
				Indexed:          3,
				SkippedNoCity:    1,
				SkippedPrices:    1,
				SkippedMalformed: 1,
			}, report)

			ottawa, ok := snapshot.Lookup("Ottawa")
			require.True(t, ok)
			assert.Equal(t, NewPrice("1.49", "n/c"), ottawa.Regular)
			assert.Equal(t, NewPrice("1.58", "+0.01"), ottawa.Diesel)

			_, ok = snapshot.Lookup("Calgary")
			assert.False(t, ok, "row with two price cells must be skipped")
			_, ok = snapshot.Lookup("Edmonton")
			assert.False(t, ok, "row with a malformed price cell must be skipped")
		})
	}
}

func TestExtractor_TrailingCharacter(t *testing.T) {
	prices := []string{cell("1.31", "-0.01"), cell("1.57", "-0.01"), cell("1.50", "n/c")}
	tests := []struct {
		city string
		key  string
	}{
		{city: "Calgary*", key: "Calgary"},
		{city: "  Calgary*  ", key: "Calgary"},
		{city: "Toronto†", key: "Toronto"},
		{city: "Montréal*", key: "Montréal"},
		{city: "Regina", key: "Regin"},
		{city: "*", key: ""},
		{city: "   ", key: ""},
	}

	for _, sel := range selectors {
		for _, tt := range tests {
			t.Run(sel.name+"/"+tt.city, func(t *testing.T) {
				snapshot, _ := extract(t, sel.selector, page("", row(tt.city, prices...)))

				assert.Equal(t, []string{tt.key}, snapshot.Cities())
			})
		}
	}
}

func TestExtractor_MissingCity(t *testing.T) {
	doc := page("",
		row("", cell("1.53", "+0.02"), cell("1.61", "+0.01"), cell("1.45", "-0.03")),
	)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, doc)

			assert.Equal(t, 0, snapshot.Len())
			assert.Equal(t, 1, report.SkippedNoCity)
		})
	}
}

func TestExtractor_InsufficientPrices(t *testing.T) {
	cells := []string{cell("1.53", "+0.02"), cell("1.61", "+0.01"), cell("1.45", "-0.03")}

	for _, sel := range selectors {
		for n := 0; n < 3; n++ {
			t.Run(fmt.Sprintf("%s/%d_cells", sel.name, n), func(t *testing.T) {
				snapshot, report := extract(t, sel.selector, page("", row("Halifax*", cells[:n]...)))

				assert.Equal(t, 0, snapshot.Len())
				assert.Equal(t, 1, report.SkippedPrices)
				_, ok := snapshot.Lookup("Halifax")
				assert.False(t, ok)
			})
		}
	}
}

func TestExtractor_MalformedCell(t *testing.T) {
	doc := page("",
		row("Toronto†", `<td class="gwgp-price">1.53</td>`, cell("1.61", "+0.01"), cell("1.45", "-0.03")),
		row("Ottawa*", cell("1.49", "n/c"), cell("1.69", "n/c"), cell("1.58", "+0.01")),
	)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, doc)

			assert.Equal(t, []string{"Ottawa"}, snapshot.Cities())
			assert.Equal(t, 1, report.SkippedMalformed)
		})
	}
}

func TestExtractor_LastRowWins(t *testing.T) {
	doc := page("",
		row("Toronto†", cell("1.53", "+0.02"), cell("1.61", "+0.01"), cell("1.45", "-0.03")),
		row("Toronto*", cell("1.40", "-0.13"), cell("1.50", "-0.11"), cell("1.30", "-0.15")),
	)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, doc)

			price, ok := snapshot.Lookup("Toronto")
			require.True(t, ok)
			assert.Equal(t, NewPrice("1.40", "-0.13"), price.Regular)
			assert.Equal(t, NewPrice("1.50", "-0.11"), price.Premium)
			assert.Equal(t, NewPrice("1.30", "-0.15"), price.Diesel)
			assert.Equal(t, 1, report.Duplicates)
			assert.Equal(t, 1, snapshot.Len())
		})
	}
}

func TestExtractor_DateFallback(t *testing.T) {
	doc := page("", row("Toronto†", cell("1.53", "+0.02"), cell("1.61", "+0.01"), cell("1.45", "-0.03")))

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, _ := extract(t, tt.selector, doc)
			assert.Equal(t, "N/A", snapshot.DateInfo())
		})
	}
}

func TestExtractor_EmptyPage(t *testing.T) {
	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, "")

			assert.Equal(t, DateFallback, snapshot.DateInfo())
			assert.Equal(t, 0, snapshot.Len())
			assert.Equal(t, Report{}, report)
		})
	}
}

func TestExtractor_ClassToken(t *testing.T) {
	// "cityname" rows and "gwgp-price-old" cells must not match the patterns
	doc := page("",
		`<tr class="cityname"><td class="gwgp-cityname">Regina*</td>`+
			cell("1.40", "n/c")+cell("1.50", "n/c")+cell("1.60", "n/c")+`</tr>`,
		`<tr class="odd city"><td class="gwgp-cityname">Saskatoon*</td>`+
			`<td class="gwgp-price-old">9.99<span>x</span></td>`+
			cell("1.41", "n/c")+cell("1.51", "n/c")+cell("1.61", "n/c")+`</tr>`,
	)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, report := extract(t, tt.selector, doc)

			assert.Equal(t, 1, report.Rows)
			assert.Equal(t, []string{"Saskatoon"}, snapshot.Cities())

			price, _ := snapshot.Lookup("Saskatoon")
			assert.Equal(t, "1.41", price.Regular.Value)
		})
	}
}

func TestExtractor_BrokenMarkup(t *testing.T) {
	doc := `<div class="price-date">Today<table><tr class="city"><td class="gwgp-cityname">Victoria*` +
		`<td class="gwgp-price">1.89<span>+0.01</span>` +
		`<td class="gwgp-price">2.09<span>+0.01` +
		`<td class="gwgp-price">1.99<span>n/c</span>`

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, _ := extract(t, tt.selector, doc)

			price, ok := snapshot.Lookup("Victoria")
			require.True(t, ok)
			assert.Equal(t, NewPrice("2.09", "+0.01"), price.Premium)
		})
	}
}

func TestExtractor_Idempotent(t *testing.T) {
	raw, err := os.ReadFile("testdata/predictions.html")
	require.NoError(t, err)

	for _, tt := range selectors {
		t.Run(tt.name, func(t *testing.T) {
			first, firstReport := extract(t, tt.selector, string(raw))
			second, secondReport := extract(t, tt.selector, string(raw))

			assert.Equal(t, first.DateInfo(), second.DateInfo())
			assert.Equal(t, first.Prices(), second.Prices())
			assert.Equal(t, firstReport, secondReport)
		})
	}
}

func TestExtractor_SelectorsAgree(t *testing.T) {
	raw, err := os.ReadFile("testdata/predictions.html")
	require.NoError(t, err)

	xpath, _ := extract(t, &XPathSelector{}, string(raw))
	css, _ := extract(t, &CSSSelector{}, string(raw))

	assert.Equal(t, xpath.Prices(), css.Prices())
	assert.Equal(t, xpath.DateInfo(), css.DateInfo())
}
