package gwgp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kotrzina/gas-wizard/pkg/utils"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryRegular Category = "regular"
	CategoryPremium Category = "premium"
	CategoryDiesel  Category = "diesel"
)

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "r":
		return CategoryRegular, nil
	case "premium", "p":
		return CategoryPremium, nil
	case "diesel", "d":
		return CategoryDiesel, nil
	default:
		return "", fmt.Errorf("unknown fuel category %q", s)
	}
}

func (o OilPrice) Get(c Category) Price {
	switch c {
	case CategoryPremium:
		return o.Premium
	case CategoryDiesel:
		return o.Diesel
	default:
		return o.Regular
	}
}

// Ranked is one city in the Cheapest listing
type Ranked struct {
	City   string          `json:"city"`
	Price  Price           `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// Cheapest orders cities by the numeric part of the category price.
// Cities whose price text has no number are not listed.
func (s *Snapshot) Cheapest(c Category, n int) []Ranked {
	ranked := []Ranked{}
	if s == nil || n <= 0 {
		return ranked
	}

	for city, oil := range s.prices {
		price := oil.Get(c)
		amount, err := decimal.NewFromString(utils.Strip(price.Value))
		if err != nil {
			continue
		}

		ranked = append(ranked, Ranked{
			City:   city,
			Price:  price,
			Amount: amount,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Amount.Equal(ranked[j].Amount) {
			return ranked[i].Amount.LessThan(ranked[j].Amount)
		}
		return ranked[i].City < ranked[j].City
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
