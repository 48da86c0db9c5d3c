package gwgp

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DateFallback is used as date label when the page does not carry one.
const DateFallback = "N/A"

// Price is a single fuel category quote as displayed on the page.
// Both fields are kept as text, the source does not guarantee a numeric format.
type Price struct {
	Value  string `json:"value"`
	Change string `json:"change"`
}

func NewPrice(value, change string) Price {
	return Price{
		Value:  value,
		Change: change,
	}
}

func (p Price) String() string {
	return fmt.Sprintf(" 💲%s  🔄%s", p.Value, p.Change)
}

// OilPrice is the full quote of one city
type OilPrice struct {
	Regular Price `json:"regular"`
	Premium Price `json:"premium"`
	Diesel  Price `json:"diesel"`
}

func NewOilPrice(regular, premium, diesel Price) OilPrice {
	return OilPrice{
		Regular: regular,
		Premium: premium,
		Diesel:  diesel,
	}
}

func (o OilPrice) String() string {
	return fmt.Sprintf(
		"⛽ **R**:     %s\n"+
			"🚗 **P**:     %s\n"+
			"🚚 **D**:     %s",
		o.Regular, o.Premium, o.Diesel,
	)
}

// Snapshot is the result of one scrape.
// It is never modified after Extract returns it, so it can be shared
// between any number of readers without locking.
// A nil *Snapshot behaves like an empty one.
type Snapshot struct {
	dateInfo  string
	prices    map[string]OilPrice
	fetchedAt time.Time
}

// NewSnapshot copies prices, later changes of the map do not affect the snapshot
func NewSnapshot(dateInfo string, prices map[string]OilPrice) *Snapshot {
	owned := make(map[string]OilPrice, len(prices))
	for city, price := range prices {
		owned[city] = price
	}

	return &Snapshot{
		dateInfo:  dateInfo,
		prices:    owned,
		fetchedAt: time.Now(),
	}
}

func (s *Snapshot) DateInfo() string {
	if s == nil {
		return DateFallback
	}

	return s.dateInfo
}

// Lookup finds a city by its exact, case-sensitive name
func (s *Snapshot) Lookup(city string) (OilPrice, bool) {
	if s == nil {
		return OilPrice{}, false
	}

	price, ok := s.prices[city]
	return price, ok
}

// Prices returns a copy of the city to price mapping
func (s *Snapshot) Prices() map[string]OilPrice {
	out := make(map[string]OilPrice, s.Len())
	if s == nil {
		return out
	}

	for city, price := range s.prices {
		out[city] = price
	}
	return out
}

// Cities returns all city names sorted alphabetically
func (s *Snapshot) Cities() []string {
	if s == nil {
		return []string{}
	}

	cities := make([]string, 0, len(s.prices))
	for city := range s.prices {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	return cities
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}

	return len(s.prices)
}

func (s *Snapshot) FetchedAt() time.Time {
	if s == nil {
		return time.Unix(0, 0)
	}

	return s.fetchedAt
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DateInfo  string              `json:"date_info"`
		Prices    map[string]OilPrice `json:"prices"`
		FetchedAt time.Time           `json:"fetched_at"`
	}{
		DateInfo:  s.DateInfo(),
		Prices:    s.Prices(),
		FetchedAt: s.FetchedAt(),
	})
}
