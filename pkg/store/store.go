package store

// EventsLimit is the number of newest events kept by every storage
const EventsLimit = 500

// Storage keeps bot usage data. Prices themselves are never stored,
// every process works with the snapshot it scraped on startup.
type Storage interface {
	AddEvent(event string) error  // add event
	GetEvents() ([]string, error) // get events from oldest to newest

	AddLookup(city string, found bool) error // count city lookup
	GetLookups() (map[string]int, error)     // get number of lookups per city
	GetMisses() (int, error)                 // get number of lookups with no result
}
