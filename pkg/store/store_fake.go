package store

import "sync"

// FakeStore keeps everything in memory
// it is used for testing purposes and for STORE=memory
type FakeStore struct {
	mtx     sync.Mutex
	events  []string
	lookups map[string]int
	misses  int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		events:  []string{},
		lookups: map[string]int{},
	}
}

func (s *FakeStore) AddEvent(event string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > EventsLimit {
		s.events = s.events[len(s.events)-EventsLimit:]
	}
	return nil
}

func (s *FakeStore) GetEvents() ([]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	events := make([]string, len(s.events))
	copy(events, s.events)
	return events, nil
}

func (s *FakeStore) AddLookup(city string, found bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !found {
		s.misses++
		return nil
	}

	if s.lookups == nil {
		s.lookups = map[string]int{}
	}
	s.lookups[city]++
	return nil
}

func (s *FakeStore) GetLookups() (map[string]int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	lookups := make(map[string]int, len(s.lookups))
	for city, n := range s.lookups {
		lookups[city] = n
	}
	return lookups, nil
}

func (s *FakeStore) GetMisses() (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.misses, nil
}
