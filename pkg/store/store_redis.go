package store

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/kotrzina/gas-wizard/pkg/config"
)

const (
	EventsKey  = "gwgp:events"
	LookupsKey = "gwgp:lookups"
	MissesKey  = "gwgp:misses"
)

type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(config *config.Config) *RedisStore {
	return &RedisStore{
		Client: redis.NewClient(&redis.Options{
			Addr: config.RedisAddr,
			DB:   config.RedisDB,
		}),
	}
}

func (s *RedisStore) AddEvent(event string) error {
	ctx := context.Background()
	if err := s.Client.RPush(ctx, EventsKey, event).Err(); err != nil {
		return err
	}

	return s.Client.LTrim(ctx, EventsKey, -EventsLimit, -1).Err()
}

func (s *RedisStore) GetEvents() ([]string, error) {
	return s.Client.LRange(context.Background(), EventsKey, 0, -1).Result()
}

func (s *RedisStore) AddLookup(city string, found bool) error {
	if !found {
		return s.Client.Incr(context.Background(), MissesKey).Err()
	}

	return s.Client.HIncrBy(context.Background(), LookupsKey, city, 1).Err()
}

func (s *RedisStore) GetLookups() (map[string]int, error) {
	res, err := s.Client.HGetAll(context.Background(), LookupsKey).Result()
	if err != nil {
		return nil, err
	}

	lookups := make(map[string]int, len(res))
	for city, val := range res {
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		lookups[city] = n
	}

	return lookups, nil
}

func (s *RedisStore) GetMisses() (int, error) {
	n, err := s.Client.Get(context.Background(), MissesKey).Int()
	if err == redis.Nil {
		return 0, nil
	}

	return n, err
}
