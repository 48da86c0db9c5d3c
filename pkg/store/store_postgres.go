package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const (
	tablePrefix = "gwgp_"
)

type PostgresStore struct {
	db  *sql.DB
	ctx context.Context
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:  db,
		ctx: ctx,
	}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	migrations := []string{
		// Events table
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %sevents (
			id SERIAL PRIMARY KEY,
			event TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`, tablePrefix),

		// Lookup counters per requested city name
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %slookups (
			city TEXT NOT NULL,
			found BOOLEAN NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (city, found)
		)`, tablePrefix),
	}

	for _, migration := range migrations {
		if _, err := s.db.ExecContext(s.ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) AddEvent(event string) error {
	query := fmt.Sprintf("INSERT INTO %sevents (event) VALUES ($1)", tablePrefix)
	if _, err := s.db.ExecContext(s.ctx, query, event); err != nil {
		return err
	}

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %sevents
		WHERE id NOT IN (
			SELECT id FROM %sevents ORDER BY id DESC LIMIT %d
		)
	`, tablePrefix, tablePrefix, EventsLimit)
	_, err := s.db.ExecContext(s.ctx, deleteQuery)
	return err
}

func (s *PostgresStore) GetEvents() ([]string, error) {
	query := fmt.Sprintf("SELECT event FROM %sevents ORDER BY id ASC", tablePrefix)
	rows, err := s.db.QueryContext(s.ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	events := []string{}
	for rows.Next() {
		var event string
		if err := rows.Scan(&event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *PostgresStore) AddLookup(city string, found bool) error {
	query := fmt.Sprintf(`
		INSERT INTO %slookups (city, found, count, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (city, found) DO UPDATE SET count = %slookups.count + 1, updated_at = NOW()
	`, tablePrefix, tablePrefix)
	_, err := s.db.ExecContext(s.ctx, query, city, found)
	return err
}

func (s *PostgresStore) GetLookups() (map[string]int, error) {
	query := fmt.Sprintf("SELECT city, count FROM %slookups WHERE found", tablePrefix)
	rows, err := s.db.QueryContext(s.ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	lookups := map[string]int{}
	for rows.Next() {
		var (
			city  string
			count int
		)
		if err := rows.Scan(&city, &count); err != nil {
			return nil, err
		}
		lookups[city] = count
	}

	return lookups, rows.Err()
}

func (s *PostgresStore) GetMisses() (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COALESCE(SUM(count), 0) FROM %slookups WHERE NOT found", tablePrefix)
	err := s.db.QueryRowContext(s.ctx, query).Scan(&count)
	return count, err
}
