package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostgresStorage — Postgres реализация DayStorage и ReportsStorage.
// Пул соединений создаётся один раз и переиспользуется всеми запросами.
type PostgresStorage struct {
	pool    *pgxpool.Pool
	days    *PostgresDaysStorage
	reports *PostgresReportsStorage
}

// New создаёт PostgresStorage и проверяет соединение
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:    pool,
		days:    NewPostgresDaysStorage(pool),
		reports: NewPostgresReportsStorage(pool),
	}, nil
}

// GetDayStorage returns the day records storage
func (p *PostgresStorage) GetDayStorage() *PostgresDaysStorage {
	return p.days
}

// GetReportsStorage returns the reports storage
func (p *PostgresStorage) GetReportsStorage() *PostgresReportsStorage {
	return p.reports
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
