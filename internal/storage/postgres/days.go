package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/macro-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dayColumns = `
	id, date::text,
	calories_total, calories_target, calories_variant,
	carbs_total, carbs_target, carbs_variant,
	fat_total, fat_target, fat_variant,
	protein_total, protein_target, protein_variant,
	created_at, updated_at
`

// PostgresDaysStorage — Postgres хранилище дневных записей
type PostgresDaysStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresDaysStorage создаёт новое Postgres хранилище
func NewPostgresDaysStorage(pool *pgxpool.Pool) *PostgresDaysStorage {
	return &PostgresDaysStorage{pool: pool}
}

func (s *PostgresDaysStorage) GetDay(ctx context.Context, date string) (*storage.DayRecord, error) {
	query := `SELECT ` + dayColumns + ` FROM day_records WHERE date = $1`

	record, err := scanDay(s.pool.QueryRow(ctx, query, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day record: %w", err)
	}

	return record, nil
}

func (s *PostgresDaysStorage) FirstDay(ctx context.Context) (*storage.DayRecord, error) {
	query := `SELECT ` + dayColumns + ` FROM day_records ORDER BY date ASC LIMIT 1`

	record, err := scanDay(s.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // хранилище пусто
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get first day record: %w", err)
	}

	return record, nil
}

func (s *PostgresDaysStorage) ListDays(ctx context.Context, from, to string) ([]storage.DayRecord, error) {
	query := `SELECT ` + dayColumns + ` FROM day_records WHERE date >= $1 AND date <= $2 ORDER BY date ASC`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}
	defer rows.Close()

	records := []storage.DayRecord{}
	for rows.Next() {
		record, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

// UpsertDay создаёт или полностью перезаписывает запись дня.
// Replace-set семантика: все поля нутриентов заменяются значениями из record.
func (s *PostgresDaysStorage) UpsertDay(ctx context.Context, record *storage.DayRecord) (*storage.DayRecord, error) {
	query := `
		INSERT INTO day_records (
			id, date,
			calories_total, calories_target, calories_variant,
			carbs_total, carbs_target, carbs_variant,
			fat_total, fat_target, fat_variant,
			protein_total, protein_target, protein_variant
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (date)
		DO UPDATE SET
			calories_total = EXCLUDED.calories_total,
			calories_target = EXCLUDED.calories_target,
			calories_variant = EXCLUDED.calories_variant,
			carbs_total = EXCLUDED.carbs_total,
			carbs_target = EXCLUDED.carbs_target,
			carbs_variant = EXCLUDED.carbs_variant,
			fat_total = EXCLUDED.fat_total,
			fat_target = EXCLUDED.fat_target,
			fat_variant = EXCLUDED.fat_variant,
			protein_total = EXCLUDED.protein_total,
			protein_target = EXCLUDED.protein_target,
			protein_variant = EXCLUDED.protein_variant,
			updated_at = now()
		RETURNING ` + dayColumns

	id := record.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := s.pool.QueryRow(ctx, query,
		id,
		record.Date,
		record.Calories.Total, record.Calories.Target, record.Calories.Variant,
		record.Carbs.Total, record.Carbs.Target, record.Carbs.Variant,
		record.Fat.Total, record.Fat.Target, record.Fat.Variant,
		record.Protein.Total, record.Protein.Target, record.Protein.Variant,
	)

	stored, err := scanDay(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert day record: %w", err)
	}

	return stored, nil
}

func (s *PostgresDaysStorage) Close() error {
	// пул принадлежит PostgresStorage
	return nil
}

func scanDay(row pgx.Row) (*storage.DayRecord, error) {
	var record storage.DayRecord
	err := row.Scan(
		&record.ID,
		&record.Date,
		&record.Calories.Total, &record.Calories.Target, &record.Calories.Variant,
		&record.Carbs.Total, &record.Carbs.Target, &record.Carbs.Variant,
		&record.Fat.Total, &record.Fat.Target, &record.Fat.Variant,
		&record.Protein.Total, &record.Protein.Target, &record.Protein.Variant,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Calories.Label = "Calories"
	record.Carbs.Label = "Carbs"
	record.Fat.Label = "Fat"
	record.Protein.Label = "Protein"

	return &record, nil
}
