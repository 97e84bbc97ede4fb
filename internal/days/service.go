package days

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/macro-hub/internal/storage"
)

var (
	ErrInvalidDate     = errors.New("invalid date format")
	ErrMissingDate     = errors.New("date is required")
	ErrNegativeVariant = errors.New("variant must be non-negative")
)

// Accepted date layouts. Anything with a time component is truncated to the
// day boundary so two saves on the same calendar day always hit one record.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Service handles day record business logic.
type Service struct {
	storage storage.DayStorage
}

// NewService creates a new days service.
func NewService(st storage.DayStorage) *Service {
	return &Service{storage: st}
}

// GetDay returns the record for a date. An empty date returns the earliest
// stored record, if any. A date with no record returns a zero-valued default
// — absence is never an error and never a 404.
func (s *Service) GetDay(ctx context.Context, dateStr string) (DayRecordDTO, error) {
	if strings.TrimSpace(dateStr) == "" {
		record, err := s.storage.FirstDay(ctx)
		if err != nil {
			return DayRecordDTO{}, fmt.Errorf("failed to get first day record: %w", err)
		}
		if record == nil {
			// Пустое хранилище: дефолтная запись на сегодня
			return DefaultDayRecord(time.Now().UTC().Format("2006-01-02")), nil
		}
		return dtoFromStorage(record), nil
	}

	date, err := NormalizeDate(dateStr)
	if err != nil {
		return DayRecordDTO{}, ErrInvalidDate
	}

	record, err := s.storage.GetDay(ctx, date)
	if err != nil {
		return DayRecordDTO{}, fmt.Errorf("failed to get day record: %w", err)
	}
	if record == nil {
		return DefaultDayRecord(date), nil
	}

	return dtoFromStorage(record), nil
}

// UpsertDay validates, normalizes the date and replaces the full record for
// that date. Last writer wins — there is no version token.
func (s *Service) UpsertDay(ctx context.Context, req UpsertDayRequest) (DayRecordDTO, error) {
	if err := req.Validate(); err != nil {
		return DayRecordDTO{}, err
	}

	date, err := NormalizeDate(req.Date)
	if err != nil {
		return DayRecordDTO{}, ErrInvalidDate
	}

	record := &storage.DayRecord{
		Date:     date,
		Calories: metricToStorage(req.Calories, LabelCalories),
		Carbs:    metricToStorage(req.Carbs, LabelCarbs),
		Fat:      metricToStorage(req.Fat, LabelFat),
		Protein:  metricToStorage(req.Protein, LabelProtein),
	}

	stored, err := s.storage.UpsertDay(ctx, record)
	if err != nil {
		return DayRecordDTO{}, fmt.Errorf("failed to upsert day record: %w", err)
	}

	return dtoFromStorage(stored), nil
}

// ListDays returns stored records in [from, to], both already normalized.
func (s *Service) ListDays(ctx context.Context, from, to string) ([]DayRecordDTO, error) {
	records, err := s.storage.ListDays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}

	dtos := make([]DayRecordDTO, len(records))
	for i := range records {
		dtos[i] = dtoFromStorage(&records[i])
	}

	return dtos, nil
}

// NormalizeDate parses a date-only or ISO-8601 datetime string and collapses
// it to the canonical YYYY-MM-DD day boundary.
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", ErrInvalidDate
}
