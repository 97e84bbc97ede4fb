package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/macro-hub/internal/storage"
	"github.com/google/uuid"
)

// DaysMemoryStorage — in-memory хранилище дневных записей (ключ — дата)
type DaysMemoryStorage struct {
	mu   sync.RWMutex
	days map[string]*storage.DayRecord // key: YYYY-MM-DD
}

// NewDaysMemoryStorage создаёт новое in-memory хранилище
func NewDaysMemoryStorage() *DaysMemoryStorage {
	return &DaysMemoryStorage{
		days: make(map[string]*storage.DayRecord),
	}
}

func (s *DaysMemoryStorage) GetDay(ctx context.Context, date string) (*storage.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.days[date]
	if !ok {
		return nil, nil // not found, return nil without error
	}

	copied := *record
	return &copied, nil
}

func (s *DaysMemoryStorage) FirstDay(ctx context.Context) (*storage.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var earliest *storage.DayRecord
	for _, record := range s.days {
		if earliest == nil || record.Date < earliest.Date {
			earliest = record
		}
	}

	if earliest == nil {
		return nil, nil
	}

	copied := *earliest
	return &copied, nil
}

func (s *DaysMemoryStorage) ListDays(ctx context.Context, from, to string) ([]storage.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Даты в формате YYYY-MM-DD сравниваются лексикографически
	result := []storage.DayRecord{}
	for _, record := range s.days {
		if record.Date >= from && record.Date <= to {
			result = append(result, *record)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result, nil
}

func (s *DaysMemoryStorage) UpsertDay(ctx context.Context, record *storage.DayRecord) (*storage.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	existing, ok := s.days[record.Date]
	if ok {
		// Полная перезапись: сохраняем только id и created_at
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	stored := *record
	s.days[record.Date] = &stored

	copied := stored
	return &copied, nil
}

func (s *DaysMemoryStorage) Close() error {
	return nil
}
