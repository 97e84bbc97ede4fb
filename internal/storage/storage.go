package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NutrientMetric — тройка total/target/variant одного нутриента за день.
// Допустимый диапазон: [Target-Variant, Target+Variant].
type NutrientMetric struct {
	Label   string
	Total   int
	Target  int
	Variant int
}

// DayRecord — запись одного календарного дня. Ровно одна запись на дату,
// upsert по date перезаписывает документ целиком.
type DayRecord struct {
	ID        uuid.UUID
	Date      string // YYYY-MM-DD
	Calories  NutrientMetric
	Carbs     NutrientMetric
	Fat       NutrientMetric
	Protein   NutrientMetric
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayStorage — интерфейс хранилища дневных записей
type DayStorage interface {
	// GetDay возвращает запись за дату (nil, nil если записи нет)
	GetDay(ctx context.Context, date string) (*DayRecord, error)

	// FirstDay возвращает самую раннюю запись (nil, nil если хранилище пусто)
	FirstDay(ctx context.Context) (*DayRecord, error)

	// ListDays возвращает записи в диапазоне дат включительно, по возрастанию даты
	ListDays(ctx context.Context, from, to string) ([]DayRecord, error)

	// UpsertDay создаёт или полностью перезаписывает запись дня (ключ — date)
	UpsertDay(ctx context.Context, record *DayRecord) (*DayRecord, error)

	// Close закрывает соединение (для Postgres)
	Close() error
}

// ReportsStorage — интерфейс для работы с экспортами
type ReportsStorage interface {
	// CreateReport сохраняет метаданные экспорта (и данные в local режиме)
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport возвращает экспорт по ID
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)

	// ListReports возвращает список экспортов с пагинацией (новые первыми)
	ListReports(ctx context.Context, limit, offset int) ([]ReportMeta, error)

	// DeleteReport удаляет экспорт
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// ReportMeta — метаданные экспорта
type ReportMeta struct {
	ID        uuid.UUID
	Format    string  // "pdf" or "csv"
	FromDate  string  // YYYY-MM-DD
	ToDate    string  // YYYY-MM-DD
	ObjectKey *string // S3 object key (NULL в local режиме)
	SizeBytes int64
	Status    string // "ready" or "failed"
	Error     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      []byte // только в local режиме (без S3)
}
