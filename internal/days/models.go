package days

import (
	"time"

	"github.com/fdg312/macro-hub/internal/storage"
	"github.com/google/uuid"
)

// Canonical nutrient labels, matching the persisted document fields.
const (
	LabelCalories = "Calories"
	LabelCarbs    = "Carbs"
	LabelFat      = "Fat"
	LabelProtein  = "Protein"
)

// Metric is one nutrient's tracking state for a day. The acceptable range
// is [Target-Variant, Target+Variant], bounds inclusive.
type Metric struct {
	Label   string `json:"label"`
	Total   int    `json:"total"`
	Target  int    `json:"target"`
	Variant int    `json:"variant"`
}

// DayRecordDTO is the API representation of one day's tracking state.
// ID is nil for default records that have never been persisted.
type DayRecordDTO struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Date      string     `json:"date"` // YYYY-MM-DD
	Calories  Metric     `json:"calories"`
	Carbs     Metric     `json:"carbs"`
	Fat       Metric     `json:"fat"`
	Protein   Metric     `json:"protein"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UpsertDayRequest is the request body for POST /api/day.
// The full record replaces whatever is stored for the date.
type UpsertDayRequest struct {
	Date     string `json:"date"`
	Calories Metric `json:"calories"`
	Carbs    Metric `json:"carbs"`
	Fat      Metric `json:"fat"`
	Protein  Metric `json:"protein"`
}

// UpsertDayResponse acknowledges a save. Created and updated records answer
// identically.
type UpsertDayResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DefaultDayRecord returns the zero-valued record for a date with no stored
// entry. It is never persisted on read — absence is masked, not written.
func DefaultDayRecord(date string) DayRecordDTO {
	return DayRecordDTO{
		Date:     date,
		Calories: Metric{Label: LabelCalories},
		Carbs:    Metric{Label: LabelCarbs},
		Fat:      Metric{Label: LabelFat},
		Protein:  Metric{Label: LabelProtein},
	}
}

// Validate checks an upsert request. Negative variance would invert the
// acceptable range, so it is rejected outright.
func (r *UpsertDayRequest) Validate() error {
	if r.Date == "" {
		return ErrMissingDate
	}

	for _, m := range []Metric{r.Calories, r.Carbs, r.Fat, r.Protein} {
		if m.Variant < 0 {
			return ErrNegativeVariant
		}
	}

	return nil
}

func dtoFromStorage(record *storage.DayRecord) DayRecordDTO {
	id := record.ID
	createdAt := record.CreatedAt
	updatedAt := record.UpdatedAt

	return DayRecordDTO{
		ID:        &id,
		Date:      record.Date,
		Calories:  metricFromStorage(record.Calories, LabelCalories),
		Carbs:     metricFromStorage(record.Carbs, LabelCarbs),
		Fat:       metricFromStorage(record.Fat, LabelFat),
		Protein:   metricFromStorage(record.Protein, LabelProtein),
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}
}

func metricFromStorage(m storage.NutrientMetric, fallbackLabel string) Metric {
	label := m.Label
	if label == "" {
		label = fallbackLabel
	}
	return Metric{Label: label, Total: m.Total, Target: m.Target, Variant: m.Variant}
}

func metricToStorage(m Metric, label string) storage.NutrientMetric {
	return storage.NutrientMetric{Label: label, Total: m.Total, Target: m.Target, Variant: m.Variant}
}
