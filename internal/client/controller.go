package client

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fdg312/macro-hub/internal/days"
)

// Metric fields editable through the controller
const (
	FieldTotal   = "total"
	FieldTarget  = "target"
	FieldVariant = "variant"
)

var (
	ErrNotLoaded       = errors.New("no day record loaded")
	ErrUnknownNutrient = errors.New("unknown nutrient")
	ErrUnknownField    = errors.New("unknown metric field")
	ErrNotNumeric      = errors.New("value is not numeric")
)

// Controller drives a single-day editing session against the API.
// It holds the full record for the shown date; navigation replaces the
// record wholesale from the server, so unsaved edits are discarded.
// Callers that want to keep changes must Save before navigating.
type Controller struct {
	api    *Client
	record days.DayRecordDTO
	loaded bool
	dirty  bool
}

// NewController creates a controller over an API client
func NewController(api *Client) *Controller {
	return &Controller{api: api}
}

// Load fetches the initial record: the earliest recorded day, or a zero
// record for today when nothing is stored yet.
func (c *Controller) Load(ctx context.Context) error {
	return c.loadDate(ctx, "")
}

func (c *Controller) loadDate(ctx context.Context, date string) error {
	record, err := c.api.GetDay(ctx, date)
	if err != nil {
		return err
	}

	c.record = *record
	c.loaded = true
	c.dirty = false
	return nil
}

// Record returns a copy of the current record
func (c *Controller) Record() days.DayRecordDTO {
	return c.record
}

// Date returns the currently shown date
func (c *Controller) Date() string {
	return c.record.Date
}

// Dirty reports whether there are unsaved edits
func (c *Controller) Dirty() bool {
	return c.dirty
}

// Edit applies a raw input value to one metric field. Non-numeric input is
// rejected and the record is left unchanged.
func (c *Controller) Edit(nutrient, field, value string) error {
	if !c.loaded {
		return ErrNotLoaded
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return ErrNotNumeric
	}

	metric, err := c.metric(nutrient)
	if err != nil {
		return err
	}

	switch field {
	case FieldTotal:
		metric.Total = parsed
	case FieldTarget:
		metric.Target = parsed
	case FieldVariant:
		metric.Variant = parsed
	default:
		return ErrUnknownField
	}

	c.dirty = true
	return nil
}

func (c *Controller) metric(nutrient string) (*days.Metric, error) {
	switch nutrient {
	case "calories":
		return &c.record.Calories, nil
	case "carbs":
		return &c.record.Carbs, nil
	case "fat":
		return &c.record.Fat, nil
	case "protein":
		return &c.record.Protein, nil
	default:
		return nil, ErrUnknownNutrient
	}
}

// NavigatePrevious loads the previous calendar day, discarding unsaved edits
func (c *Controller) NavigatePrevious(ctx context.Context) error {
	return c.navigate(ctx, -1)
}

// NavigateNext loads the next calendar day, discarding unsaved edits
func (c *Controller) NavigateNext(ctx context.Context) error {
	return c.navigate(ctx, 1)
}

func (c *Controller) navigate(ctx context.Context, deltaDays int) error {
	if !c.loaded {
		return ErrNotLoaded
	}

	day, err := time.Parse("2006-01-02", c.record.Date)
	if err != nil {
		return err
	}

	return c.loadDate(ctx, day.AddDate(0, 0, deltaDays).Format("2006-01-02"))
}

// Save posts the full record for the current date and clears the dirty flag
func (c *Controller) Save(ctx context.Context) error {
	if !c.loaded {
		return ErrNotLoaded
	}

	if err := c.api.UpsertDay(ctx, &c.record); err != nil {
		return err
	}

	c.dirty = false
	return nil
}
