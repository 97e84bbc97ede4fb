package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/macro-hub/internal/config"
	"github.com/fdg312/macro-hub/internal/httpserver"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()

	srv := httpserver.New(&config.Config{Env: "local", Port: 8080})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	return NewController(New(ts.URL))
}

func TestControllerLoadEmptyStore(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	if ctrl.Date() != today {
		t.Errorf("expected today %s, got %s", today, ctrl.Date())
	}

	record := ctrl.Record()
	if record.Calories.Total != 0 || record.Protein.Target != 0 {
		t.Errorf("expected zero record, got %+v", record)
	}
	if ctrl.Dirty() {
		t.Error("freshly loaded record should not be dirty")
	}
}

func TestControllerEditAndSaveRoundTrip(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := ctrl.Edit("calories", FieldTotal, "2000"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if err := ctrl.Edit("calories", FieldTarget, "1900"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if err := ctrl.Edit("calories", FieldVariant, "150"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if !ctrl.Dirty() {
		t.Fatal("expected dirty after edits")
	}

	if err := ctrl.Save(ctx); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if ctrl.Dirty() {
		t.Error("expected clean after save")
	}

	// Reload from the server and verify persistence
	date := ctrl.Date()
	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	record := ctrl.Record()
	if record.Date != date {
		t.Fatalf("expected reloaded date %s, got %s", date, record.Date)
	}
	if record.Calories.Total != 2000 || record.Calories.Target != 1900 || record.Calories.Variant != 150 {
		t.Errorf("unexpected persisted calories: %+v", record.Calories)
	}
	if record.ID == nil {
		t.Error("expected persisted record to carry an id")
	}
}

func TestControllerNavigateDiscardsEdits(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	startDate := ctrl.Date()

	if err := ctrl.Edit("fat", FieldTotal, "90"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	// Unsaved edit is dropped on navigation
	if err := ctrl.NavigateNext(ctx); err != nil {
		t.Fatalf("navigate next failed: %v", err)
	}
	if ctrl.Dirty() {
		t.Error("expected clean record after navigation")
	}

	next, _ := time.Parse("2006-01-02", startDate)
	wantNext := next.AddDate(0, 0, 1).Format("2006-01-02")
	if ctrl.Date() != wantNext {
		t.Errorf("expected date %s, got %s", wantNext, ctrl.Date())
	}

	if err := ctrl.NavigatePrevious(ctx); err != nil {
		t.Fatalf("navigate previous failed: %v", err)
	}
	if ctrl.Date() != startDate {
		t.Errorf("expected date %s, got %s", startDate, ctrl.Date())
	}
	if got := ctrl.Record().Fat.Total; got != 0 {
		t.Errorf("expected discarded edit, got fat.total=%d", got)
	}
}

func TestControllerEditValidation(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Edit("calories", FieldTotal, "100"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded before load, got %v", err)
	}

	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := ctrl.Edit("calories", FieldTotal, "lots"); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}
	if err := ctrl.Edit("sugar", FieldTotal, "10"); !errors.Is(err, ErrUnknownNutrient) {
		t.Errorf("expected ErrUnknownNutrient, got %v", err)
	}
	if err := ctrl.Edit("calories", "median", "10"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}

	if ctrl.Dirty() {
		t.Error("rejected edits must not mark the record dirty")
	}
	if got := ctrl.Record().Calories.Total; got != 0 {
		t.Errorf("rejected edits must not change the record, got %d", got)
	}
}

func TestControllerSaveRejectedByServer(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := ctrl.Edit("carbs", FieldVariant, "-5"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	err := ctrl.Save(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "invalid_variant" {
		t.Errorf("expected code invalid_variant, got %s", apiErr.Code)
	}
	if !ctrl.Dirty() {
		t.Error("failed save must keep the record dirty")
	}
}
