package days

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/macro-hub/internal/storage/memory"
)

func newTestHandler() *Handler {
	return NewHandler(NewService(memory.New().GetDayStorage()))
}

func TestHandleGetDayDefault(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("GET", "/api/day?date=2099-12-31", nil)
	w := httptest.NewRecorder()

	handler.HandleGetDay(w, req)

	// Absence is masked by the default record — never a 404
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var record DayRecordDTO
	if err := json.NewDecoder(w.Body).Decode(&record); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if record.Date != "2099-12-31" {
		t.Errorf("expected date 2099-12-31, got %s", record.Date)
	}
	if record.Calories.Total != 0 || record.Calories.Target != 0 || record.Calories.Variant != 0 {
		t.Errorf("expected zero calories metric, got %+v", record.Calories)
	}
}

func TestHandleUpsertThenGet(t *testing.T) {
	handler := newTestHandler()

	body := `{
		"date": "2024-01-15",
		"calories": {"label": "Calories", "total": 2000, "target": 1900, "variant": 150},
		"carbs":    {"label": "Carbs",    "total": 150,  "target": 160,  "variant": 20},
		"fat":      {"label": "Fat",      "total": 60,   "target": 70,   "variant": 10},
		"protein":  {"label": "Protein",  "total": 120,  "target": 130,  "variant": 15}
	}`

	req := httptest.NewRequest("POST", "/api/day", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleUpsertDay(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var ack UpsertDayResponse
	if err := json.NewDecoder(w.Body).Decode(&ack); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if ack.Message != "ok" {
		t.Errorf(`expected message "ok", got %q`, ack.Message)
	}

	req = httptest.NewRequest("GET", "/api/day?date=2024-01-15", nil)
	w = httptest.NewRecorder()
	handler.HandleGetDay(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var record DayRecordDTO
	if err := json.NewDecoder(w.Body).Decode(&record); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if record.Calories.Total != 2000 {
		t.Errorf("expected calories.total=2000, got %d", record.Calories.Total)
	}
	if record.ID == nil {
		t.Error("expected persisted record to carry an id")
	}
}

func TestHandleGetDayNoFilter(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("GET", "/api/day", nil)
	w := httptest.NewRecorder()
	handler.HandleGetDay(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestHandleGetDayInvalidDate(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("GET", "/api/day?date=not-a-date", nil)
	w := httptest.NewRecorder()
	handler.HandleGetDay(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Code != "invalid_date" {
		t.Errorf("expected code invalid_date, got %s", resp.Error.Code)
	}
}

func TestHandleUpsertDayErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid json", `{"date": `, "invalid_json"},
		{"missing date", `{"calories": {"total": 100}}`, "missing_date"},
		{"invalid date", `{"date": "someday"}`, "invalid_date"},
		{"negative variant", `{"date": "2024-01-15", "calories": {"total": 100, "target": 100, "variant": -5}}`, "invalid_variant"},
		{"non-numeric total", `{"date": "2024-01-15", "calories": {"total": "lots"}}`, "invalid_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler()

			req := httptest.NewRequest("POST", "/api/day", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			handler.HandleUpsertDay(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Error.Code)
			}
		})
	}
}
