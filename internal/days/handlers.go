package days

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler handles HTTP requests for day records.
type Handler struct {
	service *Service
}

// NewHandler creates a new days handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetDay handles GET /api/day?date=
// Without ?date the earliest stored record (or a zero default) is returned.
// A date with no record answers 200 with a default record, never 404.
func (h *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	record, err := h.service.GetDay(r.Context(), dateStr)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "invalid_date", "Invalid date format, use YYYY-MM-DD or an ISO-8601 datetime")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get day record")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(record)
}

// HandleUpsertDay handles POST /api/day
func (h *Handler) HandleUpsertDay(w http.ResponseWriter, r *http.Request) {
	var req UpsertDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid request body")
		return
	}

	if _, err := h.service.UpsertDay(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrMissingDate):
			writeError(w, http.StatusBadRequest, "missing_date", "date is required")
		case errors.Is(err, ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "invalid_date", "Invalid date format, use YYYY-MM-DD or an ISO-8601 datetime")
		case errors.Is(err, ErrNegativeVariant):
			writeError(w, http.StatusBadRequest, "invalid_variant", "variant must be non-negative")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save day record")
		}
		return
	}

	// Создание и перезапись отвечают одинаково
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(UpsertDayResponse{Message: "ok"})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
