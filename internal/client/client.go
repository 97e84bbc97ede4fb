package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fdg312/macro-hub/internal/days"
	"github.com/fdg312/macro-hub/internal/reports"
	"github.com/google/uuid"
)

// APIError is a decoded server error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s message=%s", e.Status, e.Code, e.Message)
}

// Client is a typed HTTP client for the macro-hub API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Healthz checks the server health endpoint
func (c *Client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthz: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// GetDay fetches the record for a date. An empty date returns the earliest
// recorded day (or a zero record when the store is empty).
func (c *Client) GetDay(ctx context.Context, date string) (*days.DayRecordDTO, error) {
	url := c.baseURL + "/api/day"
	if date != "" {
		url += "?date=" + date
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var record days.DayRecordDTO
	if err := c.doJSON(req, http.StatusOK, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertDay saves the full record for its date
func (c *Client) UpsertDay(ctx context.Context, record *days.DayRecordDTO) error {
	body := days.UpsertDayRequest{
		Date:     record.Date,
		Calories: record.Calories,
		Carbs:    record.Carbs,
		Fat:      record.Fat,
		Protein:  record.Protein,
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/day", body)
	if err != nil {
		return err
	}

	var ack days.UpsertDayResponse
	if err := c.doJSON(req, http.StatusOK, &ack); err != nil {
		return err
	}
	if ack.Message != "ok" {
		return fmt.Errorf("unexpected upsert ack: %q", ack.Message)
	}
	return nil
}

// CreateReport generates a report for a date range
func (c *Client) CreateReport(ctx context.Context, createReq reports.CreateReportRequest) (*reports.ReportDTO, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/reports", createReq)
	if err != nil {
		return nil, err
	}

	var dto reports.ReportDTO
	if err := c.doJSON(req, http.StatusCreated, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ListReports returns generated reports, newest first
func (c *Client) ListReports(ctx context.Context) ([]reports.ReportDTO, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reports", nil)
	if err != nil {
		return nil, err
	}

	var list reports.ReportsResponse
	if err := c.doJSON(req, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list.Reports, nil
}

// DownloadReport fetches the raw report bytes
func (c *Client) DownloadReport(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	url := fmt.Sprintf("%s/api/reports/%s/download", c.baseURL, id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// DeleteReport deletes a report
func (c *Client) DeleteReport(ctx context.Context, id uuid.UUID) error {
	url := fmt.Sprintf("%s/api/reports/%s", c.baseURL, id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return decodeAPIError(resp)
	}
	return nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) doJSON(req *http.Request, wantStatus int, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	var envelope days.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&envelope); err != nil || envelope.Error.Code == "" {
		return &APIError{Status: resp.StatusCode, Code: "unknown", Message: "unexpected response"}
	}
	return &APIError{
		Status:  resp.StatusCode,
		Code:    envelope.Error.Code,
		Message: envelope.Error.Message,
	}
}
