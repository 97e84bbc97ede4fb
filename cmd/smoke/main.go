package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/macro-hub/internal/client"
	"github.com/fdg312/macro-hub/internal/days"
	"github.com/fdg312/macro-hub/internal/reports"
	"github.com/google/uuid"
)

const defaultAPIBase = "http://localhost:8080"

var (
	api      *client.Client
	testDate string
	reportID uuid.UUID
)

func main() {
	fmt.Println("=== Macro Hub E2E Smoke Test ===")
	fmt.Println()

	apiBase := getEnv("API_BASE_URL", defaultAPIBase)
	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Println()

	api = client.New(apiBase)
	testDate = time.Now().UTC().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Get Day (default)", testGetDayDefault},
		{"Upsert Day", testUpsertDay},
		{"Get Day (round trip)", testGetDayRoundTrip},
		{"Navigate Days", testNavigateDays},
		{"Create Report (CSV)", testCreateReportCSV},
		{"List Reports", testListReports},
		{"Download Report", testDownloadReport},
		{"Delete Report", testDeleteReport},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	return api.Healthz(context.Background())
}

func testGetDayDefault() error {
	record, err := api.GetDay(context.Background(), testDate)
	if err != nil {
		return err
	}
	if record.Date != testDate {
		return fmt.Errorf("expected date %s, got %s", testDate, record.Date)
	}
	return nil
}

func testUpsertDay() error {
	record := days.DayRecordDTO{
		Date:     testDate,
		Calories: days.Metric{Label: days.LabelCalories, Total: 2000, Target: 1900, Variant: 150},
		Carbs:    days.Metric{Label: days.LabelCarbs, Total: 150, Target: 160, Variant: 20},
		Fat:      days.Metric{Label: days.LabelFat, Total: 60, Target: 70, Variant: 10},
		Protein:  days.Metric{Label: days.LabelProtein, Total: 120, Target: 130, Variant: 15},
	}
	return api.UpsertDay(context.Background(), &record)
}

func testGetDayRoundTrip() error {
	record, err := api.GetDay(context.Background(), testDate)
	if err != nil {
		return err
	}
	if record.Calories.Total != 2000 {
		return fmt.Errorf("expected calories.total=2000, got %d", record.Calories.Total)
	}
	if record.ID == nil {
		return fmt.Errorf("persisted record has no id")
	}
	return nil
}

func testNavigateDays() error {
	ctrl := client.NewController(api)
	ctx := context.Background()

	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	if err := ctrl.NavigateNext(ctx); err != nil {
		return err
	}
	if err := ctrl.NavigatePrevious(ctx); err != nil {
		return err
	}
	return nil
}

func testCreateReportCSV() error {
	report, err := api.CreateReport(context.Background(), reports.CreateReportRequest{
		From:   testDate,
		To:     testDate,
		Format: reports.FormatCSV,
	})
	if err != nil {
		return err
	}
	if report.Status != reports.StatusReady {
		return fmt.Errorf("expected status ready, got %s", report.Status)
	}
	reportID = report.ID
	return nil
}

func testListReports() error {
	list, err := api.ListReports(context.Background())
	if err != nil {
		return err
	}
	for _, r := range list {
		if r.ID == reportID {
			return nil
		}
	}
	return fmt.Errorf("created report %s not in list", reportID)
}

func testDownloadReport() error {
	data, contentType, err := api.DownloadReport(context.Background(), reportID)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(contentType, "text/csv") {
		return fmt.Errorf("expected text/csv, got %s", contentType)
	}
	if !strings.HasPrefix(string(data), "date,") {
		return fmt.Errorf("unexpected CSV payload")
	}
	return nil
}

func testDeleteReport() error {
	return api.DeleteReport(context.Background(), reportID)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
