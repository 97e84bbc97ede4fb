package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/fdg312/macro-hub/internal/days"
	"github.com/fdg312/macro-hub/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// Generator generates PDF/CSV reports
type Generator struct {
	daysStorage DaysStorage
}

// NewGenerator creates a new report generator
func NewGenerator(daysStorage DaysStorage) *Generator {
	return &Generator{daysStorage: daysStorage}
}

// GenerateReport generates a report and returns the data
func (g *Generator) GenerateReport(ctx context.Context, req CreateReportRequest) ([]byte, error) {
	records, err := g.daysStorage.ListDays(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day records: %w", err)
	}

	switch req.Format {
	case FormatPDF:
		return g.generatePDF(req, records)
	case FormatCSV:
		return g.generateCSV(records)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}

// generateCSV generates a CSV report: one row per recorded day,
// four nutrient columns each with total/target/variant/band
func (g *Generator) generateCSV(records []storage.DayRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date"}
	for _, name := range []string{"calories", "carbs", "fat", "protein"} {
		header = append(header,
			name+"_total",
			name+"_target",
			name+"_variant",
			name+"_band",
		)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range records {
		row := []string{rec.Date}
		for _, m := range []storage.NutrientMetric{rec.Calories, rec.Carbs, rec.Fat, rec.Protein} {
			row = append(row,
				strconv.Itoa(m.Total),
				strconv.Itoa(m.Target),
				strconv.Itoa(m.Variant),
				days.Classify(m.Total, m.Target, m.Variant).String(),
			)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF generates a PDF report
func (g *Generator) generatePDF(req CreateReportRequest, records []storage.DayRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Macro Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", req.From, req.To))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Recorded days: %d", len(records)))
	pdf.Ln(12)

	g.drawDaysTable(pdf, records)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// drawDaysTable draws one row per recorded day with total/target per nutrient
func (g *Generator) drawDaysTable(pdf *gofpdf.Fpdf, records []storage.DayRecord) {
	pdf.SetFont("Arial", "B", 8)

	pdf.CellFormat(26, 6, "Date", "1", 0, "C", false, 0, "")
	for _, name := range []string{"Calories", "Carbs", "Fat", "Protein"} {
		pdf.CellFormat(40, 6, name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, rec := range records {
		pdf.CellFormat(26, 6, rec.Date, "1", 0, "C", false, 0, "")
		for _, m := range []storage.NutrientMetric{rec.Calories, rec.Carbs, rec.Fat, rec.Protein} {
			cell := fmt.Sprintf("%d / %d (%s)", m.Total, m.Target, bandLabel(m))
			pdf.CellFormat(40, 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func bandLabel(m storage.NutrientMetric) string {
	switch days.Classify(m.Total, m.Target, m.Variant) {
	case days.BelowRange:
		return "below"
	case days.AboveRange:
		return "above"
	default:
		return "ok"
	}
}

// DaysStorage interface for generator
type DaysStorage interface {
	ListDays(ctx context.Context, from, to string) ([]storage.DayRecord, error)
}
