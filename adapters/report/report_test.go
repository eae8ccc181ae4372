package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"pravaah/domain/access"
	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/ports"
)

func sampleData() ports.ReportData {
	return ports.ReportData{
		SessionID:   "sess-1",
		Role:        access.RoleResearcher,
		GeneratedAt: core.Now(),
		Results: []model.PredictionResult{
			{
				ID:   "res-1",
				Kind: model.KindWQI,
				Metrics: map[string]float64{
					"wqi": 42.5,
				},
				Confidence: 0.8,
				CreatedAt:  core.Now(),
			},
			{
				ID:   "res-2",
				Kind: model.KindDetection,
				Metrics: map[string]float64{
					"particle_count": 63,
					"avg_confidence": 0.71,
				},
				Confidence: 0.71,
				CreatedAt:  core.Now(),
			},
		},
		Alerts: []alert.Alert{
			{
				ID:       "res-1:wqi<50",
				Metric:   "wqi",
				Observed: 42.5,
				Limit:    50,
				Severity: alert.SeverityHigh,
				Message:  "river quality degraded",
				ResultID: "res-1",
			},
		},
	}
}

// TestRenderersRejectEmptyResults tests that every format refuses to
// produce a document with nothing in it.
func TestRenderersRejectEmptyResults(t *testing.T) {
	empty := ports.ReportData{SessionID: "sess-1", Role: access.RolePublic}

	renderers := []ports.ReportRenderer{NewPDFRenderer(), NewExcelRenderer(), NewCSVRenderer()}
	for _, r := range renderers {
		if _, err := r.Render(empty); !errors.Is(err, core.ErrEmptyResults) {
			t.Errorf("%s: expected ErrEmptyResults, got %v", r.Format(), err)
		}
	}
}

// TestPDFRender tests that the PDF renderer emits a valid document
// header for a populated session.
func TestPDFRender(t *testing.T) {
	r := NewPDFRenderer()
	if r.Format() != ports.FormatPDF {
		t.Fatalf("Format = %s, want pdf", r.Format())
	}

	out, err := r.Render(sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

// TestCSVRender tests the row layout: header, one row per metric, one
// row per alert.
func TestCSVRender(t *testing.T) {
	r := NewCSVRenderer()
	if r.Format() != ports.FormatCSV {
		t.Fatalf("Format = %s, want csv", r.Format())
	}

	out, err := r.Render(sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	// Header + 3 metric rows + 1 alert row.
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5:\n%s", len(rows), out)
	}
	if rows[0][0] != "record_type" {
		t.Errorf("header = %v", rows[0])
	}

	var resultRows, alertRows int
	for _, row := range rows[1:] {
		switch row[0] {
		case "result":
			resultRows++
		case "alert":
			alertRows++
		default:
			t.Errorf("unexpected record type %q", row[0])
		}
	}
	if resultRows != 3 || alertRows != 1 {
		t.Errorf("got %d result rows and %d alert rows, want 3 and 1", resultRows, alertRows)
	}
	if !strings.Contains(string(out), "river quality degraded") {
		t.Error("alert message missing from output")
	}
}

// TestExcelRender tests that the workbook opens, has both sheets and
// carries the result rows.
func TestExcelRender(t *testing.T) {
	r := NewExcelRenderer()
	if r.Format() != ports.FormatXLSX {
		t.Fatalf("Format = %s, want xlsx", r.Format())
	}

	out, err := r.Render(sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	joined := strings.Join(sheets, ",")
	if !strings.Contains(joined, "Results") || !strings.Contains(joined, "Alerts") {
		t.Fatalf("sheets = %v, want Results and Alerts", sheets)
	}

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("read Results sheet: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("Results sheet has %d rows, want header plus data", len(rows))
	}
}
