package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/ports"
)

// PDFRenderer renders a session snapshot as a printable PDF summary.
type PDFRenderer struct{}

// NewPDFRenderer creates the PDF report renderer
func NewPDFRenderer() ports.ReportRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Format() ports.ReportFormat {
	return ports.FormatPDF
}

// Render produces the PDF. An empty result set is rejected: a report
// with nothing in it is an error, not an empty document.
func (r *PDFRenderer) Render(data ports.ReportData) ([]byte, error) {
	if len(data.Results) == 0 {
		return nil, core.ErrEmptyResults
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pravaah Water Quality Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Pravaah Water Quality Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", data.GeneratedAt.String()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Session: %s", data.SessionID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Role: %s", data.Role.Label()))
	pdf.Ln(10)

	for i, result := range data.Results {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s analysis", i+1, result.Kind))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		if result.InputRef != "" {
			pdf.Cell(0, 5, fmt.Sprintf("Input: %s", result.InputRef))
			pdf.Ln(5)
		}
		pdf.Cell(0, 5, fmt.Sprintf("Confidence: %.2f", result.Confidence))
		pdf.Ln(5)

		for _, name := range sortedMetricNames(result) {
			pdf.Cell(0, 5, fmt.Sprintf("  %s: %.3f", name, result.Metrics[name]))
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}

	if len(data.Alerts) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Alerts")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		for _, a := range data.Alerts {
			pdf.Cell(0, 5, fmt.Sprintf("[%s] %s: observed %.2f against limit %.2f",
				a.Severity, a.Metric, a.Observed, a.Limit))
			pdf.Ln(5)
			if a.Message != "" {
				pdf.Cell(0, 5, fmt.Sprintf("  %s", a.Message))
				pdf.Ln(5)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// sortedMetricNames keeps report output stable across renders.
func sortedMetricNames(result model.PredictionResult) []string {
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
