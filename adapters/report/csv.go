package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"pravaah/domain/core"
	"pravaah/ports"
)

// CSVRenderer renders a session snapshot as a flat CSV, one row per
// result metric with alert rows appended.
type CSVRenderer struct{}

// NewCSVRenderer creates the CSV report renderer
func NewCSVRenderer() ports.ReportRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Format() ports.ReportFormat {
	return ports.FormatCSV
}

func (r *CSVRenderer) Render(data ports.ReportData) ([]byte, error) {
	if len(data.Results) == 0 {
		return nil, core.ErrEmptyResults
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"record_type", "model", "metric", "value", "confidence", "severity", "message", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}

	for _, result := range data.Results {
		for _, name := range sortedMetricNames(result) {
			row := []string{
				"result",
				string(result.Kind),
				name,
				strconv.FormatFloat(result.Metrics[name], 'f', -1, 64),
				strconv.FormatFloat(result.Confidence, 'f', 3, 64),
				"",
				"",
				result.CreatedAt.String(),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
			}
		}
	}

	for _, a := range data.Alerts {
		row := []string{
			"alert",
			"",
			a.Metric,
			strconv.FormatFloat(a.Observed, 'f', -1, 64),
			"",
			string(a.Severity),
			a.Message,
			a.CreatedAt.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
