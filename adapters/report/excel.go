package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pravaah/domain/core"
	"pravaah/ports"
)

// ExcelRenderer renders a session snapshot as an XLSX workbook with
// one sheet for results and one for alerts.
type ExcelRenderer struct{}

// NewExcelRenderer creates the XLSX report renderer
func NewExcelRenderer() ports.ReportRenderer {
	return &ExcelRenderer{}
}

func (r *ExcelRenderer) Format() ports.ReportFormat {
	return ports.FormatXLSX
}

func (r *ExcelRenderer) Render(data ports.ReportData) ([]byte, error) {
	if len(data.Results) == 0 {
		return nil, core.ErrEmptyResults
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeResultsSheet(f, data); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	if err := r.writeAlertsSheet(f, data); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *ExcelRenderer) writeResultsSheet(f *excelize.File, data ports.ReportData) error {
	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []string{"Model", "Input", "Metric", "Value", "Confidence", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, result := range data.Results {
		for _, name := range sortedMetricNames(result) {
			values := []interface{}{
				string(result.Kind),
				result.InputRef,
				name,
				result.Metrics[name],
				result.Confidence,
				result.CreatedAt.String(),
			}
			for c, v := range values {
				cell, _ := excelize.CoordinatesToCellName(c+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}
	return nil
}

func (r *ExcelRenderer) writeAlertsSheet(f *excelize.File, data ports.ReportData) error {
	const sheet = "Alerts"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Severity", "Metric", "Observed", "Limit", "Message", "Result ID"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, a := range data.Alerts {
		values := []interface{}{
			string(a.Severity),
			a.Metric,
			a.Observed,
			a.Limit,
			a.Message,
			string(a.ResultID),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
