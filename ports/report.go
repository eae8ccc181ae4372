package ports

import (
	"pravaah/domain/access"
	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/domain/model"
)

// ReportFormat selects a report renderer.
type ReportFormat string

const (
	FormatPDF  ReportFormat = "pdf"
	FormatXLSX ReportFormat = "xlsx"
	FormatCSV  ReportFormat = "csv"
)

// ContentType returns the MIME type served for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// ReportData is the session snapshot a renderer serializes. Renderers
// treat it as read-only.
type ReportData struct {
	SessionID   core.SessionID
	Role        access.Role
	GeneratedAt core.Timestamp
	Results     []model.PredictionResult
	Alerts      []alert.Alert
}

// ReportRenderer turns a session result set into document bytes. Pure
// function of its input: no I/O beyond the returned bytes.
type ReportRenderer interface {
	Format() ReportFormat
	Render(data ReportData) ([]byte, error)
}
