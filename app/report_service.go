package app

import (
	"pravaah/domain/core"
	"pravaah/internal/session"
	"pravaah/ports"
)

// ReportService turns a session's accumulated results into a document
// in one of the registered formats.
type ReportService struct {
	renderers map[ports.ReportFormat]ports.ReportRenderer
}

// NewReportService creates a report service over the given renderers.
func NewReportService(renderers ...ports.ReportRenderer) *ReportService {
	m := make(map[ports.ReportFormat]ports.ReportRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &ReportService{renderers: m}
}

// Formats lists the registered report formats.
func (s *ReportService) Formats() []ports.ReportFormat {
	out := make([]ports.ReportFormat, 0, len(s.renderers))
	for _, f := range []ports.ReportFormat{ports.FormatPDF, ports.FormatXLSX, ports.FormatCSV} {
		if _, ok := s.renderers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Snapshot captures the session state as immutable report data.
func (s *ReportService) Snapshot(sess *session.State) ports.ReportData {
	data := ports.ReportData{
		SessionID:   sess.ID,
		Role:        sess.Role,
		GeneratedAt: core.Now(),
	}
	data.Results = append(data.Results, sess.Results...)
	data.Alerts = append(data.Alerts, sess.Alerts...)
	return data
}

// Render serializes the report data in the requested format. An empty
// result set fails with a render error rather than producing an empty
// document.
func (s *ReportService) Render(format ports.ReportFormat, data ports.ReportData) ([]byte, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, core.NewInvalidInputError("format", "no renderer for "+string(format))
	}
	if len(data.Results) == 0 {
		return nil, core.ErrEmptyResults
	}
	return renderer.Render(data)
}
