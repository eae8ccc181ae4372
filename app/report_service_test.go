package app

import (
	"errors"
	"testing"

	"pravaah/domain/access"
	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/internal/session"
	"pravaah/ports"
)

// stubRenderer records what it was asked to render.
type stubRenderer struct {
	format   ports.ReportFormat
	rendered *ports.ReportData
}

func (r *stubRenderer) Format() ports.ReportFormat { return r.format }

func (r *stubRenderer) Render(data ports.ReportData) ([]byte, error) {
	r.rendered = &data
	return []byte("document"), nil
}

// TestRenderEmptyResults tests that a report over an empty session
// fails instead of producing an empty document.
func TestRenderEmptyResults(t *testing.T) {
	svc := NewReportService(&stubRenderer{format: ports.FormatPDF})

	data := ports.ReportData{SessionID: "s1", Role: access.RolePublic}
	_, err := svc.Render(ports.FormatPDF, data)
	if err == nil {
		t.Fatal("Expected error for empty result set")
	}
	if !errors.Is(err, core.ErrEmptyResults) {
		t.Errorf("Expected ErrEmptyResults, got %v", err)
	}
	if !core.IsRenderError(err) {
		t.Errorf("Empty result error should classify as render error, got %v", err)
	}
}

// TestRenderUnknownFormat tests the format gate
func TestRenderUnknownFormat(t *testing.T) {
	svc := NewReportService(&stubRenderer{format: ports.FormatPDF})
	data := ports.ReportData{Results: []model.PredictionResult{{ID: "r1"}}}
	if _, err := svc.Render(ports.FormatXLSX, data); err == nil {
		t.Error("Expected error for unregistered format")
	}
}

// TestSnapshotCopiesSession tests that later session activity does not
// bleed into an already-taken snapshot.
func TestSnapshotCopiesSession(t *testing.T) {
	svc := NewReportService(&stubRenderer{format: ports.FormatPDF})
	store := session.NewStore(0)
	sess := store.Create(access.RoleResearcher)
	sess.AddResult(model.PredictionResult{ID: "r1", Kind: model.KindWQI}, []alert.Alert{{ID: "a1"}})

	data := svc.Snapshot(sess)
	sess.AddResult(model.PredictionResult{ID: "r2", Kind: model.KindWQI}, nil)

	if len(data.Results) != 1 {
		t.Errorf("Snapshot grew with the session: %d results", len(data.Results))
	}
	if data.SessionID != sess.ID || data.Role != access.RoleResearcher {
		t.Error("Snapshot lost session identity")
	}
	if len(data.Alerts) != 1 {
		t.Errorf("Expected 1 alert in snapshot, got %d", len(data.Alerts))
	}
}

// TestFormatsOrder tests that formats list in a stable order
func TestFormatsOrder(t *testing.T) {
	svc := NewReportService(
		&stubRenderer{format: ports.FormatCSV},
		&stubRenderer{format: ports.FormatPDF},
	)
	formats := svc.Formats()
	if len(formats) != 2 || formats[0] != ports.FormatPDF || formats[1] != ports.FormatCSV {
		t.Errorf("Unexpected format order: %v", formats)
	}
}
