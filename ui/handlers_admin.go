package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/ports"
)

// handleAlerts returns recent alerts with a severity breakdown.
func (a *App) handleAlerts(w http.ResponseWriter, r *http.Request) {
	recent, err := a.alertRepo.ListRecent(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	counts, err := a.alertRepo.CountBySeverity(r.Context())
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": recent,
		"counts": counts,
	})
}

// handleReportDownload renders the session's results as a document.
// An empty session is an error: there is no such thing as an empty
// report.
func (a *App) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	format := ports.ReportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = ports.FormatPDF
	}

	data := a.reports.Snapshot(sess)
	payload, err := a.reports.Render(format, data)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	filename := fmt.Sprintf("pravaah-report-%s.%s", data.GeneratedAt.Time().Format("20060102-150405"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		a.logger.Warn("report download aborted: %v", err)
	}
}

// handleGetThresholds returns the effective threshold configuration.
func (a *App) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	cfg := a.analysis.EffectiveThresholds(r.Context())
	a.respondJSON(w, http.StatusOK, cfg)
}

// handleUpdateThresholds stores admin threshold overrides.
func (a *App) handleUpdateThresholds(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rules []alert.Rule `json:"thresholds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("thresholds", "malformed threshold payload"))
		return
	}
	if err := a.analysis.UpdateThresholds(r.Context(), payload.Rules); err != nil {
		a.renderError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, a.analysis.EffectiveThresholds(r.Context()))
}

// handleListCitizenReports shows submitted contamination reports.
func (a *App) handleListCitizenReports(w http.ResponseWriter, r *http.Request) {
	reports, err := a.citizenReports.ListRecent(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

// handleSystemStatus reports model readiness and session load.
func (a *App) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := a.registry.Status()
	ready := 0
	for _, ok := range status {
		if ok {
			ready++
		}
	}
	wsClients := 0
	if a.hub != nil {
		wsClients = a.hub.Clients()
	}
	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"models":        status,
		"models_ready":  ready,
		"models_total":  len(status),
		"live_sessions": a.sessions.Len(),
		"ws_clients":    wsClients,
	})
}
