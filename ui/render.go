package ui

import (
	"encoding/json"
	"net/http"
	"strings"

	"pravaah/domain/core"
)

func (a *App) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Warn("failed to encode response: %v", err)
	}
}

// renderError maps a domain error onto an HTTP status. API routes get
// JSON; page routes get the notice template. Nothing here panics: a
// failed analysis degrades to an error notice, never a dead dashboard.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsUnauthorizedError(err):
		status = http.StatusForbidden
	case core.IsInvalidInputError(err):
		status = http.StatusBadRequest
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsModelUnavailableError(err):
		status = http.StatusServiceUnavailable
	case core.IsRenderError(err):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("request %s %s failed: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("request %s %s rejected: %v", r.Method, r.URL.Path, err)
	}

	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/reports/") {
		a.respondJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	w.WriteHeader(status)
	a.renderTemplate(w, "error.html", map[string]interface{}{
		"Status":  status,
		"Message": err.Error(),
	})
}

func (a *App) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("failed to render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
