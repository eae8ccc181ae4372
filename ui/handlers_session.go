package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pravaah/domain/access"
	"pravaah/domain/core"
)

// handleRoleSelect renders the role picker, or sends an active session
// straight to its dashboard.
func (a *App) handleRoleSelect(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := a.sessions.Get(core.SessionID(cookie.Value)); ok {
			http.Redirect(w, r, a.homeView(sess.Role), http.StatusSeeOther)
			return
		}
	}
	a.renderTemplate(w, "role_select.html", map[string]interface{}{
		"Roles": access.AllRoles(),
	})
}

// handleStartSession creates a session for the chosen role.
func (a *App) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("form", "malformed form"))
		return
	}
	role, err := access.ParseRole(r.FormValue("role"))
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	sess := a.sessions.Create(role)
	setSessionCookie(w, sess.ID)
	a.logger.Info("session %s started as %s", sess.ID, role)
	http.Redirect(w, r, a.homeView(role), http.StatusSeeOther)
}

// handleEndSession drops the session and returns to the role picker.
func (a *App) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		a.sessions.Delete(core.SessionID(cookie.Value))
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleView renders one dashboard page after the role gate.
func (a *App) handleView(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	view := access.View(chi.URLParam(r, "view"))

	if err := a.policy.Authorize(sess.Role, view); err != nil {
		a.renderError(w, r, err)
		return
	}
	sess.ActiveView = view

	a.renderTemplate(w, "view.html", map[string]interface{}{
		"Role":        sess.Role,
		"RoleLabel":   sess.Role.Label(),
		"Views":       a.policy.ViewsFor(sess.Role),
		"Active":      view,
		"ResultCount": len(sess.Results),
		"AlertCount":  len(sess.Alerts),
		"Formats":     a.reports.Formats(),
	})
}

// homeView picks the landing page for a role.
func (a *App) homeView(role access.Role) string {
	views := a.policy.ViewsFor(role)
	if len(views) == 0 {
		return "/"
	}
	return fmt.Sprintf("/views/%s", views[0])
}
