package ui

import (
	"context"
	"net/http"

	"pravaah/domain/access"
	"pravaah/domain/core"
	"pravaah/internal/session"
)

const sessionCookie = "pravaah_session"

type contextKey string

const sessionKey contextKey = "session"

// withSession resolves the session cookie and rejects requests without
// a live session. Handlers downstream can assume currentSession works.
func (a *App) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			a.renderError(w, r, core.ErrSessionNotFound)
			return
		}
		sess, ok := a.sessions.Get(core.SessionID(cookie.Value))
		if !ok {
			clearSessionCookie(w)
			a.renderError(w, r, core.ErrSessionNotFound)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentSession returns the session placed by withSession.
func currentSession(r *http.Request) *session.State {
	sess, _ := r.Context().Value(sessionKey).(*session.State)
	return sess
}

// requireView gates a handler on view access for the session role.
func (a *App) requireView(view access.View, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if err := a.policy.Authorize(sess.Role, view); err != nil {
			a.renderError(w, r, err)
			return
		}
		next(w, r)
	}
}

// requireAction gates a handler on a privileged operation.
func (a *App) requireAction(action access.Action, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if err := a.policy.AuthorizeAction(sess.Role, action); err != nil {
			a.renderError(w, r, err)
			return
		}
		next(w, r)
	}
}

func setSessionCookie(w http.ResponseWriter, id core.SessionID) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    string(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
