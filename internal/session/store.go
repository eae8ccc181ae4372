package session

import (
	"sync"
	"time"

	"pravaah/domain/access"
	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/domain/model"
)

// State holds everything scoped to one interactive dashboard session.
// Discarded when the session expires; nothing here outlives the user.
type State struct {
	ID         core.SessionID
	Role       access.Role
	ActiveView access.View
	Results    []model.PredictionResult
	Alerts     []alert.Alert
	WhatIf     map[string]float64
	CreatedAt  time.Time
	LastSeen   time.Time
}

// AddResult appends a prediction result and its alerts to the session
// history.
func (s *State) AddResult(result model.PredictionResult, alerts []alert.Alert) {
	s.Results = append(s.Results, result)
	s.Alerts = append(s.Alerts, alerts...)
}

// LastResult returns the most recent result of a kind, if any.
func (s *State) LastResult(kind model.Kind) *model.PredictionResult {
	for i := len(s.Results) - 1; i >= 0; i-- {
		if s.Results[i].Kind == kind {
			return &s.Results[i]
		}
	}
	return nil
}

// Store is an in-memory session store. Sessions are keyed by the
// cookie value and expire after the idle TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*State
	ttl      time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		sessions: make(map[core.SessionID]*State),
		ttl:      ttl,
	}
}

// Create starts a new session with the given role.
func (st *Store) Create(role access.Role) *State {
	now := time.Now()
	s := &State{
		ID:        core.SessionID(core.NewID()),
		Role:      role,
		WhatIf:    make(map[string]float64),
		CreatedAt: now,
		LastSeen:  now,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session if it exists and has not expired. Touches
// the idle clock on hit.
func (st *Store) Get(id core.SessionID) (*State, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(s.LastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, false
	}
	s.LastSeen = time.Now()
	return s, true
}

// Delete ends a session.
func (st *Store) Delete(id core.SessionID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep drops expired sessions. Call periodically from the app shell.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if time.Since(s.LastSeen) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
