package session

import (
	"testing"
	"time"

	"pravaah/domain/access"
	"pravaah/domain/alert"
	"pravaah/domain/model"
)

// TestStoreCreateAndGet tests the basic session lifecycle.
func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Hour)

	s := st.Create(access.RoleResearcher)
	if s.ID == "" {
		t.Fatal("session needs an ID")
	}
	if s.Role != access.RoleResearcher {
		t.Errorf("Role = %s, want researcher", s.Role)
	}
	if s.WhatIf == nil {
		t.Error("WhatIf map should be initialized")
	}

	got, ok := st.Get(s.ID)
	if !ok {
		t.Fatal("session should be retrievable")
	}
	if got.ID != s.ID {
		t.Errorf("got session %s, want %s", got.ID, s.ID)
	}
	if st.Len() != 1 {
		t.Errorf("Len = %d, want 1", st.Len())
	}

	if _, ok := st.Get("missing"); ok {
		t.Error("unknown ID should miss")
	}
}

// TestStoreExpiry tests that an idle session dies and that activity
// keeps it alive.
func TestStoreExpiry(t *testing.T) {
	st := NewStore(50 * time.Millisecond)

	s := st.Create(access.RolePublic)

	// Touch within the TTL, twice: each Get resets the idle clock.
	for i := 0; i < 2; i++ {
		time.Sleep(30 * time.Millisecond)
		if _, ok := st.Get(s.ID); !ok {
			t.Fatalf("session expired despite activity (touch %d)", i+1)
		}
	}

	time.Sleep(70 * time.Millisecond)
	if _, ok := st.Get(s.ID); ok {
		t.Fatal("idle session should have expired")
	}
	if st.Len() != 0 {
		t.Errorf("Len = %d after expiry, want 0", st.Len())
	}
}

// TestStoreSweep tests bulk expiry of idle sessions.
func TestStoreSweep(t *testing.T) {
	st := NewStore(30 * time.Millisecond)

	st.Create(access.RolePublic)
	st.Create(access.RoleAdmin)
	time.Sleep(50 * time.Millisecond)
	live := st.Create(access.RoleGovernment)

	if removed := st.Sweep(); removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if _, ok := st.Get(live.ID); !ok {
		t.Error("fresh session should survive the sweep")
	}
}

// TestStoreDelete tests explicit session teardown.
func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create(access.RoleAdmin)

	st.Delete(s.ID)
	if _, ok := st.Get(s.ID); ok {
		t.Fatal("deleted session should be gone")
	}
	st.Delete(s.ID) // idempotent
}

// TestStateResultHistory tests the per-session result log and the
// latest-of-kind lookup.
func TestStateResultHistory(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create(access.RoleResearcher)

	first := model.PredictionResult{ID: "r1", Kind: model.KindWQI}
	second := model.PredictionResult{ID: "r2", Kind: model.KindDetection}
	third := model.PredictionResult{ID: "r3", Kind: model.KindWQI}

	s.AddResult(first, []alert.Alert{{ID: "a1", Metric: "wqi"}})
	s.AddResult(second, nil)
	s.AddResult(third, nil)

	if len(s.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(s.Results))
	}
	if len(s.Alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(s.Alerts))
	}

	if got := s.LastResult(model.KindWQI); got == nil || got.ID != "r3" {
		t.Errorf("LastResult(wqi) = %v, want r3", got)
	}
	if got := s.LastResult(model.KindDetection); got == nil || got.ID != "r2" {
		t.Errorf("LastResult(detection) = %v, want r2", got)
	}
	if got := s.LastResult(model.KindTwin); got != nil {
		t.Errorf("LastResult(twin) = %v, want nil", got)
	}
}
