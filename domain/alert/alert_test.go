package alert

import (
	"reflect"
	"testing"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

func wqiResult(score float64) *model.PredictionResult {
	return &model.PredictionResult{
		ID:      core.ResultID("result-1"),
		Kind:    model.KindWQI,
		Metrics: map[string]float64{"wqi": score},
	}
}

// TestComparatorHolds tests each comparator against boundary values
func TestComparatorHolds(t *testing.T) {
	tests := []struct {
		comparator Comparator
		observed   float64
		limit      float64
		expected   bool
	}{
		{CompGT, 51, 50, true},
		{CompGT, 50, 50, false},
		{CompGTE, 50, 50, true},
		{CompGTE, 49.9, 50, false},
		{CompLT, 49.9, 50, true},
		{CompLT, 50, 50, false},
		{CompLTE, 50, 50, true},
		{CompLTE, 50.1, 50, false},
		{Comparator("!="), 1, 2, false}, // unknown comparator never holds
	}

	for _, test := range tests {
		got := test.comparator.Holds(test.observed, test.limit)
		if got != test.expected {
			t.Errorf("%g %s %g: expected %v, got %v",
				test.observed, test.comparator, test.limit, test.expected, got)
		}
	}
}

// TestEvaluateSingleViolation tests that a WQI of 40 against a
// "wqi < 50" rule yields exactly one high alert.
func TestEvaluateSingleViolation(t *testing.T) {
	cfg := Config{Rules: []Rule{
		{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: SeverityHigh},
	}}

	alerts := Evaluate(wqiResult(40), cfg)
	if len(alerts) != 1 {
		t.Fatalf("Expected exactly 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Severity != SeverityHigh {
		t.Errorf("Expected high severity, got %s", a.Severity)
	}
	if a.Observed != 40 || a.Limit != 50 {
		t.Errorf("Expected observed=40 limit=50, got observed=%g limit=%g", a.Observed, a.Limit)
	}
	if a.ResultID != "result-1" {
		t.Errorf("Alert not linked to result: %s", a.ResultID)
	}
}

// TestEvaluateBoundary tests that an observation equal to a strict
// limit raises nothing.
func TestEvaluateBoundary(t *testing.T) {
	cfg := Config{Rules: []Rule{
		{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: SeverityHigh},
	}}
	if alerts := Evaluate(wqiResult(50), cfg); len(alerts) != 0 {
		t.Errorf("Expected no alerts at the boundary, got %d", len(alerts))
	}
}

// TestEvaluateDeterministic tests that repeated evaluation yields
// identical alert sets, IDs included.
func TestEvaluateDeterministic(t *testing.T) {
	cfg := Config{Rules: []Rule{
		{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: SeverityHigh},
		{Metric: "wqi", Comparator: CompLT, Limit: 45, Severity: SeverityCritical},
	}}

	first := Evaluate(wqiResult(40), cfg)
	second := Evaluate(wqiResult(40), cfg)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Evaluation not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(first))
	}
	if first[0].ID == first[1].ID {
		t.Error("Distinct rules produced the same alert ID")
	}
}

// TestEvaluateSkipsMissingMetrics tests that rules for metrics the
// result does not carry are skipped silently.
func TestEvaluateSkipsMissingMetrics(t *testing.T) {
	cfg := Config{Rules: []Rule{
		{Metric: "particle_count", Comparator: CompGT, Limit: 50, Severity: SeverityWarning},
		{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: SeverityHigh},
	}}

	alerts := Evaluate(wqiResult(30), cfg)
	if len(alerts) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Metric != "wqi" {
		t.Errorf("Expected wqi alert, got %s", alerts[0].Metric)
	}
}

// TestEvaluateNilResult tests the nil guard
func TestEvaluateNilResult(t *testing.T) {
	cfg := Config{Rules: []Rule{{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: SeverityHigh}}}
	if alerts := Evaluate(nil, cfg); alerts != nil {
		t.Errorf("Expected nil for nil result, got %v", alerts)
	}
}

// TestBySeverity tests severity ordering with stable rule order within
// a tier.
func TestBySeverity(t *testing.T) {
	alerts := []Alert{
		{ID: "a", Severity: SeverityWarning},
		{ID: "b", Severity: SeverityCritical},
		{ID: "c", Severity: SeverityWarning},
		{ID: "d", Severity: SeverityHigh},
	}

	sorted := BySeverity(alerts)
	wantOrder := []core.AlertID{"b", "d", "a", "c"}
	for i, want := range wantOrder {
		if sorted[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, sorted[i].ID)
		}
	}
	if alerts[0].ID != "a" {
		t.Error("BySeverity mutated its input")
	}
}

// TestRuleValidate tests rule validation
func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		hasError bool
	}{
		{"valid", Rule{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: SeverityHigh}, false},
		{"missing metric", Rule{Comparator: CompLT, Limit: 50, Severity: SeverityHigh}, true},
		{"bad comparator", Rule{Metric: "wqi", Comparator: "!=", Limit: 50, Severity: SeverityHigh}, true},
		{"bad severity", Rule{Metric: "wqi", Comparator: CompLT, Limit: 50, Severity: "panic"}, true},
	}

	for _, test := range tests {
		err := test.rule.Validate()
		if test.hasError && err == nil {
			t.Errorf("%s: expected error, got none", test.name)
		}
		if !test.hasError && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}
