package access

import (
	"testing"

	"pravaah/domain/core"
)

// TestDefaultPolicyNoLeakage tests that privileged surfaces never leak
// to lower roles.
func TestDefaultPolicyNoLeakage(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		role Role
		view View
	}{
		{RolePublic, ViewThresholds},
		{RolePublic, ViewSystemStatus},
		{RolePublic, ViewRiverHealth},
		{RolePublic, ViewSpectralLab},
		{RoleGovernment, ViewThresholds},
		{RoleGovernment, ViewSystemStatus},
		{RoleResearcher, ViewThresholds},
		{RoleResearcher, ViewUserReports},
		{RoleResearcher, ViewRiverHealth},
	}

	for _, test := range tests {
		if p.CanView(test.role, test.view) {
			t.Errorf("Role %s should not see view %s", test.role, test.view)
		}
		if err := p.Authorize(test.role, test.view); !core.IsUnauthorizedError(err) {
			t.Errorf("Authorize(%s, %s): expected unauthorized error, got %v", test.role, test.view, err)
		}
	}
}

// TestDefaultPolicyActions tests action gating per role
func TestDefaultPolicyActions(t *testing.T) {
	p := DefaultPolicy()

	if p.Can(RolePublic, ActionManageThresholds) {
		t.Error("Public role must not manage thresholds")
	}
	if p.Can(RolePublic, ActionRunWhatIf) {
		t.Error("Public role must not run what-if")
	}
	if p.Can(RoleGovernment, ActionRunWhatIf) {
		t.Error("Government role must not run what-if")
	}
	if !p.Can(RoleGovernment, ActionRunBatchAnalysis) {
		t.Error("Government role should run batch analysis")
	}
	if !p.Can(RoleAdmin, ActionManageThresholds) {
		t.Error("Admin role should manage thresholds")
	}
	if !p.Can(RolePublic, ActionSubmitReport) {
		t.Error("Public role should submit citizen reports")
	}
}

// TestViewsForReturnsCopy tests that callers cannot widen the policy
// through the returned slice.
func TestViewsForReturnsCopy(t *testing.T) {
	p := DefaultPolicy()
	views := p.ViewsFor(RolePublic)
	if len(views) == 0 {
		t.Fatal("Public role has no views")
	}
	views[0] = ViewThresholds
	if p.CanView(RolePublic, ViewThresholds) {
		t.Error("Mutating ViewsFor result widened the policy")
	}
}

// TestNewPolicyRejectsUnknownNames tests startup validation of the
// policy file.
func TestNewPolicyRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name string
		file PolicyFile
	}{
		{"unknown role", PolicyFile{Roles: map[string]struct {
			Views   []string `yaml:"views"`
			Actions []string `yaml:"actions"`
		}{"superuser": {Views: []string{"alerts"}}}}},
		{"unknown view", PolicyFile{Roles: map[string]struct {
			Views   []string `yaml:"views"`
			Actions []string `yaml:"actions"`
		}{"admin": {Views: []string{"root_console"}}}}},
		{"unknown action", PolicyFile{Roles: map[string]struct {
			Views   []string `yaml:"views"`
			Actions []string `yaml:"actions"`
		}{"admin": {Actions: []string{"drop_tables"}}}}},
	}

	for _, test := range tests {
		if _, err := NewPolicy(test.file); err == nil {
			t.Errorf("%s: expected error, got none", test.name)
		}
	}
}

// TestConfidenceTier tests the per-role detection confidence floor
func TestConfidenceTier(t *testing.T) {
	tests := []struct {
		role     Role
		expected float64
	}{
		{RolePublic, 0.50},
		{RoleGovernment, 0.35},
		{RoleResearcher, 0.10},
		{RoleAdmin, 0.10},
	}
	for _, test := range tests {
		if got := test.role.ConfidenceTier(); got != test.expected {
			t.Errorf("%s: expected tier %g, got %g", test.role, test.expected, got)
		}
	}
}

// TestParseRole tests role parsing
func TestParseRole(t *testing.T) {
	if _, err := ParseRole("government"); err != nil {
		t.Errorf("Unexpected error parsing valid role: %v", err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Error("Expected error for unknown role")
	}
}
