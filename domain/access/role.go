package access

import (
	"pravaah/domain/core"
)

// Role is the selected user role for a dashboard session.
type Role string

const (
	RolePublic     Role = "public"
	RoleGovernment Role = "government"
	RoleResearcher Role = "researcher"
	RoleAdmin      Role = "admin"
)

// AllRoles lists every role, least privileged first.
func AllRoles() []Role {
	return []Role{RolePublic, RoleGovernment, RoleResearcher, RoleAdmin}
}

// ParseRole validates a role string from a request.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePublic, RoleGovernment, RoleResearcher, RoleAdmin:
		return Role(s), nil
	}
	return "", core.NewInvalidInputError("role", "unknown role "+s)
}

// Label returns the display name used in the view shell.
func (r Role) Label() string {
	switch r {
	case RolePublic:
		return "Public User"
	case RoleGovernment:
		return "Government Official"
	case RoleResearcher:
		return "Researcher"
	case RoleAdmin:
		return "Admin Panel"
	}
	return string(r)
}

// ConfidenceTier returns the detection confidence floor for a role.
// Public users only see high-confidence detections; researchers see
// research-grade output.
func (r Role) ConfidenceTier() float64 {
	switch r {
	case RolePublic:
		return 0.50
	case RoleGovernment:
		return 0.35
	default:
		return 0.10
	}
}

// View identifies one dashboard page.
type View string

const (
	ViewUploadDetect View = "upload_detect"
	ViewMyReports    View = "my_reports"
	ViewNearby       View = "nearby"
	ViewRiverHealth  View = "river_health"
	ViewAlerts       View = "alerts"
	ViewPolicyTools  View = "policy_tools"
	ViewSpectralLab  View = "spectral_lab"
	ViewModelMetrics View = "model_metrics"
	ViewWhatIf       View = "what_if"
	ViewSystemStatus View = "system_status"
	ViewThresholds   View = "thresholds"
	ViewUserReports  View = "user_reports"
)

// Action identifies one privileged operation.
type Action string

const (
	ActionExportReport     Action = "export_report"
	ActionRunWhatIf        Action = "run_what_if"
	ActionRunBatchAnalysis Action = "run_batch_analysis"
	ActionManageThresholds Action = "manage_thresholds"
	ActionSubmitReport     Action = "submit_report"
)
