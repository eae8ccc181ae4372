package access

import (
	"fmt"

	"pravaah/domain/core"
)

// Policy maps each role onto its permitted views and actions. Loaded
// once at startup and read-only afterwards.
type Policy struct {
	views   map[Role][]View
	actions map[Role][]Action
}

// PolicyFile is the YAML shape for a role policy.
type PolicyFile struct {
	Roles map[string]struct {
		Views   []string `yaml:"views"`
		Actions []string `yaml:"actions"`
	} `yaml:"roles"`
}

// DefaultPolicy returns the compiled-in role policy matching the
// original dashboard layout.
func DefaultPolicy() *Policy {
	return &Policy{
		views: map[Role][]View{
			RolePublic: {ViewUploadDetect, ViewMyReports, ViewNearby},
			RoleGovernment: {
				ViewRiverHealth, ViewAlerts, ViewPolicyTools, ViewUploadDetect, ViewNearby,
			},
			RoleResearcher: {
				ViewSpectralLab, ViewUploadDetect, ViewModelMetrics, ViewWhatIf, ViewMyReports,
			},
			RoleAdmin: {
				ViewSystemStatus, ViewThresholds, ViewUserReports, ViewRiverHealth,
				ViewAlerts, ViewSpectralLab, ViewWhatIf, ViewUploadDetect,
			},
		},
		actions: map[Role][]Action{
			RolePublic:     {ActionSubmitReport, ActionExportReport},
			RoleGovernment: {ActionExportReport, ActionRunBatchAnalysis, ActionSubmitReport},
			RoleResearcher: {ActionExportReport, ActionRunWhatIf},
			RoleAdmin: {
				ActionExportReport, ActionRunWhatIf, ActionRunBatchAnalysis,
				ActionManageThresholds, ActionSubmitReport,
			},
		},
	}
}

// NewPolicy builds a policy from a decoded policy file. Unknown roles,
// views or actions are rejected so a typo cannot silently widen access.
func NewPolicy(file PolicyFile) (*Policy, error) {
	p := &Policy{
		views:   make(map[Role][]View),
		actions: make(map[Role][]Action),
	}
	for name, entry := range file.Roles {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		for _, v := range entry.Views {
			view := View(v)
			if !knownViews[view] {
				return nil, core.NewInvalidInputError("views", fmt.Sprintf("unknown view %q for role %s", v, role))
			}
			p.views[role] = append(p.views[role], view)
		}
		for _, a := range entry.Actions {
			action := Action(a)
			if !knownActions[action] {
				return nil, core.NewInvalidInputError("actions", fmt.Sprintf("unknown action %q for role %s", a, role))
			}
			p.actions[role] = append(p.actions[role], action)
		}
	}
	return p, nil
}

var knownViews = map[View]bool{
	ViewUploadDetect: true, ViewMyReports: true, ViewNearby: true,
	ViewRiverHealth: true, ViewAlerts: true, ViewPolicyTools: true,
	ViewSpectralLab: true, ViewModelMetrics: true, ViewWhatIf: true,
	ViewSystemStatus: true, ViewThresholds: true, ViewUserReports: true,
}

var knownActions = map[Action]bool{
	ActionExportReport: true, ActionRunWhatIf: true, ActionRunBatchAnalysis: true,
	ActionManageThresholds: true, ActionSubmitReport: true,
}

// ViewsFor returns the ordered permitted view set for a role. The
// returned slice is a copy; callers cannot widen the policy.
func (p *Policy) ViewsFor(role Role) []View {
	views := p.views[role]
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// CanView reports whether the role may render the view.
func (p *Policy) CanView(role Role, view View) bool {
	for _, v := range p.views[role] {
		if v == view {
			return true
		}
	}
	return false
}

// Can reports whether the role may perform the action.
func (p *Policy) Can(role Role, action Action) bool {
	for _, a := range p.actions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Authorize returns an authorization error unless the role may render
// the view.
func (p *Policy) Authorize(role Role, view View) error {
	if !p.CanView(role, view) {
		return core.NewUnauthorizedError(string(role), "view "+string(view))
	}
	return nil
}

// AuthorizeAction returns an authorization error unless the role may
// perform the action.
func (p *Policy) AuthorizeAction(role Role, action Action) error {
	if !p.Can(role, action) {
		return core.NewUnauthorizedError(string(role), "action "+string(action))
	}
	return nil
}
