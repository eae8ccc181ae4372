package alert

import (
	"fmt"
	"sort"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// Severity grades an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Comparator is the relation a metric is tested against its limit.
type Comparator string

const (
	CompGT  Comparator = ">"
	CompGTE Comparator = ">="
	CompLT  Comparator = "<"
	CompLTE Comparator = "<="
)

// Holds reports whether observed <comparator> limit.
func (c Comparator) Holds(observed, limit float64) bool {
	switch c {
	case CompGT:
		return observed > limit
	case CompGTE:
		return observed >= limit
	case CompLT:
		return observed < limit
	case CompLTE:
		return observed <= limit
	}
	return false
}

// Valid reports whether the comparator is one of the four supported
// relations.
func (c Comparator) Valid() bool {
	switch c {
	case CompGT, CompGTE, CompLT, CompLTE:
		return true
	}
	return false
}

// Rule is one configured threshold: raise an alert of Severity when
// the named metric violates (comparator, limit).
type Rule struct {
	Metric     string     `yaml:"metric" json:"metric"`
	Comparator Comparator `yaml:"comparator" json:"comparator"`
	Limit      float64    `yaml:"limit" json:"limit"`
	Severity   Severity   `yaml:"severity" json:"severity"`
	Message    string     `yaml:"message" json:"message"`
}

// Validate rejects malformed rules at load time.
func (r Rule) Validate() error {
	if r.Metric == "" {
		return core.NewInvalidInputError("metric", "threshold rule needs a metric name")
	}
	if !r.Comparator.Valid() {
		return core.NewInvalidInputError("comparator", fmt.Sprintf("unsupported comparator %q", r.Comparator))
	}
	switch r.Severity {
	case SeverityInfo, SeverityWarning, SeverityHigh, SeverityCritical:
	default:
		return core.NewInvalidInputError("severity", fmt.Sprintf("unknown severity %q", r.Severity))
	}
	return nil
}

// Config is the full threshold configuration, static after startup.
type Config struct {
	Rules []Rule `yaml:"thresholds" json:"thresholds"`
}

// Validate checks every rule.
func (c Config) Validate() error {
	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("threshold rule %d: %w", i, err)
		}
	}
	return nil
}

// Alert records one threshold violation. Transient: displayed, logged
// and optionally persisted, never mutated afterwards.
type Alert struct {
	ID        core.AlertID   `json:"id" db:"id"`
	Metric    string         `json:"metric" db:"metric"`
	Observed  float64        `json:"observed" db:"observed"`
	Limit     float64        `json:"threshold" db:"threshold"`
	Severity  Severity       `json:"severity" db:"severity"`
	Message   string         `json:"message" db:"message"`
	ResultID  core.ResultID  `json:"result_id" db:"result_id"`
	CreatedAt core.Timestamp `json:"created_at" db:"created_at"`
}

// Evaluate compares a prediction result against the threshold config
// and returns one alert per violated rule. Deterministic and
// stateless: the same result and config always yield the same alerts,
// ordered by rule position. Metrics the result does not carry are
// skipped; no deduplication is applied.
func Evaluate(result *model.PredictionResult, cfg Config) []Alert {
	if result == nil {
		return nil
	}
	var alerts []Alert
	for _, rule := range cfg.Rules {
		observed, ok := result.Metric(rule.Metric)
		if !ok {
			continue
		}
		if !rule.Comparator.Holds(observed, rule.Limit) {
			continue
		}
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("%s %s %.2f (observed %.2f)", rule.Metric, rule.Comparator, rule.Limit, observed)
		}
		alerts = append(alerts, Alert{
			ID:        core.AlertID(deterministicAlertID(result.ID, rule)),
			Metric:    rule.Metric,
			Observed:  observed,
			Limit:     rule.Limit,
			Severity:  rule.Severity,
			Message:   msg,
			ResultID:  result.ID,
			CreatedAt: result.CreatedAt,
		})
	}
	return alerts
}

// deterministicAlertID derives the alert ID from the result and rule so
// repeated evaluation of the same result yields identical alert sets.
func deterministicAlertID(resultID core.ResultID, rule Rule) core.ID {
	return core.ID(fmt.Sprintf("%s:%s%s%g", resultID, rule.Metric, rule.Comparator, rule.Limit))
}

// BySeverity sorts alerts most severe first, preserving rule order
// within a severity.
func BySeverity(alerts []Alert) []Alert {
	out := make([]Alert, len(alerts))
	copy(out, alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return severityRank(out[i].Severity) > severityRank(out[j].Severity)
	})
	return out
}

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityWarning:
		return 1
	}
	return 0
}
