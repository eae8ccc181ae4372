package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"pravaah/domain/access"
	"pravaah/domain/alert"
	"pravaah/internal/errors"
)

// LoadThresholds reads the threshold configuration from a YAML file.
// A missing file falls back to the compiled-in defaults so a fresh
// checkout serves sensible alerts.
func LoadThresholds(path string) (alert.Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultThresholds(), nil
	}
	if err != nil {
		return alert.Config{}, errors.Wrap(err, "reading threshold config")
	}

	var cfg alert.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return alert.Config{}, errors.ConfigInvalid("malformed threshold config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return alert.Config{}, errors.Wrap(err, "invalid threshold config")
	}
	return cfg, nil
}

// DefaultThresholds matches the original dashboard's slider defaults.
func DefaultThresholds() alert.Config {
	return alert.Config{
		Rules: []alert.Rule{
			{Metric: "wqi", Comparator: alert.CompLT, Limit: 50, Severity: alert.SeverityHigh,
				Message: "Water Quality Index below safe limit"},
			{Metric: "wqi", Comparator: alert.CompLT, Limit: 40, Severity: alert.SeverityCritical,
				Message: "Water Quality Index critically low"},
			{Metric: "do_min", Comparator: alert.CompLT, Limit: 4.0, Severity: alert.SeverityCritical,
				Message: "Dissolved oxygen predicted below survival threshold"},
			{Metric: "particle_count", Comparator: alert.CompGT, Limit: 150, Severity: alert.SeverityHigh,
				Message: "Microplastic count above alert level"},
			{Metric: "particle_count", Comparator: alert.CompGT, Limit: 50, Severity: alert.SeverityWarning,
				Message: "Elevated microplastic count"},
			{Metric: "forecast_min_wqi", Comparator: alert.CompLT, Limit: 45, Severity: alert.SeverityWarning,
				Message: "Forecast predicts WQI deterioration"},
		},
	}
}

// LoadPolicy reads the role policy from a YAML file, falling back to
// the compiled-in default policy when the file is absent.
func LoadPolicy(path string) (*access.Policy, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return access.DefaultPolicy(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading role policy")
	}

	var file access.PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.ConfigInvalid("malformed role policy: " + err.Error())
	}
	policy, err := access.NewPolicy(file)
	if err != nil {
		return nil, errors.Wrap(err, "invalid role policy")
	}
	return policy, nil
}
