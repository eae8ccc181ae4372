package app

import (
	"context"
	"fmt"

	"pravaah/domain/alert"
	"pravaah/domain/model"
	"pravaah/internal"
	"pravaah/ports"
)

// AnalysisService orchestrates one analysis cycle: resolve the adapter,
// predict, evaluate thresholds, persist and fan out alerts.
type AnalysisService struct {
	registry   ports.PredictorRegistry
	results    ports.ResultRepository
	alerts     ports.AlertRepository
	thresholds ports.ThresholdRepository
	publisher  ports.AlertPublisher
	baseline   alert.Config
	logger     *internal.Logger
}

// NewAnalysisService creates an analysis service. The threshold
// repository and publisher may be nil; persistence of overrides and
// live fanout are then skipped.
func NewAnalysisService(
	registry ports.PredictorRegistry,
	results ports.ResultRepository,
	alerts ports.AlertRepository,
	thresholds ports.ThresholdRepository,
	publisher ports.AlertPublisher,
	baseline alert.Config,
	logger *internal.Logger,
) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		registry:   registry,
		results:    results,
		alerts:     alerts,
		thresholds: thresholds,
		publisher:  publisher,
		baseline:   baseline,
		logger:     logger,
	}
}

// Analyze runs one prediction and evaluates it against the effective
// thresholds. Storage and fanout failures are logged, never surfaced:
// the user still gets their result.
func (s *AnalysisService) Analyze(ctx context.Context, input model.Input) (*model.PredictionResult, []alert.Alert, error) {
	predictor, err := s.registry.For(input.Kind())
	if err != nil {
		return nil, nil, err
	}

	result, err := predictor.Predict(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	cfg := s.EffectiveThresholds(ctx)
	raised := alert.Evaluate(result, cfg)

	if s.results != nil {
		if err := s.results.Save(ctx, result); err != nil {
			s.logger.Warn("failed to persist %s result: %v", result.Kind, err)
		}
	}
	if len(raised) > 0 {
		if s.alerts != nil {
			if err := s.alerts.SaveAll(ctx, raised); err != nil {
				s.logger.Warn("failed to persist alerts: %v", err)
			}
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, raised); err != nil {
				s.logger.Warn("alert publish failed: %v", err)
			}
		}
	}

	return result, raised, nil
}

// EffectiveThresholds merges persisted admin overrides over the YAML
// baseline. An override replaces the baseline rule with the same metric
// and comparator; new rules append.
func (s *AnalysisService) EffectiveThresholds(ctx context.Context) alert.Config {
	cfg := alert.Config{Rules: append([]alert.Rule(nil), s.baseline.Rules...)}
	if s.thresholds == nil {
		return cfg
	}
	overrides, err := s.thresholds.LoadOverrides(ctx)
	if err != nil {
		s.logger.Warn("failed to load threshold overrides, using baseline: %v", err)
		return cfg
	}
	for _, ov := range overrides {
		replaced := false
		for i, rule := range cfg.Rules {
			if rule.Metric == ov.Metric && rule.Comparator == ov.Comparator {
				cfg.Rules[i] = ov
				replaced = true
				break
			}
		}
		if !replaced {
			cfg.Rules = append(cfg.Rules, ov)
		}
	}
	return cfg
}

// UpdateThresholds validates and persists admin threshold overrides.
func (s *AnalysisService) UpdateThresholds(ctx context.Context, rules []alert.Rule) error {
	if s.thresholds == nil {
		return fmt.Errorf("threshold storage not configured")
	}
	cfg := alert.Config{Rules: rules}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.thresholds.SaveOverrides(ctx, rules)
}

// RiverAssessment is the aggregated output of a government batch run.
type RiverAssessment struct {
	Results []model.PredictionResult
	Alerts  []alert.Alert
}

// AssessRiver runs the full government pipeline over one sample:
// WQI regression, 60-day forecast, 72-hour dissolved oxygen, then a
// digital-twin scenario seeded with the defaults. Each stage feeds the
// next; a stage failure aborts the run.
func (s *AnalysisService) AssessRiver(ctx context.Context, sample model.WaterSample, location string) (*RiverAssessment, error) {
	assessment := &RiverAssessment{}

	run := func(input model.Input) (*model.PredictionResult, error) {
		result, raised, err := s.Analyze(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", input.Kind(), err)
		}
		assessment.Results = append(assessment.Results, *result)
		assessment.Alerts = append(assessment.Alerts, raised...)
		return result, nil
	}

	wqiResult, err := run(&model.WQIInput{Sample: sample, Location: location})
	if err != nil {
		return nil, err
	}
	score, _ := wqiResult.Metric("wqi")

	if _, err := run(&model.ForecastInput{CurrentWQI: score, HorizonDays: 60}); err != nil {
		return nil, err
	}
	if _, err := run(&model.OxygenInput{Sample: sample, HorizonHours: 72, FlowMS: 0.5, DepthM: 2.0}); err != nil {
		return nil, err
	}
	if _, err := run(&model.TwinInput{
		Sample: sample,
		Intervention: model.Intervention{
			TreatmentEfficiency: 0.4,
			InflowReduction:     0.2,
			DurationDays:        30,
		},
	}); err != nil {
		return nil, err
	}

	return assessment, nil
}
