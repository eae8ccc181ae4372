package app

import (
	"context"

	"pravaah/domain/model"
	"pravaah/ports"
)

// WhatIfService re-runs a model adapter over a perturbed copy of a base
// input so the dashboard can show sensitivity. The base input is never
// mutated and no history is written.
type WhatIfService struct {
	registry ports.PredictorRegistry
}

// NewWhatIfService creates a what-if service.
func NewWhatIfService(registry ports.PredictorRegistry) *WhatIfService {
	return &WhatIfService{registry: registry}
}

// Simulate deep-copies the base input, applies the perturbations and
// re-invokes the relevant adapter. The returned result is fresh; it is
// not persisted anywhere.
func (s *WhatIfService) Simulate(ctx context.Context, base model.Input, perturbations map[string]float64) (*model.PredictionResult, error) {
	perturbed := base.Clone()
	if err := perturbed.Perturb(perturbations); err != nil {
		return nil, err
	}
	if err := perturbed.Validate(); err != nil {
		return nil, err
	}

	predictor, err := s.registry.For(perturbed.Kind())
	if err != nil {
		return nil, err
	}
	return predictor.Predict(ctx, perturbed)
}

// Compare runs the base and perturbed inputs side by side and returns
// both results.
func (s *WhatIfService) Compare(ctx context.Context, base model.Input, perturbations map[string]float64) (baseline, scenario *model.PredictionResult, err error) {
	predictor, err := s.registry.For(base.Kind())
	if err != nil {
		return nil, nil, err
	}
	baseline, err = predictor.Predict(ctx, base.Clone())
	if err != nil {
		return nil, nil, err
	}
	scenario, err = s.Simulate(ctx, base, perturbations)
	if err != nil {
		return nil, nil, err
	}
	return baseline, scenario, nil
}
