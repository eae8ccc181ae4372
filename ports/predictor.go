package ports

import (
	"context"

	"pravaah/domain/model"
)

// Predictor is the uniform contract every model adapter implements.
// Predict must not mutate shared state; the returned result is owned
// by the caller.
type Predictor interface {
	Kind() model.Kind
	Predict(ctx context.Context, input model.Input) (*model.PredictionResult, error)
	// Ready reports whether the underlying artifact loaded successfully.
	Ready() bool
}

// PredictorRegistry resolves predictors by model kind.
type PredictorRegistry interface {
	For(kind model.Kind) (Predictor, error)
	// Status maps each registered kind to its readiness, for the admin
	// system-status view.
	Status() map[model.Kind]bool
}
