package models

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/ports"
)

// Registry holds one predictor per model kind. Artifacts load once at
// startup; afterwards the registry is read-only.
type Registry struct {
	mu         sync.RWMutex
	predictors map[model.Kind]ports.Predictor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{predictors: make(map[model.Kind]ports.Predictor)}
}

// Register adds a predictor. Later registrations for the same kind
// replace earlier ones.
func (r *Registry) Register(p ports.Predictor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predictors[p.Kind()] = p
}

// For resolves the predictor for a kind.
func (r *Registry) For(kind model.Kind) (ports.Predictor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.predictors[kind]
	if !ok {
		return nil, core.NewModelUnavailableError(kind.String(), core.ErrUnknownModel)
	}
	if !p.Ready() {
		return nil, core.NewModelUnavailableError(kind.String(), core.ErrModelUnavailable)
	}
	return p, nil
}

// Status maps each registered kind to its readiness.
func (r *Registry) Status() map[model.Kind]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status := make(map[model.Kind]bool, len(r.predictors))
	for kind, p := range r.predictors {
		status[kind] = p.Ready()
	}
	return status
}

// LoadAll constructs every adapter from the artifacts directory,
// loading artifacts concurrently. An adapter whose artifact is missing
// is still registered (not ready) so the status view can show it
// offline; only a context error aborts the load.
func LoadAll(ctx context.Context, artifactsDir string) (*Registry, error) {
	registry := NewRegistry()

	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	register := func(p ports.Predictor) {
		mu.Lock()
		registry.Register(p)
		mu.Unlock()
	}

	g.Go(func() error {
		register(NewDetectionAdapter(artifactsDir))
		return ctx.Err()
	})
	g.Go(func() error {
		register(NewSpectralAdapter(artifactsDir))
		return ctx.Err()
	})
	g.Go(func() error {
		register(NewWQIAdapter(artifactsDir))
		return ctx.Err()
	})
	g.Go(func() error {
		register(NewForecastAdapter(artifactsDir))
		return ctx.Err()
	})
	g.Go(func() error {
		register(NewOxygenAdapter())
		return ctx.Err()
	})
	g.Go(func() error {
		register(NewTwinAdapter())
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return registry, nil
}
