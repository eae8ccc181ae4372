package app

import (
	"context"
	"testing"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/ports"
)

// fakePredictor scores a WQI input as pH*10 so perturbations have a
// visible effect.
type fakePredictor struct {
	calls int
}

func (p *fakePredictor) Kind() model.Kind { return model.KindWQI }
func (p *fakePredictor) Ready() bool      { return true }

func (p *fakePredictor) Predict(ctx context.Context, input model.Input) (*model.PredictionResult, error) {
	p.calls++
	wqi := input.(*model.WQIInput)
	return &model.PredictionResult{
		ID:      core.ResultID(core.NewID()),
		Kind:    model.KindWQI,
		Metrics: map[string]float64{"wqi": wqi.Sample.PH * 10},
	}, nil
}

type fakeRegistry struct {
	predictor ports.Predictor
}

func (r *fakeRegistry) For(kind model.Kind) (ports.Predictor, error) {
	if r.predictor != nil && r.predictor.Kind() == kind {
		return r.predictor, nil
	}
	return nil, core.ErrUnknownModel
}

func (r *fakeRegistry) Status() map[model.Kind]bool {
	return map[model.Kind]bool{model.KindWQI: true}
}

func testSample() model.WaterSample {
	return model.WaterSample{
		PH: 7.0, TurbidityNTU: 10, DOmgl: 6, Conductivity: 400,
		TemperatureC: 22, NitrateMGL: 3, TDSmgl: 300, BODmgl: 2,
	}
}

// TestSimulateDoesNotMutateBase tests the core what-if invariant: the
// base input is byte-identical before and after a simulation.
func TestSimulateDoesNotMutateBase(t *testing.T) {
	svc := NewWhatIfService(&fakeRegistry{predictor: &fakePredictor{}})

	base := &model.WQIInput{Sample: testSample(), Location: "Ganga at Varanasi"}
	before := *base

	result, err := svc.Simulate(context.Background(), base, map[string]float64{"ph": 1.0})
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if *base != before {
		t.Errorf("Base input mutated:\nbefore: %+v\nafter:  %+v", before, *base)
	}

	wqi, _ := result.Metric("wqi")
	if wqi != 80 {
		t.Errorf("Expected perturbed score 80 (pH 8 * 10), got %g", wqi)
	}
}

// TestSimulateRejectsInvalidPerturbation tests that a perturbation
// pushing the sample out of range fails before prediction.
func TestSimulateRejectsInvalidPerturbation(t *testing.T) {
	fake := &fakePredictor{}
	svc := NewWhatIfService(&fakeRegistry{predictor: fake})

	base := &model.WQIInput{Sample: testSample()}
	_, err := svc.Simulate(context.Background(), base, map[string]float64{"ph": 10})
	if err == nil {
		t.Fatal("Expected validation error for pH 17")
	}
	if !core.IsInvalidInputError(err) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
	if fake.calls != 0 {
		t.Errorf("Predictor should not run on invalid input, ran %d times", fake.calls)
	}
}

// TestCompare tests that baseline and scenario come back side by side
func TestCompare(t *testing.T) {
	svc := NewWhatIfService(&fakeRegistry{predictor: &fakePredictor{}})

	base := &model.WQIInput{Sample: testSample()}
	baseline, scenario, err := svc.Compare(context.Background(), base, map[string]float64{"ph": -1})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	baseWQI, _ := baseline.Metric("wqi")
	scenWQI, _ := scenario.Metric("wqi")
	if baseWQI != 70 {
		t.Errorf("Expected baseline 70, got %g", baseWQI)
	}
	if scenWQI != 60 {
		t.Errorf("Expected scenario 60, got %g", scenWQI)
	}
}

// TestSimulateUnknownModel tests registry miss handling
func TestSimulateUnknownModel(t *testing.T) {
	svc := NewWhatIfService(&fakeRegistry{})
	base := &model.WQIInput{Sample: testSample()}
	if _, err := svc.Simulate(context.Background(), base, nil); err == nil {
		t.Error("Expected error for unregistered model kind")
	}
}
