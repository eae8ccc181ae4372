package models

import (
	"context"
	"math"
	"testing"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

func readyForecastAdapter(t *testing.T) *ForecastAdapter {
	t.Helper()
	dir := t.TempDir()
	writeArtifact(t, dir, "forecast.json", forecastArtifact{})
	a := NewForecastAdapter(dir)
	if !a.Ready() {
		t.Fatal("adapter should be ready with an artifact present")
	}
	return a
}

func flatHistory(n int, wqi float64) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = wqi
	}
	return h
}

// TestForecastAdapterNotReady tests that a missing artifact keeps the
// forecaster offline.
func TestForecastAdapterNotReady(t *testing.T) {
	a := NewForecastAdapter(t.TempDir())
	if a.Ready() {
		t.Fatal("adapter should not be ready without its artifact")
	}
	_, err := a.Predict(context.Background(), &model.ForecastInput{CurrentWQI: 60, HorizonDays: 7})
	if !core.IsModelUnavailableError(err) {
		t.Fatalf("expected model unavailable, got %v", err)
	}
}

// TestForecastAdapterDefaults tests that an empty artifact falls back
// to the shipped smoothing parameters.
func TestForecastAdapterDefaults(t *testing.T) {
	a := readyForecastAdapter(t)
	if a.artifact.Alpha != 0.4 || a.artifact.Beta != 0.1 {
		t.Errorf("smoothing = (%v, %v), want (0.4, 0.1)", a.artifact.Alpha, a.artifact.Beta)
	}
	if a.artifact.ResidualStd != 4.0 {
		t.Errorf("ResidualStd = %v, want 4.0", a.artifact.ResidualStd)
	}
}

// TestForecastFlatHistory tests that a steady series forecasts flat at
// the observed level with widening confidence bands.
func TestForecastFlatHistory(t *testing.T) {
	a := readyForecastAdapter(t)

	res, err := a.Predict(context.Background(), &model.ForecastInput{
		History:     flatHistory(14, 60),
		CurrentWQI:  60,
		HorizonDays: 7,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if got := res.Metrics["forecast_final_wqi"]; math.Abs(got-60) > 1e-9 {
		t.Errorf("forecast_final_wqi = %v, want 60", got)
	}
	if got := res.Metrics["forecast_min_wqi"]; math.Abs(got-60) > 1e-9 {
		t.Errorf("forecast_min_wqi = %v, want 60", got)
	}
	if got := res.Metrics["forecast_trend"]; math.Abs(got) > 1e-9 {
		t.Errorf("forecast_trend = %v, want 0", got)
	}

	series, ok := res.Detail.(model.ForecastSeries)
	if !ok {
		t.Fatalf("Detail has type %T, want ForecastSeries", res.Detail)
	}
	if len(series.Points) != 7 {
		t.Fatalf("got %d points, want 7", len(series.Points))
	}
	for i := 1; i < len(series.Points); i++ {
		prev, cur := series.Points[i-1], series.Points[i]
		if cur.Upper-cur.Lower <= prev.Upper-prev.Lower {
			t.Errorf("band at day %d did not widen: [%v,%v] after [%v,%v]",
				cur.Day, cur.Lower, cur.Upper, prev.Lower, prev.Upper)
		}
		if cur.Lower > cur.WQI || cur.WQI > cur.Upper {
			t.Errorf("day %d point %v outside its band [%v,%v]", cur.Day, cur.WQI, cur.Lower, cur.Upper)
		}
	}
}

// TestForecastDecliningHistory tests that a falling series yields a
// negative trend, with the minimum at the horizon.
func TestForecastDecliningHistory(t *testing.T) {
	a := readyForecastAdapter(t)

	history := make([]float64, 14)
	for i := range history {
		history[i] = 80 - 2*float64(i) // 80 down to 54
	}
	res, err := a.Predict(context.Background(), &model.ForecastInput{
		History:     history,
		CurrentWQI:  history[len(history)-1],
		HorizonDays: 10,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := res.Metrics["forecast_trend"]; got >= 0 {
		t.Errorf("forecast_trend = %v, want negative", got)
	}
	final := res.Metrics["forecast_final_wqi"]
	minWQI := res.Metrics["forecast_min_wqi"]
	if math.Abs(final-minWQI) > 1e-9 {
		t.Errorf("on a monotone decline the minimum (%v) should be the final value (%v)", minWQI, final)
	}
	if final >= history[len(history)-1] {
		t.Errorf("final %v should be below the last observation %v", final, history[len(history)-1])
	}
}

// TestForecastClampsToScale tests that a steep decline never forecasts
// below zero.
func TestForecastClampsToScale(t *testing.T) {
	a := readyForecastAdapter(t)

	history := make([]float64, 10)
	for i := range history {
		history[i] = 50 - 5*float64(i) // 50 down to 5
	}
	res, err := a.Predict(context.Background(), &model.ForecastInput{
		History:     history,
		CurrentWQI:  history[len(history)-1],
		HorizonDays: 60,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := res.Metrics["forecast_min_wqi"]; got < 0 {
		t.Errorf("forecast_min_wqi = %v, want clamp at 0", got)
	}
	if got := res.Metrics["forecast_final_wqi"]; got < 0 || got > 100 {
		t.Errorf("forecast_final_wqi = %v, out of scale", got)
	}
}

// TestForecastSeasonalOffset tests that seasonal factors shift the
// forecast day by day.
func TestForecastSeasonalOffset(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "forecast.json", forecastArtifact{
		Seasonal: []float64{2, -2, 1, -1, 0, 3, -3},
	})
	a := NewForecastAdapter(dir)

	res, err := a.Predict(context.Background(), &model.ForecastInput{
		History:     flatHistory(14, 60),
		CurrentWQI:  60,
		HorizonDays: 7,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	series := res.Detail.(model.ForecastSeries)
	spread := 0.0
	for _, p := range series.Points {
		spread = math.Max(spread, math.Abs(p.WQI-60))
	}
	if spread < 1 {
		t.Errorf("seasonal factors should move the flat forecast, max offset %v", spread)
	}
}

// TestForecastRejectsBadInput tests horizon and scale validation.
func TestForecastRejectsBadInput(t *testing.T) {
	a := readyForecastAdapter(t)

	cases := []*model.ForecastInput{
		{CurrentWQI: 60, HorizonDays: 0},
		{CurrentWQI: 60, HorizonDays: 366},
		{CurrentWQI: 120, HorizonDays: 7},
	}
	for _, in := range cases {
		if _, err := a.Predict(context.Background(), in); !core.IsInvalidInputError(err) {
			t.Errorf("%+v: expected invalid input, got %v", in, err)
		}
	}
}
