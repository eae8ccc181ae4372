package models

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// forecastArtifact carries the smoothing parameters the forecaster was
// fitted with and weekly seasonal factors.
type forecastArtifact struct {
	Alpha       float64   `json:"alpha"` // level smoothing
	Beta        float64   `json:"beta"`  // trend smoothing
	Seasonal    []float64 `json:"seasonal"`
	ResidualStd float64   `json:"residual_std"` // fallback band width when history is short
}

// ForecastAdapter wraps the WQI forecaster as Holt linear-trend
// smoothing with additive weekly seasonality and residual confidence
// bands.
type ForecastAdapter struct {
	artifact forecastArtifact
	ready    bool
}

// NewForecastAdapter loads the forecaster artifact.
func NewForecastAdapter(artifactsDir string) *ForecastAdapter {
	a := &ForecastAdapter{}
	if err := loadArtifact(artifactsDir, "forecast.json", &a.artifact); err != nil {
		return a
	}
	if a.artifact.Alpha <= 0 || a.artifact.Alpha >= 1 {
		a.artifact.Alpha = 0.4
	}
	if a.artifact.Beta <= 0 || a.artifact.Beta >= 1 {
		a.artifact.Beta = 0.1
	}
	if a.artifact.ResidualStd <= 0 {
		a.artifact.ResidualStd = 4.0
	}
	a.ready = true
	return a
}

func (a *ForecastAdapter) Kind() model.Kind { return model.KindForecast }
func (a *ForecastAdapter) Ready() bool      { return a.ready }

// Predict produces the WQI forecast over the requested horizon.
func (a *ForecastAdapter) Predict(ctx context.Context, input model.Input) (*model.PredictionResult, error) {
	if !a.ready {
		return nil, core.NewModelUnavailableError("forecast", core.ErrModelUnavailable)
	}
	in, ok := input.(*model.ForecastInput)
	if !ok {
		return nil, core.NewInvalidInputError("input", "forecast expects ForecastInput")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	history := in.History
	if len(history) == 0 {
		history = []float64{in.CurrentWQI}
	}

	level, trend, residStd := a.fit(history)

	// When the caller supplies a current reading newer than the
	// history, fold it in as one more smoothing step.
	if in.CurrentWQI > 0 && (len(in.History) == 0 || in.History[len(in.History)-1] != in.CurrentWQI) {
		prevLevel := level
		level = a.artifact.Alpha*in.CurrentWQI + (1-a.artifact.Alpha)*(level+trend)
		trend = a.artifact.Beta*(level-prevLevel) + (1-a.artifact.Beta)*trend
	}

	points := make([]model.ForecastPoint, 0, in.HorizonDays)
	minWQI := math.Inf(1)
	for h := 1; h <= in.HorizonDays; h++ {
		wqi := level + float64(h)*trend + a.seasonalFor(len(history)+h)
		wqi = math.Max(0, math.Min(100, wqi))
		// Band widens with the square root of the horizon.
		band := 1.96 * residStd * math.Sqrt(float64(h))
		points = append(points, model.ForecastPoint{
			Day:   h,
			WQI:   wqi,
			Lower: math.Max(0, wqi-band),
			Upper: math.Min(100, wqi+band),
		})
		if wqi < minWQI {
			minWQI = wqi
		}
	}

	series := model.ForecastSeries{
		Points:   points,
		FinalWQI: points[len(points)-1].WQI,
		Trend:    trend,
	}

	// Confidence decays with horizon length relative to history depth.
	confidence := math.Max(0.2, math.Min(0.95,
		float64(len(history))/(float64(len(history))+float64(in.HorizonDays)/7)))

	return &model.PredictionResult{
		ID:       core.ResultID(core.NewID()),
		Kind:     model.KindForecast,
		InputRef: fmt.Sprintf("%dd horizon", in.HorizonDays),
		Metrics: map[string]float64{
			"forecast_final_wqi": series.FinalWQI,
			"forecast_min_wqi":   minWQI,
			"forecast_trend":     trend,
		},
		Confidence: confidence,
		Detail:     series,
		CreatedAt:  core.Now(),
	}, nil
}

// fit runs Holt smoothing over the history and returns the final
// level, trend and the one-step residual deviation.
func (a *ForecastAdapter) fit(history []float64) (level, trend, residStd float64) {
	level = history[0]
	trend = 0
	if len(history) >= 2 {
		trend = history[1] - history[0]
	}

	residuals := make([]float64, 0, len(history))
	for i := 1; i < len(history); i++ {
		predicted := level + trend
		residuals = append(residuals, history[i]-predicted)
		prevLevel := level
		level = a.artifact.Alpha*history[i] + (1-a.artifact.Alpha)*(level+trend)
		trend = a.artifact.Beta*(level-prevLevel) + (1-a.artifact.Beta)*trend
	}

	residStd = a.artifact.ResidualStd
	if len(residuals) >= 7 {
		if sd, err := stats.StandardDeviation(residuals); err == nil && sd > 0 {
			residStd = sd
		}
	}
	return level, trend, residStd
}

func (a *ForecastAdapter) seasonalFor(step int) float64 {
	if len(a.artifact.Seasonal) == 0 {
		return 0
	}
	return a.artifact.Seasonal[step%len(a.artifact.Seasonal)]
}
