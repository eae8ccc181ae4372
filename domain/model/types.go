package model

import (
	"pravaah/domain/core"
)

// Kind identifies one of the wrapped prediction models.
type Kind string

const (
	KindDetection Kind = "detection"
	KindSpectral  Kind = "spectral"
	KindWQI       Kind = "wqi"
	KindForecast  Kind = "forecast"
	KindOxygen    Kind = "oxygen"
	KindTwin      Kind = "twin"
)

// AllKinds lists every model kind in adapter load order.
func AllKinds() []Kind {
	return []Kind{KindDetection, KindSpectral, KindWQI, KindForecast, KindOxygen, KindTwin}
}

// Valid reports whether the kind names a known model.
func (k Kind) Valid() bool {
	switch k {
	case KindDetection, KindSpectral, KindWQI, KindForecast, KindOxygen, KindTwin:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Input is implemented by every typed model input. Clone must return a
// deep copy so callers can perturb inputs without touching the original.
type Input interface {
	Kind() Kind
	Validate() error
	Clone() Input
	Perturb(deltas map[string]float64) error
}

// PredictionResult is the uniform envelope produced by every model
// adapter. Immutable once created; consumed by the alert engine, the
// view handlers and the report renderers.
type PredictionResult struct {
	ID         core.ResultID      `json:"id" db:"id"`
	Kind       Kind               `json:"kind" db:"kind"`
	InputRef   string             `json:"input_ref" db:"input_ref"`
	Metrics    map[string]float64 `json:"metrics"`
	Confidence float64            `json:"confidence" db:"confidence"`
	Detail     interface{}        `json:"detail,omitempty"`
	CreatedAt  core.Timestamp     `json:"created_at" db:"created_at"`
}

// Metric returns a named metric and whether it was produced.
func (r *PredictionResult) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Detection is one particle found in an uploaded image.
type Detection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

// DetectionSummary is the detail payload of a detection result.
type DetectionSummary struct {
	Detections    []Detection    `json:"detections"`
	Counts        map[string]int `json:"counts"`
	TotalCount    int            `json:"total_count"`
	AvgConfidence float64        `json:"avg_confidence"`
	RiskBand      RiskBand       `json:"risk_band"`
}

// RiskBand buckets a detection result for the public health advisory.
type RiskBand string

const (
	RiskLow      RiskBand = "low"
	RiskModerate RiskBand = "moderate"
	RiskSevere   RiskBand = "severe"
)

// BandForCount maps a particle count onto a contamination risk band.
func BandForCount(count int) RiskBand {
	switch {
	case count > 100:
		return RiskSevere
	case count > 50:
		return RiskModerate
	default:
		return RiskLow
	}
}

// PolymerScore is one candidate polymer match for a spectrum.
type PolymerScore struct {
	Polymer string  `json:"polymer"`
	Score   float64 `json:"score"`
}

// SpectralMatch is the detail payload of a spectral classification.
type SpectralMatch struct {
	Polymer    string         `json:"polymer"`
	Score      float64        `json:"score"`
	Candidates []PolymerScore `json:"candidates"`
}

// WQIBreakdown is the detail payload of a WQI regression.
type WQIBreakdown struct {
	Score         float64            `json:"score"`
	Rating        string             `json:"rating"`
	Contributions map[string]float64 `json:"contributions"`
}

// RatingForWQI maps a WQI score to its qualitative rating.
func RatingForWQI(score float64) string {
	switch {
	case score >= 70:
		return "good"
	case score >= 50:
		return "moderate"
	default:
		return "poor"
	}
}

// ForecastPoint is one step of a WQI forecast.
type ForecastPoint struct {
	Day   int     `json:"day"`
	WQI   float64 `json:"wqi"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastSeries is the detail payload of a forecast result.
type ForecastSeries struct {
	Points   []ForecastPoint `json:"points"`
	FinalWQI float64         `json:"final_wqi"`
	Trend    float64         `json:"trend"` // WQI change per day
}

// DOPoint is one step of a dissolved-oxygen trajectory.
type DOPoint struct {
	Hour float64 `json:"hour"`
	DO   float64 `json:"do_mgl"`
	BOD  float64 `json:"bod_mgl"`
}

// OxygenProfile is the detail payload of a dissolved-oxygen prediction.
type OxygenProfile struct {
	Points       []DOPoint `json:"points"`
	MinDO        float64   `json:"min_do_mgl"`
	MinAtHour    float64   `json:"min_at_hour"`
	SaturationDO float64   `json:"saturation_do_mgl"`
}

// TwinPoint is one day of a digital-twin trajectory.
type TwinPoint struct {
	Day      int     `json:"day"`
	Baseline float64 `json:"baseline_wqi"`
	Scenario float64 `json:"scenario_wqi"`
}

// TwinOutcome is the detail payload of a digital-twin simulation.
type TwinOutcome struct {
	Points   []TwinPoint `json:"points"`
	DeltaWQI float64     `json:"delta_wqi"` // scenario minus baseline at horizon
}
