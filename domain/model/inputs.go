package model

import (
	"fmt"

	"pravaah/domain/core"
)

// WaterSample holds one set of tabular water-quality readings. Field
// keys accepted by Perturb match the original sensor export headers.
type WaterSample struct {
	PH           float64 `json:"ph" db:"ph"`
	TurbidityNTU float64 `json:"turbidity_ntu" db:"turbidity_ntu"`
	DOmgl        float64 `json:"do_mgl" db:"do_mgl"`
	Conductivity float64 `json:"conductivity_us" db:"conductivity_us"`
	TemperatureC float64 `json:"temperature_c" db:"temperature_c"`
	NitrateMGL   float64 `json:"nitrate_mgl" db:"nitrate_mgl"`
	TDSmgl       float64 `json:"tds_mgl" db:"tds_mgl"`
	BODmgl       float64 `json:"bod_mgl" db:"bod_mgl"`
}

// Validate checks the readings against physical ranges.
func (s WaterSample) Validate() error {
	if s.PH < 0 || s.PH > 14 {
		return core.NewInvalidInputError("ph", fmt.Sprintf("must be in [0,14], got %.2f", s.PH))
	}
	if s.TurbidityNTU < 0 {
		return core.NewInvalidInputError("turbidity_ntu", "must be non-negative")
	}
	if s.DOmgl < 0 || s.DOmgl > 20 {
		return core.NewInvalidInputError("do_mgl", fmt.Sprintf("must be in [0,20], got %.2f", s.DOmgl))
	}
	if s.TemperatureC < -5 || s.TemperatureC > 60 {
		return core.NewInvalidInputError("temperature_c", fmt.Sprintf("must be in [-5,60], got %.2f", s.TemperatureC))
	}
	if s.NitrateMGL < 0 || s.BODmgl < 0 || s.TDSmgl < 0 || s.Conductivity < 0 {
		return core.NewInvalidInputError("readings", "concentrations must be non-negative")
	}
	return nil
}

func (s *WaterSample) perturb(deltas map[string]float64) error {
	for field, delta := range deltas {
		switch field {
		case "ph":
			s.PH += delta
		case "turbidity_ntu":
			s.TurbidityNTU += delta
		case "do_mgl":
			s.DOmgl += delta
		case "conductivity_us":
			s.Conductivity += delta
		case "temperature_c":
			s.TemperatureC += delta
		case "nitrate_mgl":
			s.NitrateMGL += delta
		case "tds_mgl":
			s.TDSmgl += delta
		case "bod_mgl":
			s.BODmgl += delta
		default:
			return core.NewInvalidInputError(field, "unknown perturbation field")
		}
	}
	return nil
}

// DetectionInput carries an uploaded water-sample image.
type DetectionInput struct {
	ImageData     []byte  `json:"-"`
	Filename      string  `json:"filename"`
	MinConfidence float64 `json:"min_confidence"`
}

func (in *DetectionInput) Kind() Kind { return KindDetection }

func (in *DetectionInput) Validate() error {
	if len(in.ImageData) == 0 {
		return core.NewInvalidInputError("image", "no image data supplied")
	}
	if in.MinConfidence < 0 || in.MinConfidence > 1 {
		return core.NewInvalidInputError("min_confidence", "must be in [0,1]")
	}
	return nil
}

func (in *DetectionInput) Clone() Input {
	cp := *in
	cp.ImageData = append([]byte(nil), in.ImageData...)
	return &cp
}

func (in *DetectionInput) Perturb(deltas map[string]float64) error {
	for field, delta := range deltas {
		if field != "min_confidence" {
			return core.NewInvalidInputError(field, "unknown perturbation field")
		}
		in.MinConfidence += delta
	}
	return nil
}

// SpectrumInput carries an uploaded Raman spectrum.
type SpectrumInput struct {
	Wavenumbers []float64 `json:"wavenumbers"`
	Intensities []float64 `json:"intensities"`
	SampleLabel string    `json:"sample_label"`
}

func (in *SpectrumInput) Kind() Kind { return KindSpectral }

func (in *SpectrumInput) Validate() error {
	if len(in.Wavenumbers) == 0 {
		return core.NewInvalidInputError("wavenumbers", "empty spectrum")
	}
	if len(in.Wavenumbers) != len(in.Intensities) {
		return core.NewInvalidInputError("intensities",
			fmt.Sprintf("length %d does not match %d wavenumbers", len(in.Intensities), len(in.Wavenumbers)))
	}
	for i := 1; i < len(in.Wavenumbers); i++ {
		if in.Wavenumbers[i] <= in.Wavenumbers[i-1] {
			return core.NewInvalidInputError("wavenumbers", "must be strictly increasing")
		}
	}
	return nil
}

func (in *SpectrumInput) Clone() Input {
	cp := *in
	cp.Wavenumbers = append([]float64(nil), in.Wavenumbers...)
	cp.Intensities = append([]float64(nil), in.Intensities...)
	return &cp
}

func (in *SpectrumInput) Perturb(deltas map[string]float64) error {
	for field, delta := range deltas {
		if field != "intensity_scale" {
			return core.NewInvalidInputError(field, "unknown perturbation field")
		}
		for i := range in.Intensities {
			in.Intensities[i] *= 1 + delta
		}
	}
	return nil
}

// WQIInput carries tabular readings for the WQI regressor.
type WQIInput struct {
	Sample   WaterSample `json:"sample"`
	Location string      `json:"location"`
}

func (in *WQIInput) Kind() Kind      { return KindWQI }
func (in *WQIInput) Validate() error { return in.Sample.Validate() }

func (in *WQIInput) Clone() Input {
	cp := *in
	return &cp
}

func (in *WQIInput) Perturb(deltas map[string]float64) error {
	return in.Sample.perturb(deltas)
}

// ForecastInput seeds the WQI forecast with recent history.
type ForecastInput struct {
	History     []float64 `json:"history"` // daily WQI, oldest first
	CurrentWQI  float64   `json:"current_wqi"`
	HorizonDays int       `json:"horizon_days"`
}

func (in *ForecastInput) Kind() Kind { return KindForecast }

func (in *ForecastInput) Validate() error {
	if in.CurrentWQI < 0 || in.CurrentWQI > 100 {
		return core.NewInvalidInputError("current_wqi", "must be in [0,100]")
	}
	if in.HorizonDays <= 0 || in.HorizonDays > 365 {
		return core.NewInvalidInputError("horizon_days", "must be in [1,365]")
	}
	return nil
}

func (in *ForecastInput) Clone() Input {
	cp := *in
	cp.History = append([]float64(nil), in.History...)
	return &cp
}

func (in *ForecastInput) Perturb(deltas map[string]float64) error {
	for field, delta := range deltas {
		switch field {
		case "current_wqi":
			in.CurrentWQI += delta
		case "horizon_days":
			in.HorizonDays += int(delta)
		default:
			return core.NewInvalidInputError(field, "unknown perturbation field")
		}
	}
	return nil
}

// OxygenInput drives the physics-informed dissolved-oxygen model.
type OxygenInput struct {
	Sample       WaterSample `json:"sample"`
	HorizonHours int         `json:"horizon_hours"`
	FlowMS       float64     `json:"flow_ms"`    // mean stream velocity, m/s
	DepthM       float64     `json:"depth_m"`    // mean depth, m
}

func (in *OxygenInput) Kind() Kind { return KindOxygen }

func (in *OxygenInput) Validate() error {
	if err := in.Sample.Validate(); err != nil {
		return err
	}
	if in.HorizonHours <= 0 || in.HorizonHours > 240 {
		return core.NewInvalidInputError("horizon_hours", "must be in [1,240]")
	}
	if in.DepthM <= 0 {
		return core.NewInvalidInputError("depth_m", "must be positive")
	}
	if in.FlowMS < 0 {
		return core.NewInvalidInputError("flow_ms", "must be non-negative")
	}
	return nil
}

func (in *OxygenInput) Clone() Input {
	cp := *in
	return &cp
}

func (in *OxygenInput) Perturb(deltas map[string]float64) error {
	rest := make(map[string]float64)
	for field, delta := range deltas {
		switch field {
		case "flow_ms":
			in.FlowMS += delta
		case "depth_m":
			in.DepthM += delta
		case "horizon_hours":
			in.HorizonHours += int(delta)
		default:
			rest[field] = delta
		}
	}
	return in.Sample.perturb(rest)
}

// Intervention describes a digital-twin policy scenario.
type Intervention struct {
	TreatmentEfficiency float64 `json:"treatment_efficiency"` // fraction of BOD load removed, [0,1]
	InflowReduction     float64 `json:"inflow_reduction"`     // fraction of polluted inflow diverted, [0,1]
	DurationDays        int     `json:"duration_days"`
}

// TwinInput drives a digital-twin scenario simulation.
type TwinInput struct {
	Sample       WaterSample  `json:"sample"`
	Intervention Intervention `json:"intervention"`
}

func (in *TwinInput) Kind() Kind { return KindTwin }

func (in *TwinInput) Validate() error {
	if err := in.Sample.Validate(); err != nil {
		return err
	}
	iv := in.Intervention
	if iv.TreatmentEfficiency < 0 || iv.TreatmentEfficiency > 1 {
		return core.NewInvalidInputError("treatment_efficiency", "must be in [0,1]")
	}
	if iv.InflowReduction < 0 || iv.InflowReduction > 1 {
		return core.NewInvalidInputError("inflow_reduction", "must be in [0,1]")
	}
	if iv.DurationDays <= 0 || iv.DurationDays > 365 {
		return core.NewInvalidInputError("duration_days", "must be in [1,365]")
	}
	return nil
}

func (in *TwinInput) Clone() Input {
	cp := *in
	return &cp
}

func (in *TwinInput) Perturb(deltas map[string]float64) error {
	rest := make(map[string]float64)
	for field, delta := range deltas {
		switch field {
		case "treatment_efficiency":
			in.Intervention.TreatmentEfficiency += delta
		case "inflow_reduction":
			in.Intervention.InflowReduction += delta
		case "duration_days":
			in.Intervention.DurationDays += int(delta)
		default:
			rest[field] = delta
		}
	}
	return in.Sample.perturb(rest)
}
