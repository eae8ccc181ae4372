// Package testkit generates realistic water monitoring fixtures for
// tests and the seed command.
package testkit

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/domain/station"
)

var waterBodies = []string{"river", "lake", "canal", "reservoir"}

// Fixtures produces deterministic fake monitoring data from a seed.
type Fixtures struct {
	faker *gofakeit.Faker
}

// New creates a fixture generator. The same seed yields the same
// sequence of values.
func New(seed uint64) *Fixtures {
	return &Fixtures{faker: gofakeit.New(seed)}
}

// Sample returns a plausible in-range water sample.
func (f *Fixtures) Sample() model.WaterSample {
	return model.WaterSample{
		PH:           f.faker.Float64Range(6.0, 8.8),
		TurbidityNTU: f.faker.Float64Range(0.5, 120),
		DOmgl:        f.faker.Float64Range(2.5, 10.5),
		Conductivity: f.faker.Float64Range(80, 1800),
		TemperatureC: f.faker.Float64Range(8, 34),
		NitrateMGL:   f.faker.Float64Range(0.1, 18),
		TDSmgl:       f.faker.Float64Range(50, 1200),
		BODmgl:       f.faker.Float64Range(0.5, 14),
	}
}

// PollutedSample returns a sample that violates the default WQI and
// dissolved oxygen thresholds.
func (f *Fixtures) PollutedSample() model.WaterSample {
	s := f.Sample()
	s.DOmgl = f.faker.Float64Range(0.8, 3.2)
	s.BODmgl = f.faker.Float64Range(12, 30)
	s.TurbidityNTU = f.faker.Float64Range(150, 400)
	s.NitrateMGL = f.faker.Float64Range(20, 60)
	return s
}

// Station returns a fake monitoring station.
func (f *Fixtures) Station() station.Station {
	city := f.faker.City()
	return station.Station{
		ID:        core.StationID(core.NewID()),
		Name:      fmt.Sprintf("%s %s station", city, f.faker.RandomString(waterBodies)),
		WaterBody: f.faker.RandomString(waterBodies),
		Location:  fmt.Sprintf("%s, %s", city, f.faker.State()),
		Latitude:  f.faker.Float64Range(8.0, 34.0),
		Longitude: f.faker.Float64Range(68.0, 92.0),
		CreatedAt: core.Now(),
	}
}

// Reading returns a fake sensor reading for the station, recorded the
// given duration in the past.
func (f *Fixtures) Reading(stationID core.StationID, age time.Duration) station.Reading {
	sample := f.Sample()
	return station.Reading{
		ID:         core.SampleID(core.NewID()),
		StationID:  stationID,
		Sample:     sample,
		WQI:        f.faker.Float64Range(25, 95),
		RecordedAt: core.NewTimestamp(time.Now().Add(-age)),
	}
}

// ReadingHistory returns n readings spaced a day apart, oldest first.
func (f *Fixtures) ReadingHistory(stationID core.StationID, n int) []station.Reading {
	readings := make([]station.Reading, 0, n)
	for i := n - 1; i >= 0; i-- {
		readings = append(readings, f.Reading(stationID, time.Duration(i)*24*time.Hour))
	}
	return readings
}

// CitizenReport returns a fake contamination report.
func (f *Fixtures) CitizenReport() station.CitizenReport {
	count := f.faker.IntRange(5, 300)
	return station.CitizenReport{
		ID:            core.ReportID(core.NewID()),
		Location:      fmt.Sprintf("%s, %s", f.faker.City(), f.faker.State()),
		ReporterName:  f.faker.Name(),
		Contact:       f.faker.Email(),
		Comments:      f.faker.Sentence(10),
		ParticleCount: count,
		RiskBand:      model.BandForCount(count),
		SubmittedAt:   core.Now(),
	}
}

// Result returns a fake prediction result for the given model kind.
func (f *Fixtures) Result(kind model.Kind) model.PredictionResult {
	metrics := map[string]float64{}
	switch kind {
	case model.KindDetection:
		metrics["particle_count"] = float64(f.faker.IntRange(0, 250))
		metrics["avg_confidence"] = f.faker.Float64Range(0.4, 0.95)
	case model.KindSpectral:
		metrics["match_score"] = f.faker.Float64Range(0.5, 0.99)
	case model.KindWQI:
		metrics["wqi"] = f.faker.Float64Range(20, 95)
	case model.KindForecast:
		metrics["forecast_final_wqi"] = f.faker.Float64Range(20, 95)
		metrics["forecast_min_wqi"] = f.faker.Float64Range(15, 80)
		metrics["forecast_trend"] = f.faker.Float64Range(-2, 2)
	case model.KindOxygen:
		metrics["do_min"] = f.faker.Float64Range(1, 9)
		metrics["do_saturation"] = f.faker.Float64Range(7, 11)
		metrics["do_min_hour"] = float64(f.faker.IntRange(0, 72))
	case model.KindTwin:
		metrics["delta_wqi"] = f.faker.Float64Range(-5, 25)
		metrics["baseline_final_wqi"] = f.faker.Float64Range(20, 70)
		metrics["scenario_final_wqi"] = f.faker.Float64Range(30, 90)
	}
	return model.PredictionResult{
		ID:         core.ResultID(core.NewID()),
		Kind:       kind,
		InputRef:   f.faker.UUID(),
		Metrics:    metrics,
		Confidence: f.faker.Float64Range(0.3, 0.95),
		CreatedAt:  core.Now(),
	}
}
