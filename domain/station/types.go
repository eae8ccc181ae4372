package station

import (
	"pravaah/domain/core"
	"pravaah/domain/model"
)

// Station is one monitored water body.
type Station struct {
	ID        core.StationID `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	WaterBody string         `json:"water_body" db:"water_body"` // river, lake, canal, reservoir
	Location  string         `json:"location" db:"location"`
	Latitude  float64        `json:"latitude" db:"latitude"`
	Longitude float64        `json:"longitude" db:"longitude"`
	CreatedAt core.Timestamp `json:"created_at" db:"created_at"`
}

// Reading is one timestamped sensor sample at a station.
type Reading struct {
	ID         core.SampleID     `json:"id" db:"id"`
	StationID  core.StationID    `json:"station_id" db:"station_id"`
	Sample     model.WaterSample `json:"sample"`
	WQI        float64           `json:"wqi" db:"wqi"`
	RecordedAt core.Timestamp    `json:"recorded_at" db:"recorded_at"`
}

// CitizenReport is a contamination report submitted from the public
// view when a detection lands in the moderate or severe band.
type CitizenReport struct {
	ID            core.ReportID  `json:"id" db:"id"`
	Location      string         `json:"location" db:"location"`
	ReporterName  string         `json:"reporter_name" db:"reporter_name"`
	Contact       string         `json:"contact" db:"contact"`
	Comments      string         `json:"comments" db:"comments"`
	ParticleCount int            `json:"particle_count" db:"particle_count"`
	RiskBand      model.RiskBand `json:"risk_band" db:"risk_band"`
	SubmittedAt   core.Timestamp `json:"submitted_at" db:"submitted_at"`
}

// Validate checks a citizen report before persisting.
func (r CitizenReport) Validate() error {
	if r.Location == "" {
		return core.NewInvalidInputError("location", "report needs a location")
	}
	if r.ParticleCount < 0 {
		return core.NewInvalidInputError("particle_count", "must be non-negative")
	}
	return nil
}
