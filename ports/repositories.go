package ports

import (
	"context"

	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/domain/station"
)

// ResultRepository persists prediction results for history views.
type ResultRepository interface {
	Save(ctx context.Context, result *model.PredictionResult) error
	Get(ctx context.Context, id core.ResultID) (*model.PredictionResult, error)
	ListRecent(ctx context.Context, kind model.Kind, limit int) ([]model.PredictionResult, error)
}

// AlertRepository persists raised alerts.
type AlertRepository interface {
	SaveAll(ctx context.Context, alerts []alert.Alert) error
	ListRecent(ctx context.Context, limit int) ([]alert.Alert, error)
	CountBySeverity(ctx context.Context) (map[alert.Severity]int, error)
}

// StationRepository provides monitored water bodies and their readings.
type StationRepository interface {
	List(ctx context.Context) ([]station.Station, error)
	FindByLocation(ctx context.Context, location string, limit int) ([]station.Station, error)
	SaveStation(ctx context.Context, s *station.Station) error
	SaveReading(ctx context.Context, r *station.Reading) error
	LatestReading(ctx context.Context, stationID core.StationID) (*station.Reading, error)
	ReadingHistory(ctx context.Context, stationID core.StationID, limit int) ([]station.Reading, error)
}

// CitizenReportRepository stores public contamination reports.
type CitizenReportRepository interface {
	Save(ctx context.Context, report *station.CitizenReport) error
	ListRecent(ctx context.Context, limit int) ([]station.CitizenReport, error)
}

// ThresholdRepository stores admin threshold overrides which are merged
// over the YAML baseline at evaluation time.
type ThresholdRepository interface {
	SaveOverrides(ctx context.Context, rules []alert.Rule) error
	LoadOverrides(ctx context.Context) ([]alert.Rule, error)
}
