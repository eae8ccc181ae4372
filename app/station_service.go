package app

import (
	"context"

	"github.com/montanaflynn/stats"

	"pravaah/domain/core"
	"pravaah/domain/station"
	"pravaah/internal"
	"pravaah/ports"
)

// StationOverview is one station with its latest reading, shown on the
// nearby water bodies view.
type StationOverview struct {
	Station station.Station  `json:"station"`
	Latest  *station.Reading `json:"latest,omitempty"`
}

// ReadingSummary aggregates a station's recent WQI history.
type ReadingSummary struct {
	StationID core.StationID `json:"station_id"`
	Count     int            `json:"count"`
	MeanWQI   float64        `json:"mean_wqi"`
	MedianWQI float64        `json:"median_wqi"`
	P10WQI    float64        `json:"p10_wqi"`
	StdDev    float64        `json:"std_dev"`
	LatestWQI float64        `json:"latest_wqi"`
}

// StationService serves monitored water bodies. Latest readings go
// through the cache when one is configured; the repository is the
// source of truth.
type StationService struct {
	repo   ports.StationRepository
	cache  ports.ReadingsCache
	logger *internal.Logger
}

// NewStationService creates a station service. The cache may be nil.
func NewStationService(repo ports.StationRepository, cache ports.ReadingsCache, logger *internal.Logger) *StationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StationService{repo: repo, cache: cache, logger: logger}
}

// Nearby returns stations matching a location query with their latest
// readings attached.
func (s *StationService) Nearby(ctx context.Context, location string, limit int) ([]StationOverview, error) {
	var (
		found []station.Station
		err   error
	)
	if location == "" {
		found, err = s.repo.List(ctx)
	} else {
		found, err = s.repo.FindByLocation(ctx, location, limit)
	}
	if err != nil {
		return nil, err
	}

	overviews := make([]StationOverview, 0, len(found))
	for _, st := range found {
		overview := StationOverview{Station: st}
		if latest, err := s.latestReading(ctx, st.ID); err == nil {
			overview.Latest = latest
		} else if !core.IsNotFoundError(err) {
			s.logger.Warn("failed to load latest reading for %s: %v", st.ID, err)
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

func (s *StationService) latestReading(ctx context.Context, id core.StationID) (*station.Reading, error) {
	if s.cache != nil {
		if reading, err := s.cache.GetLatest(ctx, id); err == nil {
			return reading, nil
		}
	}
	reading, err := s.repo.LatestReading(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, reading); err != nil {
			s.logger.Warn("failed to cache reading for %s: %v", id, err)
		}
	}
	return reading, nil
}

// RecordReading persists a new sensor reading and refreshes the cache.
func (s *StationService) RecordReading(ctx context.Context, reading *station.Reading) error {
	if err := s.repo.SaveReading(ctx, reading); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, reading); err != nil {
			s.logger.Warn("failed to cache reading for %s: %v", reading.StationID, err)
		}
	}
	return nil
}

// Summary computes WQI statistics over a station's recent history.
func (s *StationService) Summary(ctx context.Context, id core.StationID, limit int) (*ReadingSummary, error) {
	history, err := s.repo.ReadingHistory(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, core.ErrStationNotFound
	}

	scores := make([]float64, len(history))
	for i, r := range history {
		scores[i] = r.WQI
	}

	mean, _ := stats.Mean(scores)
	median, _ := stats.Median(scores)
	p10, _ := stats.Percentile(scores, 10)
	sd, _ := stats.StandardDeviation(scores)

	return &ReadingSummary{
		StationID: id,
		Count:     len(history),
		MeanWQI:   mean,
		MedianWQI: median,
		P10WQI:    p10,
		StdDev:    sd,
		LatestWQI: history[0].WQI,
	}, nil
}
