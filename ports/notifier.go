package ports

import (
	"context"

	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/domain/station"
)

// AlertPublisher fans raised alerts out to live consumers (websocket
// hub, Redis channel). Publishing is best-effort: a failed publish is
// logged, never surfaced to the analysis caller.
type AlertPublisher interface {
	Publish(ctx context.Context, alerts []alert.Alert) error
}

// ReadingsCache caches the latest reading per station for the nearby
// water bodies view.
type ReadingsCache interface {
	SetLatest(ctx context.Context, reading *station.Reading) error
	GetLatest(ctx context.Context, stationID core.StationID) (*station.Reading, error)
}
