package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/domain/station"
	"pravaah/ports"
)

// StationRepositoryImpl implements StationRepository for PostgreSQL
type StationRepositoryImpl struct {
	db *sqlx.DB
}

// NewStationRepository creates a new PostgreSQL station repository
func NewStationRepository(db *sqlx.DB) ports.StationRepository {
	return &StationRepositoryImpl{db: db}
}

type stationRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	WaterBody string    `db:"water_body"`
	Location  string    `db:"location"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	CreatedAt time.Time `db:"created_at"`
}

type readingRow struct {
	ID           string    `db:"id"`
	StationID    string    `db:"station_id"`
	PH           float64   `db:"ph"`
	TurbidityNTU float64   `db:"turbidity_ntu"`
	DOmgl        float64   `db:"do_mgl"`
	Conductivity float64   `db:"conductivity_us"`
	TemperatureC float64   `db:"temperature_c"`
	NitrateMGL   float64   `db:"nitrate_mgl"`
	TDSmgl       float64   `db:"tds_mgl"`
	BODmgl       float64   `db:"bod_mgl"`
	WQI          float64   `db:"wqi"`
	RecordedAt   time.Time `db:"recorded_at"`
}

// List returns all stations ordered by name.
func (r *StationRepositoryImpl) List(ctx context.Context) ([]station.Station, error) {
	var rows []stationRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, water_body, location, latitude, longitude, created_at
		FROM stations ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return stationsFromRows(rows), nil
}

// FindByLocation matches stations whose location or name contains the
// query, case-insensitively.
func (r *StationRepositoryImpl) FindByLocation(ctx context.Context, location string, limit int) ([]station.Station, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []stationRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, water_body, location, latitude, longitude, created_at
		FROM stations
		WHERE location ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2
	`, location, limit)
	if err != nil {
		return nil, err
	}
	return stationsFromRows(rows), nil
}

// SaveStation inserts or updates a station.
func (r *StationRepositoryImpl) SaveStation(ctx context.Context, s *station.Station) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stations (id, name, water_body, location, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, water_body = EXCLUDED.water_body,
			location = EXCLUDED.location, latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude
	`, s.ID.String(), s.Name, s.WaterBody, s.Location, s.Latitude, s.Longitude, s.CreatedAt.Time())
	return err
}

// SaveReading inserts one sensor reading.
func (r *StationRepositoryImpl) SaveReading(ctx context.Context, rd *station.Reading) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO readings (id, station_id, ph, turbidity_ntu, do_mgl, conductivity_us,
			temperature_c, nitrate_mgl, tds_mgl, bod_mgl, wqi, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, rd.ID.String(), rd.StationID.String(),
		rd.Sample.PH, rd.Sample.TurbidityNTU, rd.Sample.DOmgl, rd.Sample.Conductivity,
		rd.Sample.TemperatureC, rd.Sample.NitrateMGL, rd.Sample.TDSmgl, rd.Sample.BODmgl,
		rd.WQI, rd.RecordedAt.Time())
	return err
}

// LatestReading returns the newest reading for a station.
func (r *StationRepositoryImpl) LatestReading(ctx context.Context, stationID core.StationID) (*station.Reading, error) {
	var row readingRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, station_id, ph, turbidity_ntu, do_mgl, conductivity_us,
			temperature_c, nitrate_mgl, tds_mgl, bod_mgl, wqi, recorded_at
		FROM readings WHERE station_id = $1
		ORDER BY recorded_at DESC LIMIT 1
	`, stationID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrStationNotFound
	}
	if err != nil {
		return nil, err
	}
	reading := readingFromRow(row)
	return &reading, nil
}

// ReadingHistory returns recent readings for a station, newest first.
func (r *StationRepositoryImpl) ReadingHistory(ctx context.Context, stationID core.StationID, limit int) ([]station.Reading, error) {
	if limit <= 0 {
		limit = 30
	}
	var rows []readingRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, station_id, ph, turbidity_ntu, do_mgl, conductivity_us,
			temperature_c, nitrate_mgl, tds_mgl, bod_mgl, wqi, recorded_at
		FROM readings WHERE station_id = $1
		ORDER BY recorded_at DESC LIMIT $2
	`, stationID.String(), limit)
	if err != nil {
		return nil, err
	}
	readings := make([]station.Reading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, readingFromRow(row))
	}
	return readings, nil
}

func stationsFromRows(rows []stationRow) []station.Station {
	stations := make([]station.Station, 0, len(rows))
	for _, row := range rows {
		stations = append(stations, station.Station{
			ID:        core.StationID(row.ID),
			Name:      row.Name,
			WaterBody: row.WaterBody,
			Location:  row.Location,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			CreatedAt: core.NewTimestamp(row.CreatedAt),
		})
	}
	return stations
}

func readingFromRow(row readingRow) station.Reading {
	return station.Reading{
		ID:        core.SampleID(row.ID),
		StationID: core.StationID(row.StationID),
		Sample: model.WaterSample{
			PH:           row.PH,
			TurbidityNTU: row.TurbidityNTU,
			DOmgl:        row.DOmgl,
			Conductivity: row.Conductivity,
			TemperatureC: row.TemperatureC,
			NitrateMGL:   row.NitrateMGL,
			TDSmgl:       row.TDSmgl,
			BODmgl:       row.BODmgl,
		},
		WQI:        row.WQI,
		RecordedAt: core.NewTimestamp(row.RecordedAt),
	}
}
