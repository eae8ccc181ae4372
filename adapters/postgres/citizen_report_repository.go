package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/domain/station"
	"pravaah/ports"
)

// CitizenReportRepositoryImpl implements CitizenReportRepository for PostgreSQL
type CitizenReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewCitizenReportRepository creates a new PostgreSQL citizen report repository
func NewCitizenReportRepository(db *sqlx.DB) ports.CitizenReportRepository {
	return &CitizenReportRepositoryImpl{db: db}
}

// Save persists a submitted contamination report.
func (r *CitizenReportRepositoryImpl) Save(ctx context.Context, report *station.CitizenReport) error {
	if err := report.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO citizen_reports (id, location, reporter_name, contact, comments,
			particle_count, risk_band, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, report.ID.String(), report.Location, report.ReporterName, report.Contact,
		report.Comments, report.ParticleCount, string(report.RiskBand), report.SubmittedAt.Time())
	return err
}

// ListRecent returns recent citizen reports, newest first.
func (r *CitizenReportRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]station.CitizenReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, location, reporter_name, contact, comments, particle_count, risk_band, submitted_at
		FROM citizen_reports ORDER BY submitted_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []station.CitizenReport
	for rows.Next() {
		var (
			report      station.CitizenReport
			id, band    string
			submittedAt time.Time
		)
		if err := rows.Scan(&id, &report.Location, &report.ReporterName, &report.Contact,
			&report.Comments, &report.ParticleCount, &band, &submittedAt); err != nil {
			return nil, err
		}
		report.ID = core.ReportID(id)
		report.RiskBand = model.RiskBand(band)
		report.SubmittedAt = core.NewTimestamp(submittedAt)
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
