package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"pravaah/domain/alert"
	"pravaah/domain/core"
	"pravaah/ports"
)

// AlertRepositoryImpl implements AlertRepository for PostgreSQL
type AlertRepositoryImpl struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new PostgreSQL alert repository
func NewAlertRepository(db *sqlx.DB) ports.AlertRepository {
	return &AlertRepositoryImpl{db: db}
}

// SaveAll persists raised alerts. Re-evaluating the same result yields
// the same deterministic alert IDs, so duplicates are ignored.
func (r *AlertRepositoryImpl) SaveAll(ctx context.Context, alerts []alert.Alert) error {
	for _, a := range alerts {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO alerts (id, metric, observed, threshold, severity, message, result_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, a.ID.String(), a.Metric, a.Observed, a.Limit, string(a.Severity), a.Message, a.ResultID.String(), a.CreatedAt.Time())
		if err != nil {
			return err
		}
	}
	return nil
}

// ListRecent returns recent alerts, newest first.
func (r *AlertRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]alert.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, metric, observed, threshold, severity, message, result_id, created_at
		FROM alerts ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []alert.Alert
	for rows.Next() {
		var (
			a             alert.Alert
			id, resultID  string
			severity      string
			createdAt     time.Time
		)
		if err := rows.Scan(&id, &a.Metric, &a.Observed, &a.Limit, &severity, &a.Message, &resultID, &createdAt); err != nil {
			return nil, err
		}
		a.ID = core.AlertID(id)
		a.Severity = alert.Severity(severity)
		a.ResultID = core.ResultID(resultID)
		a.CreatedAt = core.NewTimestamp(createdAt)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// CountBySeverity aggregates stored alerts for the admin status view.
func (r *AlertRepositoryImpl) CountBySeverity(ctx context.Context) (map[alert.Severity]int, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT severity, COUNT(*) FROM alerts GROUP BY severity
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[alert.Severity]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		counts[alert.Severity(severity)] = count
	}
	return counts, rows.Err()
}
