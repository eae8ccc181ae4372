package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pravaah/domain/alert"
	"pravaah/ports"
)

// ThresholdRepositoryImpl implements ThresholdRepository for PostgreSQL
type ThresholdRepositoryImpl struct {
	db *sqlx.DB
}

// NewThresholdRepository creates a new PostgreSQL threshold repository
func NewThresholdRepository(db *sqlx.DB) ports.ThresholdRepository {
	return &ThresholdRepositoryImpl{db: db}
}

// SaveOverrides replaces the stored admin overrides. Runs in one
// transaction so concurrent evaluations never see a half-written set.
func (r *ThresholdRepositoryImpl) SaveOverrides(ctx context.Context, rules []alert.Rule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM threshold_overrides`); err != nil {
		return err
	}
	for _, rule := range rules {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO threshold_overrides (metric, comparator, limit_value, severity, message, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
		`, rule.Metric, string(rule.Comparator), rule.Limit, string(rule.Severity), rule.Message)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadOverrides returns the stored admin overrides.
func (r *ThresholdRepositoryImpl) LoadOverrides(ctx context.Context) ([]alert.Rule, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT metric, comparator, limit_value, severity, message
		FROM threshold_overrides ORDER BY metric, comparator
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []alert.Rule
	for rows.Next() {
		var (
			rule                 alert.Rule
			comparator, severity string
		)
		if err := rows.Scan(&rule.Metric, &comparator, &rule.Limit, &severity, &rule.Message); err != nil {
			return nil, err
		}
		rule.Comparator = alert.Comparator(comparator)
		rule.Severity = alert.Severity(severity)
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
