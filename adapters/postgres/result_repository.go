package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/ports"
)

// ResultRepositoryImpl implements ResultRepository for PostgreSQL
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

// resultRow mirrors the results table; metrics and detail are JSONB.
type resultRow struct {
	ID         string          `db:"id"`
	Kind       string          `db:"kind"`
	InputRef   string          `db:"input_ref"`
	Metrics    json.RawMessage `db:"metrics"`
	Confidence float64         `db:"confidence"`
	Detail     json.RawMessage `db:"detail"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Save persists a prediction result.
func (r *ResultRepositoryImpl) Save(ctx context.Context, result *model.PredictionResult) error {
	metrics, err := json.Marshal(result.Metrics)
	if err != nil {
		return err
	}
	detail, err := json.Marshal(result.Detail)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO results (id, kind, input_ref, metrics, confidence, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, result.ID.String(), string(result.Kind), result.InputRef, metrics, result.Confidence, detail, result.CreatedAt.Time())
	return err
}

// Get retrieves one result by ID.
func (r *ResultRepositoryImpl) Get(ctx context.Context, id core.ResultID) (*model.PredictionResult, error) {
	var row resultRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, kind, input_ref, metrics, confidence, detail, created_at
		FROM results WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return rowToResult(row)
}

// ListRecent returns the most recent results of a kind, newest first.
func (r *ResultRepositoryImpl) ListRecent(ctx context.Context, kind model.Kind, limit int) ([]model.PredictionResult, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []resultRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, kind, input_ref, metrics, confidence, detail, created_at
		FROM results WHERE kind = $1
		ORDER BY created_at DESC LIMIT $2
	`, string(kind), limit)
	if err != nil {
		return nil, err
	}

	results := make([]model.PredictionResult, 0, len(rows))
	for _, row := range rows {
		result, err := rowToResult(row)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func rowToResult(row resultRow) (*model.PredictionResult, error) {
	result := &model.PredictionResult{
		ID:         core.ResultID(row.ID),
		Kind:       model.Kind(row.Kind),
		InputRef:   row.InputRef,
		Confidence: row.Confidence,
		CreatedAt:  core.NewTimestamp(row.CreatedAt),
	}
	if err := json.Unmarshal(row.Metrics, &result.Metrics); err != nil {
		return nil, err
	}
	if len(row.Detail) > 0 {
		var detail interface{}
		if err := json.Unmarshal(row.Detail, &detail); err != nil {
			return nil, err
		}
		result.Detail = detail
	}
	return result, nil
}
