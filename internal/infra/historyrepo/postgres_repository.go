package historyrepo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
)

// PostgresRepository implements analysis.HistoryRepository using pgx.
//
// Expected schema:
//
//	CREATE TABLE analyses (
//	    id         UUID PRIMARY KEY,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    exercise   TEXT NOT NULL,
//	    weight     DOUBLE PRECISION NOT NULL,
//	    result     JSONB NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a completed analysis.
func (r *PostgresRepository) Insert(ctx context.Context, rec analysis.Record) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO analyses (id, created_at, exercise, weight, result)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.CreatedAt, rec.Exercise, rec.Weight, payload)
	return err
}

// List returns the most recent analyses, newest first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]analysis.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, exercise, weight, result
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get fetches a single analysis by id.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (analysis.Record, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, exercise, weight, result
		FROM analyses
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return analysis.Record{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return analysis.Record{}, false, rows.Err()
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return analysis.Record{}, false, err
	}
	return rec, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (analysis.Record, error) {
	var (
		rec     analysis.Record
		payload []byte
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.Exercise, &rec.Weight, &payload); err != nil {
		return analysis.Record{}, err
	}
	if err := json.Unmarshal(payload, &rec.Result); err != nil {
		return analysis.Record{}, err
	}
	return rec, nil
}

var _ analysis.HistoryRepository = (*PostgresRepository)(nil)
