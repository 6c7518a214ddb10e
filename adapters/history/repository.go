// Package history stores recorded predictions in a SQL database.
package history

import (
	"context"
	"fmt"
	"time"

	"agrismart/domain/core"
	"agrismart/internal/errors"
	"agrismart/internal/migration"
	"agrismart/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultLimit bounds ListRecent when no positive limit is given
const DefaultLimit = 20

// Open connects to the history database and applies migrations
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to connect to %s history database", driver), err)
	}
	if driver == "sqlite3" {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, errors.DatabaseError("failed to migrate history database", err)
	}
	return db, nil
}

// Repository implements ports.PredictionRepository with sqlx
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a history repository on an open database
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts one prediction record, filling CreatedAt when zero. The ID is required.
func (r *Repository) Save(ctx context.Context, rec *ports.PredictionRecord) error {
	if core.ID(rec.ID).IsEmpty() {
		return errors.ValidationError("prediction record needs an id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO prediction_history (id, run_id, kind, input, output, created_at)
		VALUES (:id, :run_id, :kind, :input, :output, :created_at)
	`, rec)
	if err != nil {
		return errors.DatabaseError("failed to save prediction", err)
	}
	return nil
}

// ListRecent returns the newest records first
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]ports.PredictionRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var records []ports.PredictionRecord
	err := r.db.SelectContext(ctx, &records, r.db.Rebind(`
		SELECT id, run_id, kind, input, output, created_at
		FROM prediction_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list predictions", err)
	}
	return records, nil
}

// Count returns the number of stored predictions
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM prediction_history`); err != nil {
		return 0, errors.DatabaseError("failed to count predictions", err)
	}
	return n, nil
}
