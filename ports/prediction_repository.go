package ports

import (
	"context"
	"time"

	"agrismart/domain/core"
)

// PredictionKind distinguishes history entries
type PredictionKind string

const (
	PredictionKindYield     PredictionKind = "predict_yield"
	PredictionKindRecommend PredictionKind = "recommend_crops"
)

// PredictionRecord is one stored prediction
type PredictionRecord struct {
	ID        core.PredictionID `db:"id" json:"id"`
	RunID     core.RunID        `db:"run_id" json:"run_id"`
	Kind      PredictionKind    `db:"kind" json:"kind"`
	Input     string            `db:"input" json:"input"`
	Output    string            `db:"output" json:"output"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// PredictionRepository stores prediction history
type PredictionRepository interface {
	Save(ctx context.Context, rec *PredictionRecord) error
	ListRecent(ctx context.Context, limit int) ([]PredictionRecord, error)
	Count(ctx context.Context) (int, error)
}
