package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"agrismart/domain/core"
	apperrors "agrismart/internal/errors"
	"agrismart/ports"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndListRecent(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	runID := core.NewRunID()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rec := &ports.PredictionRecord{
			ID:        core.NewPredictionID(),
			RunID:     runID,
			Kind:      ports.PredictionKindYield,
			Input:     `{"crop":"Rice"}`,
			Output:    `{"predicted_yield":3000}`,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Save(ctx, rec))
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].CreatedAt.After(recent[1].CreatedAt))
	assert.Equal(t, runID, recent[0].RunID)
	assert.Equal(t, ports.PredictionKindYield, recent[0].Kind)
	assert.Equal(t, `{"crop":"Rice"}`, recent[0].Input)
}

func TestSaveFillsTimestamp(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	rec := &ports.PredictionRecord{
		ID:     core.NewPredictionID(),
		RunID:  core.NewRunID(),
		Kind:   ports.PredictionKindRecommend,
		Input:  "{}",
		Output: "{}",
	}
	require.NoError(t, repo.Save(context.Background(), rec))
	assert.False(t, rec.CreatedAt.IsZero())

	all, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveRequiresID(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	err := repo.Save(context.Background(), &ports.PredictionRecord{})
	assert.Equal(t, apperrors.CodeValidationError, apperrors.GetCode(err))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	db, err := Open(context.Background(), "sqlite3", path)
	if err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), "sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var versions int
	require.NoError(t, db.Get(&versions, `SELECT COUNT(*) FROM schema_version`))
	assert.Equal(t, 1, versions)
}
