// Package testkit assembles small, fast training pipelines for tests.
package testkit

import (
	"context"
	"sync"

	"agrismart/adapters/filestore"
	"agrismart/adapters/forest"
	"agrismart/adapters/rng"
	"agrismart/adapters/synthesizer"
	"agrismart/app"
	"agrismart/domain/artifacts"
	"agrismart/internal"
	"agrismart/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	RNG       *rng.Adapter
	Generator *synthesizer.Generator
	Forests   *forest.Factory
	Store     *filestore.Store
	Logger    *internal.Logger
}

// New creates a test kit whose artifact store lives in dir
func New(dir string) *TestKit {
	logger := internal.Discard()
	r := rng.New()
	return &TestKit{
		RNG:       r,
		Generator: synthesizer.NewGenerator(r, logger),
		Forests:   forest.NewFactory(r, logger),
		Store:     filestore.New(dir, logger),
		Logger:    logger,
	}
}

// SmallOptions trains in well under a second while keeping every code path
func SmallOptions() app.TrainingOptions {
	return app.TrainingOptions{
		Samples:      400,
		Seed:         42,
		TestFraction: 0.2,
		YieldTrees:   12,
		CropTrees:    20,
	}
}

// Trainer returns a trainer over the kit's adapters
func (k *TestKit) Trainer() *app.TrainerService {
	return app.NewTrainerService(k.Generator, k.Forests, k.Store, k.Logger)
}

// TrainSmall trains and persists a small bundle
func (k *TestKit) TrainSmall(ctx context.Context) (*artifacts.Bundle, error) {
	return k.Trainer().Train(ctx, SmallOptions())
}

// BootstrapDeps wires Bootstrap against the kit
func (k *TestKit) BootstrapDeps(history ports.PredictionRepository) app.BootstrapDeps {
	return app.BootstrapDeps{
		Store:   k.Store,
		Trainer: k.Trainer(),
		Options: SmallOptions(),
		History: history,
		Logger:  k.Logger,
	}
}

// InMemoryHistory implements ports.PredictionRepository for tests
type InMemoryHistory struct {
	mu      sync.Mutex
	records []ports.PredictionRecord
}

// NewInMemoryHistory creates an empty history
func NewInMemoryHistory() *InMemoryHistory {
	return &InMemoryHistory{}
}

func (h *InMemoryHistory) Save(ctx context.Context, rec *ports.PredictionRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, *rec)
	return nil
}

func (h *InMemoryHistory) ListRecent(ctx context.Context, limit int) ([]ports.PredictionRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ports.PredictionRecord, 0, len(h.records))
	for i := len(h.records) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, h.records[i])
	}
	return out, nil
}

func (h *InMemoryHistory) Count(ctx context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records), nil
}
