package app

import (
	"context"

	"agrismart/domain/core"
	"agrismart/internal"
	"agrismart/internal/errors"
	"agrismart/ports"
)

// BootstrapDeps are the collaborators needed to obtain a ready predictor
type BootstrapDeps struct {
	Store   ports.ArtifactStore
	Trainer *TrainerService
	Options TrainingOptions
	History ports.PredictionRepository
	Logger  *internal.Logger
}

// Bootstrap loads the persisted bundle, training once when no usable artifact
// set exists. The returned predictor never trains on its own.
func Bootstrap(ctx context.Context, deps BootstrapDeps) (*Predictor, error) {
	logger := deps.Logger
	if logger == nil {
		logger = internal.Discard()
	}
	logger = logger.With("bootstrap")

	bundle, err := deps.Store.Load(ctx)
	if err == nil {
		logger.Debug("loaded run %s from %s", bundle.Stats.RunID, deps.Store.Dir())
		return NewPredictor(bundle, deps.History, deps.Logger), nil
	}
	if !core.IsMissingArtifact(err) {
		return nil, err
	}

	logger.Warn("no usable artifacts in %s (%v); training a new model", deps.Store.Dir(), err)
	bundle, err = deps.Trainer.Train(ctx, deps.Options)
	if err != nil {
		return nil, errors.Wrap(err, "no trained model available and training failed")
	}
	return NewPredictor(bundle, deps.History, deps.Logger), nil
}
