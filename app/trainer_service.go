package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"agrismart/adapters/forest"
	"agrismart/domain/artifacts"
	"agrismart/domain/core"
	"agrismart/domain/dataset"
	"agrismart/domain/features"
	"agrismart/internal"
	"agrismart/internal/errors"
	"agrismart/internal/evaluation"
	"agrismart/internal/partition"
	"agrismart/ports"
)

// minYieldTrees is the smallest regression forest the trainer will fit;
// confidence estimation reads the first ten trees
const minYieldTrees = 10

// TrainingOptions controls one training run
type TrainingOptions struct {
	Samples      int
	Seed         int64
	TestFraction float64
	YieldTrees   int
	CropTrees    int
}

// DefaultTrainingOptions returns 1200 samples, seed 42, an 80/20 split and 100 trees per forest
func DefaultTrainingOptions() TrainingOptions {
	return TrainingOptions{
		Samples:      1200,
		Seed:         42,
		TestFraction: 0.2,
		YieldTrees:   100,
		CropTrees:    100,
	}
}

// YieldForestParams are the regression forest hyperparameters
func (o TrainingOptions) YieldForestParams() ports.ForestParams {
	trees := o.YieldTrees
	if trees < minYieldTrees {
		trees = minYieldTrees
	}
	return ports.ForestParams{
		Trees:           trees,
		MaxDepth:        15,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  3,
		Seed:            o.Seed,
	}
}

// CropForestParams are the classification forest hyperparameters
func (o TrainingOptions) CropForestParams() ports.ForestParams {
	trees := o.CropTrees
	if trees < 1 {
		trees = 1
	}
	return ports.ForestParams{
		Trees:           trees,
		MaxDepth:        20,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		MaxFeatures:     forest.SqrtFeatures(len(features.LocationColumns())),
		Seed:            o.Seed,
	}
}

// TrainerService generates data, fits both forests, evaluates them and persists the bundle
type TrainerService struct {
	generator ports.DatasetGenerator
	ensembles ports.EnsembleFactory
	store     ports.ArtifactStore
	logger    *internal.Logger
	now       func() time.Time
}

// NewTrainerService creates a trainer service
func NewTrainerService(generator ports.DatasetGenerator, ensembles ports.EnsembleFactory, store ports.ArtifactStore, logger *internal.Logger) *TrainerService {
	if logger == nil {
		logger = internal.Discard()
	}
	return &TrainerService{
		generator: generator,
		ensembles: ensembles,
		store:     store,
		logger:    logger.With("trainer"),
		now:       time.Now,
	}
}

// Train runs the full pipeline. Nothing is persisted unless every step before
// the save succeeds.
func (s *TrainerService) Train(ctx context.Context, opts TrainingOptions) (*artifacts.Bundle, error) {
	ds, err := s.generator.Generate(ctx, opts.Samples, opts.Seed)
	if err != nil {
		return nil, trainingError(err, "failed to generate training data")
	}
	return s.TrainOn(ctx, ds, opts)
}

// TrainOn fits and persists a bundle for an existing dataset, such as one
// read back from a workbook. opts.Samples is ignored.
func (s *TrainerService) TrainOn(ctx context.Context, ds *dataset.Dataset, opts TrainingOptions) (*artifacts.Bundle, error) {
	start := time.Now()
	runID := core.NewRunID()
	s.logger.Info("training run %s: %d samples, seed %d", runID, ds.Len(), opts.Seed)

	bundle, err := s.Fit(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	bundle.Stats.RunID = runID

	fingerprints, err := s.store.Save(ctx, bundle)
	if err != nil {
		return nil, trainingError(err, "failed to persist artifacts")
	}
	bundle.Stats.Fingerprints = fingerprints

	s.logger.Info("training run %s finished in %s: r2=%.4f mse=%.1f accuracy=%.4f",
		runID, time.Since(start).Round(time.Millisecond), bundle.Stats.YieldR2, bundle.Stats.YieldMSE, bundle.Stats.CropAccuracy)
	return bundle, nil
}

// Fit encodes ds, fits both forests on the training split and scores them on
// the held-out split. It does not touch the artifact store.
func (s *TrainerService) Fit(ctx context.Context, ds *dataset.Dataset, opts TrainingOptions) (*artifacts.Bundle, error) {
	enc, err := features.Fit(ds)
	if err != nil {
		return nil, trainingError(err, "failed to fit feature encoders")
	}
	m, err := enc.TransformDataset(ds)
	if err != nil {
		return nil, trainingError(err, "failed to encode dataset")
	}

	split, err := partition.New(opts.Seed).Split(ds.Len(), opts.TestFraction)
	if err != nil {
		return nil, trainingError(err, "failed to split dataset")
	}

	yieldModel, err := s.ensembles.FitRegressor(ctx,
		partition.Rows(m.YieldX, split.Train), partition.Rows(m.Yields, split.Train), opts.YieldForestParams())
	if err != nil {
		return nil, trainingError(err, "failed to fit yield model")
	}
	cropModel, err := s.ensembles.FitClassifier(ctx,
		partition.Rows(m.CropX, split.Train), partition.Rows(m.CropCodes, split.Train), opts.CropForestParams())
	if err != nil {
		return nil, trainingError(err, "failed to fit recommendation model")
	}

	stats, err := s.evaluate(yieldModel, cropModel, m, split)
	if err != nil {
		return nil, trainingError(err, "failed to evaluate models")
	}

	spread, err := evaluation.Summarize(ds.Yields())
	if err != nil {
		return nil, trainingError(err, "failed to summarise yields")
	}

	stats.TrainingSamples = ds.Len()
	stats.TestSamples = len(split.Test)
	stats.NumCrops = ds.Distinct(dataset.ColumnCrop)
	stats.NumStates = ds.Distinct(dataset.ColumnState)
	stats.YieldMin = spread.Min
	stats.YieldMax = spread.Max
	stats.TrainingDate = s.now().UTC()
	stats.Algorithm = artifacts.AlgorithmRandomForest
	stats.Features = append([]string(nil), features.Columns...)
	stats.Seed = opts.Seed

	return &artifacts.Bundle{
		YieldModel: yieldModel,
		CropModel:  cropModel,
		Encoder:    enc,
		Stats:      *stats,
	}, nil
}

func (s *TrainerService) evaluate(yieldModel artifacts.YieldModel, cropModel artifacts.CropModel, m *features.Matrices, split *partition.Result) (*artifacts.TrainingStats, error) {
	predicted := make([]float64, len(split.Test))
	actual := make([]float64, len(split.Test))
	predictedCrops := make([]int, len(split.Test))
	actualCrops := make([]int, len(split.Test))
	for i, row := range split.Test {
		predicted[i] = yieldModel.Predict(m.YieldX[row])
		actual[i] = m.Yields[row]
		predictedCrops[i] = cropModel.Predict(m.CropX[row])
		actualCrops[i] = m.CropCodes[row]
	}

	mse, err := evaluation.MSE(predicted, actual)
	if err != nil {
		return nil, err
	}
	r2, err := evaluation.R2(predicted, actual)
	if err != nil {
		return nil, err
	}
	accuracy, err := evaluation.Accuracy(predictedCrops, actualCrops)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("evaluated on %d held-out rows", len(split.Test))
	return &artifacts.TrainingStats{
		YieldMSE:     mse,
		YieldR2:      r2,
		CropAccuracy: accuracy,
	}, nil
}

// trainingError keeps context cancellation and AppError codes intact and tags
// insufficient data
func trainingError(err error, message string) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", message, err)
	case errors.IsAppError(err):
		return errors.Wrap(err, message)
	case stderrors.Is(err, core.ErrInsufficientData):
		return errors.InsufficientData(message, err)
	default:
		return errors.Wrap(err, message)
	}
}
