package ports

import (
	"context"

	"agrismart/domain/artifacts"
)

// ForestParams configures one ensemble fit
type ForestParams struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	// MaxFeatures is the number of candidate features per split; 0 means all
	MaxFeatures int
	Seed        int64
}

// EnsembleFactory fits tree ensembles from numeric matrices
type EnsembleFactory interface {
	FitRegressor(ctx context.Context, x [][]float64, y []float64, params ForestParams) (artifacts.YieldModel, error)
	FitClassifier(ctx context.Context, x [][]float64, y []int, params ForestParams) (artifacts.CropModel, error)
}
