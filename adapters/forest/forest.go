// Package forest fits bagged CART ensembles: regression forests with a
// variance criterion and classification forests with Gini impurity.
package forest

import (
	"context"
	"encoding/gob"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"agrismart/domain/artifacts"
	"agrismart/domain/core"
	"agrismart/internal"
	"agrismart/ports"

	"golang.org/x/sync/errgroup"
)

func init() {
	gob.Register(&Regressor{})
	gob.Register(&Classifier{})
}

// Stream names used to derive per-tree seeds
const (
	regressorStream  = "yield_forest"
	classifierStream = "crop_forest"
)

// Regressor is a fitted regression forest
type Regressor struct {
	Trees     []*Tree
	NFeatures int
}

// Predict returns the mean of all tree predictions
func (r *Regressor) Predict(x []float64) float64 {
	sum := 0.0
	for _, t := range r.Trees {
		sum += t.Leaf(x)[0]
	}
	return sum / float64(len(r.Trees))
}

// TreePredictions returns the predictions of the first n trees
func (r *Regressor) TreePredictions(x []float64, n int) []float64 {
	if n > len(r.Trees) {
		n = len(r.Trees)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = r.Trees[i].Leaf(x)[0]
	}
	return out
}

// NumTrees reports the ensemble size
func (r *Regressor) NumTrees() int {
	return len(r.Trees)
}

// Classifier is a fitted classification forest
type Classifier struct {
	Trees     []*Tree
	Labels    []int
	NFeatures int
}

// PredictProba averages the leaf class distributions of all trees
func (c *Classifier) PredictProba(x []float64) []float64 {
	proba := make([]float64, len(c.Labels))
	for _, t := range c.Trees {
		for k, p := range t.Leaf(x) {
			proba[k] += p
		}
	}
	for k := range proba {
		proba[k] /= float64(len(c.Trees))
	}
	return proba
}

// Predict returns the label with the highest averaged probability
func (c *Classifier) Predict(x []float64) int {
	proba := c.PredictProba(x)
	best := 0
	for k := 1; k < len(proba); k++ {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return c.Labels[best]
}

// Classes lists the labels seen during fit, ascending
func (c *Classifier) Classes() []int {
	out := make([]int, len(c.Labels))
	copy(out, c.Labels)
	return out
}

// Factory implements ports.EnsembleFactory
type Factory struct {
	rng    ports.RNGPort
	logger *internal.Logger
}

// NewFactory creates a forest factory drawing per-tree streams from rng
func NewFactory(rng ports.RNGPort, logger *internal.Logger) *Factory {
	if logger == nil {
		logger = internal.Discard()
	}
	return &Factory{rng: rng, logger: logger.With("forest")}
}

// SqrtFeatures is the usual classification default for candidate features per split
func SqrtFeatures(width int) int {
	m := int(math.Sqrt(float64(width)))
	if m < 1 {
		return 1
	}
	return m
}

// FitRegressor fits a regression forest
func (f *Factory) FitRegressor(ctx context.Context, x [][]float64, y []float64, params ports.ForestParams) (artifacts.YieldModel, error) {
	if err := validate(x, len(y), params); err != nil {
		return nil, err
	}
	trees, err := f.fit(ctx, regressorStream, x, varianceCriterion{y: y}, params)
	if err != nil {
		return nil, err
	}
	return &Regressor{Trees: trees, NFeatures: len(x[0])}, nil
}

// FitClassifier fits a classification forest. Labels may be any ints; they are
// mapped to dense class indices internally.
func (f *Factory) FitClassifier(ctx context.Context, x [][]float64, y []int, params ports.ForestParams) (artifacts.CropModel, error) {
	if err := validate(x, len(y), params); err != nil {
		return nil, err
	}

	labels := distinct(y)
	index := make(map[int]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	dense := make([]int, len(y))
	for i, l := range y {
		dense[i] = index[l]
	}

	trees, err := f.fit(ctx, classifierStream, x, giniCriterion{y: dense, classes: len(labels)}, params)
	if err != nil {
		return nil, err
	}
	return &Classifier{Trees: trees, Labels: labels, NFeatures: len(x[0])}, nil
}

// fit grows all trees concurrently. Every tree owns a stream derived from its
// index, so the result does not depend on scheduling.
func (f *Factory) fit(ctx context.Context, stream string, x [][]float64, crit criterion, params ports.ForestParams) ([]*Tree, error) {
	start := time.Now()
	trees := make([]*Tree, params.Trees)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trees {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng, err := f.rng.Stream(gctx, stream, i, params.Seed)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			trees[i] = grow(x, crit, params, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f.logger.Debug("fitted %d %s trees on %d rows in %s", len(trees), stream, len(x), time.Since(start))
	return trees, nil
}

func validate(x [][]float64, labels int, params ports.ForestParams) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: empty training matrix", core.ErrInsufficientData)
	}
	if len(x) != labels {
		return fmt.Errorf("%w: %d rows but %d labels", core.ErrMalformedInput, len(x), labels)
	}
	width := len(x[0])
	if width == 0 {
		return fmt.Errorf("%w: training matrix has no columns", core.ErrMalformedInput)
	}
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", core.ErrMalformedInput, i, len(row), width)
		}
	}
	switch {
	case params.Trees < 1:
		return fmt.Errorf("forest needs at least one tree, got %d", params.Trees)
	case params.MaxDepth < 1:
		return fmt.Errorf("max depth must be positive, got %d", params.MaxDepth)
	case params.MinSamplesSplit < 2:
		return fmt.Errorf("min samples split must be at least 2, got %d", params.MinSamplesSplit)
	case params.MinSamplesLeaf < 1:
		return fmt.Errorf("min samples leaf must be positive, got %d", params.MinSamplesLeaf)
	case params.MaxFeatures < 0:
		return fmt.Errorf("max features cannot be negative, got %d", params.MaxFeatures)
	}
	return nil
}

func distinct(y []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
