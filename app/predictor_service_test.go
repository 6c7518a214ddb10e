package app_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"agrismart/app"
	"agrismart/domain/agronomy"
	"agrismart/domain/artifacts"
	"agrismart/domain/core"
	"agrismart/internal/errors"
	"agrismart/internal/testkit"
	"agrismart/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyPredictor(t *testing.T, history ports.PredictionRepository) *app.Predictor {
	t.Helper()
	kit := testkit.New(t.TempDir())
	bundle, err := kit.TrainSmall(context.Background())
	require.NoError(t, err)
	return app.NewPredictor(bundle, history, nil)
}

func TestPredictYieldDefaults(t *testing.T) {
	p := readyPredictor(t, nil)

	out, err := p.PredictYield(context.Background(), app.DefaultInput())
	require.NoError(t, err)

	stats := p.Stats()
	assert.GreaterOrEqual(t, out.PredictedYield, stats.YieldMin)
	assert.LessOrEqual(t, out.PredictedYield, stats.YieldMax)
	assert.GreaterOrEqual(t, out.Confidence, 60.0)
	assert.LessOrEqual(t, out.Confidence, 95.0)
	assert.Contains(t, []agronomy.YieldCategory{agronomy.YieldExcellent, agronomy.YieldGood, agronomy.YieldAverage, agronomy.YieldLow}, out.YieldCategory)
	assert.Equal(t, artifacts.AlgorithmRegressor, out.ModelInfo.Algorithm)
	assert.Equal(t, stats.TrainingSamples, out.ModelInfo.TrainingSamples)
	assert.Equal(t, stats.YieldR2, out.ModelInfo.R2Score)
}

func TestPredictYieldUnknownState(t *testing.T) {
	p := readyPredictor(t, nil)

	in := app.DefaultInput()
	in.State = "Atlantis"
	_, err := p.PredictYield(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownCategory, errors.GetCode(err))
	assert.True(t, core.IsUnknownCategory(err))
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestPredictYieldUnseenCropStillPredicts(t *testing.T) {
	p := readyPredictor(t, nil)
	stats := p.Stats()

	in := app.DefaultInput()
	in.Crop = "Moonflower"
	out, err := p.PredictYield(context.Background(), in)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, out.PredictedYield, math.Floor(stats.YieldMin))
	assert.LessOrEqual(t, out.PredictedYield, math.Ceil(stats.YieldMax))
	assert.GreaterOrEqual(t, out.Confidence, 60.0)
	assert.LessOrEqual(t, out.Confidence, 95.0)
	assert.NotEqual(t, agronomy.YieldUnknown, out.YieldCategory)
}

func TestRecommendCrops(t *testing.T) {
	p := readyPredictor(t, nil)

	in := app.DefaultInput()
	in.Crop = "Moonflower" // ignored for recommendations
	out, err := p.RecommendCrops(context.Background(), in)
	require.NoError(t, err)

	require.NotEmpty(t, out.Recommendations)
	assert.LessOrEqual(t, len(out.Recommendations), app.MaxRecommendations)
	assert.GreaterOrEqual(t, out.TotalAnalyzed, len(out.Recommendations))
	for i, rec := range out.Recommendations {
		assert.Greater(t, rec.SuitabilityScore, 1.0, rec.Crop)
		if i > 0 {
			assert.GreaterOrEqual(t, out.Recommendations[i-1].SuitabilityScore, rec.SuitabilityScore)
		}
		assert.GreaterOrEqual(t, rec.Confidence, 60.0)
		assert.NotEqual(t, agronomy.YieldUnknown, rec.YieldCategory)

		withCrop := app.DefaultInput()
		withCrop.Crop = rec.Crop
		yp, err := p.PredictYield(context.Background(), withCrop)
		require.NoError(t, err)
		assert.Equal(t, yp.PredictedYield, rec.PredictedYield)
	}

	assert.Equal(t, artifacts.AlgorithmClassifier, out.ModelInfo.Algorithm)
	assert.Equal(t, p.Stats().CropAccuracy, out.ModelInfo.Accuracy)
}

// fixedCrops returns the same probabilities for every input
type fixedCrops struct {
	proba   []float64
	classes []int
}

func (f fixedCrops) PredictProba(x []float64) []float64 { return append([]float64(nil), f.proba...) }
func (f fixedCrops) Predict(x []float64) int { return f.classes[0] }
func (f fixedCrops) Classes() []int { return f.classes }

func TestRecommendCropsTiesKeepClassOrder(t *testing.T) {
	kit := testkit.New(t.TempDir())
	bundle, err := kit.TrainSmall(context.Background())
	require.NoError(t, err)

	classes := bundle.CropModel.Classes()
	require.GreaterOrEqual(t, len(classes), 4)
	proba := make([]float64, len(classes))
	proba[0], proba[1], proba[2], proba[3] = 0.25, 0.25, 0.4, 0.005
	bundle.CropModel = fixedCrops{proba: proba, classes: classes}

	p := app.NewPredictor(bundle, nil, nil)
	out, err := p.RecommendCrops(context.Background(), app.DefaultInput())
	require.NoError(t, err)

	var want []string
	for _, k := range []int{2, 0, 1} {
		name, err := bundle.Encoder.DecodeCrop(classes[k])
		require.NoError(t, err)
		want = append(want, name)
	}
	var got []string
	for _, rec := range out.Recommendations {
		got = append(got, rec.Crop)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, out.TotalAnalyzed, "the 0.5 score is filtered out")
	assert.Equal(t, 40.0, out.Recommendations[0].SuitabilityScore)
	assert.Equal(t, out.Recommendations[1].SuitabilityScore, out.Recommendations[2].SuitabilityScore)
}

func TestRecommendCropsUnknownDistrict(t *testing.T) {
	p := readyPredictor(t, nil)

	in := app.DefaultInput()
	in.District = "Nowhere"
	_, err := p.RecommendCrops(context.Background(), in)
	assert.Equal(t, errors.CodeUnknownCategory, errors.GetCode(err))
}

func TestPredictionsAreRecorded(t *testing.T) {
	history := testkit.NewInMemoryHistory()
	p := readyPredictor(t, history)
	ctx := context.Background()

	_, err := p.PredictYield(ctx, app.DefaultInput())
	require.NoError(t, err)
	_, err = p.RecommendCrops(ctx, app.DefaultInput())
	require.NoError(t, err)

	bad := app.DefaultInput()
	bad.State = "Atlantis"
	_, err = p.PredictYield(ctx, bad)
	require.Error(t, err)

	recent, err := history.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "one record per successful call, none for nested yield estimates")
	assert.Equal(t, ports.PredictionKindRecommend, recent[0].Kind)
	assert.Equal(t, ports.PredictionKindYield, recent[1].Kind)
	assert.Equal(t, p.Stats().RunID, recent[0].RunID)
	assert.Contains(t, recent[1].Input, `"state":"Punjab"`)
}

func TestPredictorIsSafeForConcurrentUse(t *testing.T) {
	p := readyPredictor(t, testkit.NewInMemoryHistory())
	want, err := p.PredictYield(context.Background(), app.DefaultInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*app.YieldPrediction, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.PredictYield(context.Background(), app.DefaultInput())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, app.MaxConfidence, app.Confidence([]float64{100, 100, 100}, 100))
	assert.Equal(t, app.MinConfidence, app.Confidence([]float64{10, 500}, 100))
	assert.InDelta(t, 0.8, app.Confidence([]float64{90, 110}, 100), 1e-12)
	assert.Equal(t, app.MinConfidence, app.Confidence(nil, 100))
	assert.Equal(t, app.MinConfidence, app.Confidence([]float64{1}, 0))
}
