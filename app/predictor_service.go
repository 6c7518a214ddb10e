package app

import (
	"context"
	stderrors "errors"
	"math"
	"sort"

	"agrismart/domain/agronomy"
	"agrismart/domain/artifacts"
	"agrismart/domain/core"
	"agrismart/domain/dataset"
	"agrismart/domain/features"
	"agrismart/internal"
	"agrismart/internal/errors"
	"agrismart/ports"

	json "github.com/goccy/go-json"
	"github.com/montanaflynn/stats"
)

// Confidence estimation and ranking constants
const (
	ConfidenceTrees    = 10
	MinConfidence      = 0.60
	MaxConfidence      = 0.95
	MinSuitability     = 1.0
	MaxRecommendations = 5
)

// YieldModelInfo describes the regression model behind a yield prediction
type YieldModelInfo struct {
	Algorithm       string  `json:"algorithm"`
	TrainingSamples int     `json:"training_samples"`
	R2Score         float64 `json:"r2_score"`
}

// YieldPrediction is the result of PredictYield
type YieldPrediction struct {
	PredictedYield float64                `json:"predicted_yield"`
	Confidence     float64                `json:"confidence"`
	YieldCategory  agronomy.YieldCategory `json:"yield_category"`
	ModelInfo      YieldModelInfo         `json:"model_info"`
}

// Recommendation is one ranked crop
type Recommendation struct {
	Crop             string                 `json:"crop"`
	SuitabilityScore float64                `json:"suitability_score"`
	PredictedYield   float64                `json:"predicted_yield"`
	Confidence       float64                `json:"confidence"`
	YieldCategory    agronomy.YieldCategory `json:"yield_category"`
}

// CropModelInfo describes the classifier behind a recommendation
type CropModelInfo struct {
	Algorithm       string  `json:"algorithm"`
	TrainingSamples int     `json:"training_samples"`
	Accuracy        float64 `json:"accuracy"`
}

// Recommendations is the result of RecommendCrops
type Recommendations struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalAnalyzed   int              `json:"total_analyzed"`
	ModelInfo       CropModelInfo    `json:"model_info"`
}

// Predictor answers inference requests against one immutable bundle. It is
// safe for concurrent use.
type Predictor struct {
	bundle  *artifacts.Bundle
	history ports.PredictionRepository
	logger  *internal.Logger
}

// NewPredictor wraps a loaded or freshly trained bundle. history may be nil.
func NewPredictor(bundle *artifacts.Bundle, history ports.PredictionRepository, logger *internal.Logger) *Predictor {
	if logger == nil {
		logger = internal.Discard()
	}
	return &Predictor{bundle: bundle, history: history, logger: logger.With("predictor")}
}

// Stats returns the training statistics of the loaded bundle
func (p *Predictor) Stats() artifacts.TrainingStats {
	return p.bundle.Stats
}

// PredictYield estimates the yield of in.Crop under the given conditions
func (p *Predictor) PredictYield(ctx context.Context, in dataset.Sample) (*YieldPrediction, error) {
	out, err := p.predictYield(ctx, in)
	if err != nil {
		return nil, err
	}
	p.record(ctx, ports.PredictionKindYield, in, out)
	return out, nil
}

func (p *Predictor) predictYield(ctx context.Context, in dataset.Sample) (*YieldPrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x, err := p.bundle.Encoder.EncodeForYield(in)
	if err != nil {
		return nil, inferenceError(err)
	}

	model := p.bundle.YieldModel
	predicted := model.Predict(x)
	confidence := Confidence(model.TreePredictions(x, ConfidenceTrees), predicted)

	return &YieldPrediction{
		PredictedYield: math.Round(predicted),
		Confidence:     dataset.Round(confidence*100, 1),
		YieldCategory:  agronomy.CategorizeYield(predicted),
		ModelInfo: YieldModelInfo{
			Algorithm:       artifacts.AlgorithmRegressor,
			TrainingSamples: p.bundle.Stats.TrainingSamples,
			R2Score:         p.bundle.Stats.YieldR2,
		},
	}, nil
}

// Confidence maps the spread of per-tree predictions to [MinConfidence, MaxConfidence]
func Confidence(treePredictions []float64, predicted float64) float64 {
	if predicted <= 0 || len(treePredictions) == 0 {
		return MinConfidence
	}
	sd, err := stats.StandardDeviationPopulation(treePredictions)
	if err != nil {
		return MinConfidence
	}
	return math.Max(MinConfidence, math.Min(MaxConfidence, 1-2*sd/predicted))
}

// RecommendCrops ranks crops by classifier probability for the location and
// conditions in in; in.Crop is ignored
func (p *Predictor) RecommendCrops(ctx context.Context, in dataset.Sample) (*Recommendations, error) {
	x, err := p.bundle.Encoder.Encode(in)
	if err != nil {
		return nil, inferenceError(err)
	}

	proba := p.bundle.CropModel.PredictProba(x)
	classes := p.bundle.CropModel.Classes()

	var ranked []Recommendation
	for k, prob := range proba {
		score := dataset.Round(prob*100, 1)
		if score <= MinSuitability {
			continue
		}
		crop, err := p.bundle.Encoder.DecodeCrop(classes[k])
		if err != nil {
			return nil, errors.Wrap(err, "recommendation model and crop encoder disagree")
		}

		rec := Recommendation{Crop: crop, SuitabilityScore: score, YieldCategory: agronomy.YieldUnknown}
		withCrop := in
		withCrop.Crop = crop
		yp, err := p.predictYield(ctx, withCrop)
		switch {
		case err == nil:
			rec.PredictedYield = yp.PredictedYield
			rec.Confidence = yp.Confidence
			rec.YieldCategory = yp.YieldCategory
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			p.logger.Warn("yield estimate for %s failed: %v", crop, err)
		}
		ranked = append(ranked, rec)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SuitabilityScore > ranked[j].SuitabilityScore
	})

	out := &Recommendations{
		Recommendations: ranked,
		TotalAnalyzed:   len(ranked),
		ModelInfo: CropModelInfo{
			Algorithm:       artifacts.AlgorithmClassifier,
			TrainingSamples: p.bundle.Stats.TrainingSamples,
			Accuracy:        p.bundle.Stats.CropAccuracy,
		},
	}
	if len(out.Recommendations) > MaxRecommendations {
		out.Recommendations = out.Recommendations[:MaxRecommendations]
	}
	if out.Recommendations == nil {
		out.Recommendations = []Recommendation{}
	}

	p.record(ctx, ports.PredictionKindRecommend, in, out)
	return out, nil
}

// record stores a prediction in the history repository. Failures are logged,
// never returned.
func (p *Predictor) record(ctx context.Context, kind ports.PredictionKind, in dataset.Sample, out interface{}) {
	if p.history == nil {
		return
	}
	input, err := json.Marshal(in)
	if err != nil {
		p.logger.Warn("failed to encode %s input for history: %v", kind, err)
		return
	}
	output, err := json.Marshal(out)
	if err != nil {
		p.logger.Warn("failed to encode %s output for history: %v", kind, err)
		return
	}
	rec := &ports.PredictionRecord{
		ID:     core.NewPredictionID(),
		RunID:  p.bundle.Stats.RunID,
		Kind:   kind,
		Input:  string(input),
		Output: string(output),
	}
	if err := p.history.Save(ctx, rec); err != nil {
		p.logger.Warn("failed to record %s: %v", kind, err)
	}
}

// inferenceError converts encoder failures into coded application errors
func inferenceError(err error) error {
	var unknown *features.UnknownCategoryError
	if stderrors.As(err, &unknown) {
		return errors.UnknownCategory(unknown.Field, unknown.Value)
	}
	return errors.Wrap(err, "failed to encode input")
}
