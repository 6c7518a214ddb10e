// Package artifacts defines the trained artifact bundle shared by the trainer,
// the predictor and the artifact store.
package artifacts

import (
	"time"

	"agrismart/domain/core"
	"agrismart/domain/features"
)

// YieldModel is a fitted ensemble regressor
type YieldModel interface {
	// Predict returns the ensemble mean for one feature vector
	Predict(x []float64) float64
	// TreePredictions returns the individual predictions of the first n trees
	TreePredictions(x []float64, n int) []float64
	// NumTrees reports the ensemble size
	NumTrees() int
}

// CropModel is a fitted ensemble classifier
type CropModel interface {
	// PredictProba returns one probability per entry of Classes
	PredictProba(x []float64) []float64
	// Predict returns the most probable class label
	Predict(x []float64) int
	// Classes lists the class labels seen during fit, ascending
	Classes() []int
}

// Bundle is everything inference needs. It is never mutated after construction;
// retraining produces a new Bundle.
type Bundle struct {
	YieldModel YieldModel
	CropModel  CropModel
	Encoder    *features.Encoder
	Stats      TrainingStats
}

// Algorithm labels reported in training statistics and responses
const (
	AlgorithmRandomForest = "Random Forest"
	AlgorithmRegressor    = "Random Forest Regressor"
	AlgorithmClassifier   = "Random Forest Classifier"
)

// TrainingStats summarises one training run
type TrainingStats struct {
	RunID           core.RunID           `json:"run_id"`
	TrainingSamples int                  `json:"training_samples"`
	TestSamples     int                  `json:"test_samples"`
	NumCrops        int                  `json:"num_crops"`
	NumStates       int                  `json:"num_states"`
	YieldMSE        float64              `json:"yield_mse"`
	YieldR2         float64              `json:"yield_r2"`
	CropAccuracy    float64              `json:"crop_accuracy"`
	YieldMin        float64              `json:"yield_min"`
	YieldMax        float64              `json:"yield_max"`
	TrainingDate    time.Time            `json:"training_date"`
	Algorithm       string               `json:"algorithm"`
	Features        []string             `json:"features"`
	Seed            int64                `json:"seed"`
	Fingerprints    map[string]core.Hash `json:"artifact_fingerprints,omitempty"`
}
