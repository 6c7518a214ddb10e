// Package evaluation scores fitted models on held-out rows.
package evaluation

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MSE is the mean squared error of predictions against actual values
func MSE(predicted, actual []float64) (float64, error) {
	if err := sameLength(len(predicted), len(actual)); err != nil {
		return 0, err
	}
	d := floats.Distance(predicted, actual, 2)
	return d * d / float64(len(actual)), nil
}

// R2 is the coefficient of determination. A constant target with perfect
// predictions scores 1, otherwise 0.
func R2(predicted, actual []float64) (float64, error) {
	if err := sameLength(len(predicted), len(actual)); err != nil {
		return 0, err
	}
	variance := stat.Variance(actual, nil)
	if len(actual) < 2 || variance == 0 || math.IsNaN(variance) {
		if floats.Equal(predicted, actual) {
			return 1, nil
		}
		return 0, nil
	}
	return stat.RSquaredFrom(predicted, actual, nil), nil
}

// Accuracy is the share of exact label matches
func Accuracy(predicted, actual []int) (float64, error) {
	if err := sameLength(len(predicted), len(actual)); err != nil {
		return 0, err
	}
	hits := 0
	for i := range actual {
		if predicted[i] == actual[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(actual)), nil
}

// Spread summarises a sample
type Spread struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes the spread of values
func Summarize(values []float64) (Spread, error) {
	data := stats.Float64Data(values)
	min, err := data.Min()
	if err != nil {
		return Spread{}, err
	}
	max, err := data.Max()
	if err != nil {
		return Spread{}, err
	}
	mean, err := data.Mean()
	if err != nil {
		return Spread{}, err
	}
	sd, err := data.StandardDeviationPopulation()
	if err != nil {
		return Spread{}, err
	}
	return Spread{Min: min, Max: max, Mean: mean, StdDev: sd}, nil
}

func sameLength(a, b int) error {
	if a != b {
		return fmt.Errorf("length mismatch: %d predictions for %d actual values", a, b)
	}
	if b == 0 {
		return fmt.Errorf("no values to evaluate")
	}
	return nil
}
