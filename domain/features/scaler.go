package features

import (
	"fmt"
	"math"

	"agrismart/domain/core"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardises each column to zero mean and unit variance using the
// population statistics observed at fit time.
type Scaler struct {
	Mean     []float64
	Variance []float64
	Scale    []float64
}

// FitScaler computes per-column statistics over rows
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: scaler needs at least one row", core.ErrInsufficientData)
	}
	width := len(rows[0])
	s := &Scaler{
		Mean:     make([]float64, width),
		Variance: make([]float64, width),
		Scale:    make([]float64, width),
	}
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, row := range rows {
			if len(row) != width {
				return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), width)
			}
			col[i] = row[j]
		}
		mean, variance := stat.PopMeanVariance(col, nil)
		s.Mean[j] = mean
		s.Variance[j] = variance
		s.Scale[j] = math.Sqrt(variance)
		// constant columns pass through centred but unscaled
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}
	return s, nil
}

// Width returns the number of columns the scaler was fitted on
func (s *Scaler) Width() int {
	return len(s.Mean)
}

// Transform standardises one row
func (s *Scaler) Transform(row []float64) ([]float64, error) {
	if len(row) != s.Width() {
		return nil, fmt.Errorf("row has %d columns, scaler expects %d", len(row), s.Width())
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}
