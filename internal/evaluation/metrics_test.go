package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSE(t *testing.T) {
	mse, err := MSE([]float64{1, 2, 3}, []float64{1, 2, 5})
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, mse, 1e-12)

	_, err = MSE([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
	_, err = MSE(nil, nil)
	assert.Error(t, err)
}

func TestR2(t *testing.T) {
	actual := []float64{1, 2, 3, 4}

	r2, err := R2(actual, actual)
	require.NoError(t, err)
	assert.InDelta(t, 1, r2, 1e-12)

	r2, err = R2([]float64{2.5, 2.5, 2.5, 2.5}, actual)
	require.NoError(t, err)
	assert.InDelta(t, 0, r2, 1e-12)

	r2, err = R2([]float64{1.1, 1.9, 3.2, 3.8}, actual)
	require.NoError(t, err)
	assert.InDelta(t, 1-0.1/5, r2, 1e-9)

	r2, err = R2([]float64{3, 3}, []float64{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, r2)
}

func TestAccuracy(t *testing.T) {
	acc, err := Accuracy([]int{1, 2, 3, 4}, []int{1, 2, 0, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 5, s.Mean, 1e-12)
	assert.InDelta(t, 2, s.StdDev, 1e-12)

	_, err = Summarize(nil)
	assert.Error(t, err)
}
