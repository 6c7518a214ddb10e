// Package partition splits row indices into train and test sets.
package partition

import (
	"fmt"
	"math"
	"math/rand"

	"agrismart/domain/core"
)

// Partitioner performs seeded random splits
type Partitioner struct {
	seed int64
}

// Result holds the row indices of each side of a split
type Result struct {
	Train []int
	Test  []int
	Stats Statistics
}

// Statistics describes a split
type Statistics struct {
	Total        int     `json:"total"`
	TrainRows    int     `json:"train_rows"`
	TestRows     int     `json:"test_rows"`
	TestFraction float64 `json:"test_fraction"`
	Seed         int64   `json:"seed"`
}

// New creates a partitioner with a specific seed for reproducibility
func New(seed int64) *Partitioner {
	return &Partitioner{seed: seed}
}

// TestSize is ceil(total * fraction), the number of held-out rows
func TestSize(total int, fraction float64) int {
	return int(math.Ceil(float64(total) * fraction))
}

// Split shuffles 0..total-1 and holds out TestSize rows. Both sides must be non-empty.
func (p *Partitioner) Split(total int, testFraction float64) (*Result, error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}
	testRows := TestSize(total, testFraction)
	trainRows := total - testRows
	if testRows < 1 || trainRows < 1 {
		return nil, fmt.Errorf("%w: cannot split %d rows with test fraction %v", core.ErrInsufficientData, total, testFraction)
	}

	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(p.seed))
	rng.Shuffle(total, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	return &Result{
		Test:  idx[:testRows],
		Train: idx[testRows:],
		Stats: Statistics{
			Total:        total,
			TrainRows:    trainRows,
			TestRows:     testRows,
			TestFraction: testFraction,
			Seed:         p.seed,
		},
	}, nil
}

// Rows selects the given indices from a matrix
func Rows[T any](rows []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}
