package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic stream for one unit of work inside an operation,
	// e.g. a single tree of a forest. Equal arguments always yield equal streams.
	Stream(ctx context.Context, operation string, index int, baseSeed int64) (*rand.Rand, error)
}
