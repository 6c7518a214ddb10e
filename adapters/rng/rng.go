// Package rng provides deterministic, named random streams.
package rng

import (
	"context"
	"fmt"
	"math/rand"
)

// Adapter implements ports.RNGPort on math/rand sources
type Adapter struct{}

// New returns an RNG adapter
func New() *Adapter {
	return &Adapter{}
}

// SeededStream returns a generator seeded exactly with seed. The name is only
// checked, so two operations sharing a seed see the same sequence.
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("stream name cannot be empty")
	}
	return rand.New(rand.NewSource(seed)), nil
}

// Stream derives a seed from operation, index and baseSeed
func (a *Adapter) Stream(ctx context.Context, operation string, index int, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(DeriveSeed(operation, index, baseSeed))), nil
}

// indexStride spaces per-index seeds far apart
const indexStride = 1_000_003

// DeriveSeed mixes the operation name and index into baseSeed
func DeriveSeed(operation string, index int, baseSeed int64) int64 {
	seed := baseSeed
	if operation != "" {
		seed = int64(hashString(operation)) + seed
	}
	return seed + int64(index)*indexStride
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2
	}
	return hash
}
