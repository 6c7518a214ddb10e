// Package synthesizer generates seeded agronomic training data.
package synthesizer

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"agrismart/domain/agronomy"
	"agrismart/domain/core"
	"agrismart/domain/dataset"
	"agrismart/internal"
	"agrismart/ports"
)

// streamName identifies the dataset stream on the RNG port
const streamName = "synthetic_dataset"

// GeneratorConfig configures dataset generation
type GeneratorConfig struct {
	SampleCount int   `json:"sample_count"`
	Seed        int64 `json:"seed"`
}

// DefaultGeneratorConfig returns the standard training set size and seed
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SampleCount: 1200,
		Seed:        42,
	}
}

// Validate checks the configuration
func (c GeneratorConfig) Validate() error {
	if c.SampleCount <= 0 {
		return fmt.Errorf("%w: sample count must be positive, got %d", core.ErrInsufficientData, c.SampleCount)
	}
	return nil
}

// Generator implements ports.DatasetGenerator
type Generator struct {
	rng    ports.RNGPort
	logger *internal.Logger
}

// NewGenerator creates a generator drawing from rng
func NewGenerator(rng ports.RNGPort, logger *internal.Logger) *Generator {
	if logger == nil {
		logger = internal.Discard()
	}
	return &Generator{rng: rng, logger: logger.With("synthesizer")}
}

// Generate draws count records. Equal seeds give identical datasets.
func (g *Generator) Generate(ctx context.Context, count int, seed int64) (*dataset.Dataset, error) {
	cfg := GeneratorConfig{SampleCount: count, Seed: seed}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r, err := g.rng.SeededStream(ctx, streamName, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset stream: %w", err)
	}

	ds := &dataset.Dataset{Records: make([]dataset.Record, 0, count), Seed: seed}
	for i := 0; i < count; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ds.Records = append(ds.Records, sampleRecord(r))
	}

	g.logger.Debug("generated %d synthetic records with seed %d", count, seed)
	return ds, nil
}

// sampleRecord draws one record. The yield label is computed on the clamped
// values before they are rounded for storage.
func sampleRecord(r *rand.Rand) dataset.Record {
	crop := pick(r, agronomy.Crops)
	state := pick(r, agronomy.States)
	district := pick(r, agronomy.Districts)
	soil := pick(r, agronomy.SoilTypes)

	dists := dataset.Distributions()
	raw := make([]float64, len(dists))
	for i, d := range dists {
		raw[i] = draw(r, d)
	}

	exact := dataset.Sample{
		Crop: crop, State: state, District: district, SoilType: soil,
		Temperature: raw[0], Humidity: raw[1], Rainfall: raw[2], PH: raw[3],
		Nitrogen: raw[4], Phosphorus: raw[5], Potassium: raw[6],
	}

	noise := r.NormFloat64()*dataset.YieldNoise.StdDev + dataset.YieldNoise.Mean
	yield := math.Max(dataset.MinYield, agronomy.ExpectedYield(exact.Conditions())*noise)

	stored := exact
	stored.Temperature = dataset.Round(raw[0], dataset.TemperatureDist.Decimals)
	stored.Humidity = dataset.Round(raw[1], dataset.HumidityDist.Decimals)
	stored.Rainfall = dataset.Round(raw[2], dataset.RainfallDist.Decimals)
	stored.PH = dataset.Round(raw[3], dataset.PHDist.Decimals)
	stored.Nitrogen = dataset.Round(raw[4], dataset.NitrogenDist.Decimals)
	stored.Phosphorus = dataset.Round(raw[5], dataset.PhosphorusDist.Decimals)
	stored.Potassium = dataset.Round(raw[6], dataset.PotassiumDist.Decimals)

	return dataset.Record{Sample: stored, YieldKgHa: math.Round(yield)}
}

func draw(r *rand.Rand, d dataset.Distribution) float64 {
	return d.Bounds.Clamp(r.NormFloat64()*d.StdDev + d.Mean)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}
