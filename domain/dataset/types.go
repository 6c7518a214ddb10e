package dataset

import (
	"math"

	"agrismart/domain/agronomy"
)

// Sample is one environmental observation for a crop at a location
type Sample struct {
	Crop        string  `json:"crop"`
	State       string  `json:"state"`
	District    string  `json:"district"`
	SoilType    string  `json:"soil_type"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	PH          float64 `json:"ph"`
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
}

// Conditions converts the sample to heuristic input
func (s Sample) Conditions() agronomy.Conditions {
	return agronomy.Conditions{
		Crop:        s.Crop,
		SoilType:    s.SoilType,
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Rainfall:    s.Rainfall,
		PH:          s.PH,
		Nitrogen:    s.Nitrogen,
		Phosphorus:  s.Phosphorus,
		Potassium:   s.Potassium,
	}
}

// Measurements returns the seven continuous fields in feature order
func (s Sample) Measurements() []float64 {
	return []float64{
		s.Temperature, s.Humidity, s.Rainfall, s.PH,
		s.Nitrogen, s.Phosphorus, s.Potassium,
	}
}

// MinYield is the floor applied to every synthesised yield label (kg/ha)
const MinYield = 100.0

// Record is a sample with its yield label
type Record struct {
	Sample
	YieldKgHa float64 `json:"yield_kg_ha"`
}

// Dataset is an ordered set of labelled records
type Dataset struct {
	Records []Record `json:"records"`
	Seed    int64    `json:"seed"`
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Yields returns the label column
func (d *Dataset) Yields() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.YieldKgHa
	}
	return out
}

// Column extracts one categorical column
func (d *Dataset) Column(name string) []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		switch name {
		case ColumnCrop:
			out[i] = r.Crop
		case ColumnState:
			out[i] = r.State
		case ColumnDistrict:
			out[i] = r.District
		case ColumnSoilType:
			out[i] = r.SoilType
		}
	}
	return out
}

// Distinct counts the distinct values in a categorical column
func (d *Dataset) Distinct(name string) int {
	seen := make(map[string]struct{})
	for _, v := range d.Column(name) {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Categorical column names
const (
	ColumnCrop     = "crop"
	ColumnState    = "state"
	ColumnDistrict = "district"
	ColumnSoilType = "soil_type"
)

// Range is an inclusive clamp interval
type Range struct {
	Min float64
	Max float64
}

// Clamp limits v to the range
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether v lies in the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distribution is a normal draw clamped to plausible bounds, rounded to Decimals places
type Distribution struct {
	Mean     float64
	StdDev   float64
	Bounds   Range
	Decimals int
}

// Measurement distributions in Sample.Measurements order
var (
	TemperatureDist = Distribution{Mean: 25, StdDev: 8, Bounds: Range{15, 40}, Decimals: 1}
	HumidityDist    = Distribution{Mean: 65, StdDev: 15, Bounds: Range{30, 95}, Decimals: 1}
	RainfallDist    = Distribution{Mean: 800, StdDev: 300, Bounds: Range{200, 1800}, Decimals: 1}
	PHDist          = Distribution{Mean: 6.8, StdDev: 1.2, Bounds: Range{4.5, 9.0}, Decimals: 2}
	NitrogenDist    = Distribution{Mean: 120, StdDev: 40, Bounds: Range{40, 250}, Decimals: 1}
	PhosphorusDist  = Distribution{Mean: 60, StdDev: 20, Bounds: Range{15, 120}, Decimals: 1}
	PotassiumDist   = Distribution{Mean: 80, StdDev: 30, Bounds: Range{20, 180}, Decimals: 1}
)

// Distributions lists the measurement distributions in feature order
func Distributions() []Distribution {
	return []Distribution{
		TemperatureDist, HumidityDist, RainfallDist, PHDist,
		NitrogenDist, PhosphorusDist, PotassiumDist,
	}
}

// YieldNoise is the multiplicative noise applied to expected yield
var YieldNoise = Distribution{Mean: 1.0, StdDev: 0.15}

// Round rounds v to the given number of decimals
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
