package agronomy

import "math"

// BaseYield returns the baseline yield in kg/ha for crop under ideal conditions
func BaseYield(crop string) float64 {
	if y, ok := baseYields[crop]; ok {
		return y
	}
	return DefaultBaseYield
}

// degrade applies a linear penalty outside band, with separate rates and floors per side.
func degrade(v float64, band Band, belowRate, belowFloor, aboveRate, aboveFloor float64) float64 {
	switch {
	case band.Contains(v):
		return 1.0
	case v < band.Min:
		return math.Max(belowFloor, 1-(band.Min-v)*belowRate)
	default:
		return math.Max(aboveFloor, 1-(v-band.Max)*aboveRate)
	}
}

// TemperatureFactor loses 0.05 per degree outside the crop's band, floored at 0.3
func TemperatureFactor(crop string, temp float64) float64 {
	return degrade(temp, TemperatureBand(crop), 0.05, 0.3, 0.05, 0.3)
}

// HumidityFactor loses 0.02 per point below 50% (floor 0.4) and 0.01 per point above 80% (floor 0.6)
func HumidityFactor(humidity float64) float64 {
	return degrade(humidity, humidityBand, 0.02, 0.4, 0.01, 0.6)
}

// RainfallFactor loses 0.0005/mm below the crop's band (floor 0.3) and 0.0003/mm above it (floor 0.7)
func RainfallFactor(crop string, rainfall float64) float64 {
	return degrade(rainfall, RainfallBand(crop), 0.0005, 0.3, 0.0003, 0.7)
}

// PHFactor loses 0.1/unit below pH 6.0 (floor 0.4) and 0.08/unit above 7.5 (floor 0.5)
func PHFactor(ph float64) float64 {
	return degrade(ph, phBand, 0.1, 0.4, 0.08, 0.5)
}

// SoilFactor looks up the soil suitability score
func SoilFactor(soilType string) float64 {
	if s, ok := soilSuitability[soilType]; ok {
		return s
	}
	return DefaultSoilFactor
}

// NutrientFactor averages the N, P and K sufficiency ratios against 100/50/60 kg/ha
func NutrientFactor(n, p, k float64) float64 {
	return (nutrientRatio(n, 100) + nutrientRatio(p, 50) + nutrientRatio(k, 60)) / 3
}

func nutrientRatio(v, optimum float64) float64 {
	if v <= 0 {
		return 0.3
	}
	return math.Min(1.0, v/optimum)
}

// Conditions is the environmental input to the yield heuristic
type Conditions struct {
	Crop        string
	SoilType    string
	Temperature float64
	Humidity    float64
	Rainfall    float64
	PH          float64
	Nitrogen    float64
	Phosphorus  float64
	Potassium   float64
}

// ExpectedYield multiplies the base yield by every suitability factor, before noise
func ExpectedYield(c Conditions) float64 {
	return BaseYield(c.Crop) *
		TemperatureFactor(c.Crop, c.Temperature) *
		HumidityFactor(c.Humidity) *
		RainfallFactor(c.Crop, c.Rainfall) *
		PHFactor(c.PH) *
		SoilFactor(c.SoilType) *
		NutrientFactor(c.Nitrogen, c.Phosphorus, c.Potassium)
}
