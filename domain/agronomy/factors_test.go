package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseYield(t *testing.T) {
	for _, crop := range Crops {
		assert.Greater(t, BaseYield(crop), 0.0, crop)
	}
	assert.Equal(t, 2000.0, BaseYield("Quinoa"))
	assert.Equal(t, 75000.0, BaseYield("Sugarcane"))
	assert.Len(t, baseYields, len(Crops), "every crop needs a base yield entry")
}

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, States, 15)
	assert.Len(t, Districts, 18)
	assert.Len(t, SoilTypes, 15)
}

func TestTemperatureFactor(t *testing.T) {
	t.Run("optimum", func(t *testing.T) {
		for _, crop := range append(Crops, "Unlisted") {
			assert.Equal(t, 1.0, TemperatureFactor(crop, TemperatureBand(crop).Midpoint()), crop)
		}
	})

	t.Run("breakpoints", func(t *testing.T) {
		assert.Equal(t, 1.0, TemperatureFactor("Wheat", 25))
		assert.InDelta(t, 0.75, TemperatureFactor("Wheat", 30), 1e-9)
		assert.InDelta(t, 0.9, TemperatureFactor("Rice", 18), 1e-9)
		assert.InDelta(t, 0.9, TemperatureFactor("Barley", 16), 1e-9, "default band starts at 18")
		assert.Equal(t, 0.3, TemperatureFactor("Wheat", -40))
	})
}

func TestHumidityFactor(t *testing.T) {
	assert.Equal(t, 1.0, HumidityFactor(HumidityBand().Midpoint()))
	assert.InDelta(t, 0.8, HumidityFactor(40), 1e-9)
	assert.Equal(t, 0.4, HumidityFactor(0))
	assert.InDelta(t, 0.9, HumidityFactor(90), 1e-9)
	assert.Equal(t, 0.6, HumidityFactor(200))
}

func TestRainfallFactor(t *testing.T) {
	assert.Equal(t, 1.0, RainfallFactor("Rice", 1250))
	assert.InDelta(t, 0.9, RainfallFactor("Rice", 800), 1e-9)
	assert.InDelta(t, 0.5, RainfallFactor("Rice", 0), 1e-9)
	assert.Equal(t, 0.3, RainfallFactor("Rice", -1000))
	assert.InDelta(t, 0.94, RainfallFactor("Mango", 1400), 1e-9)
	assert.Equal(t, 0.7, RainfallFactor("Wheat", 5000))
}

func TestPHFactor(t *testing.T) {
	assert.Equal(t, 1.0, PHFactor(PHBand().Midpoint()))
	assert.InDelta(t, 0.9, PHFactor(5.0), 1e-9)
	assert.Equal(t, 0.4, PHFactor(-10))
	assert.InDelta(t, 0.92, PHFactor(8.5), 1e-9)
	assert.Equal(t, 0.5, PHFactor(20))
}

func TestSoilFactor(t *testing.T) {
	assert.Equal(t, 1.0, SoilFactor("Alluvial"))
	assert.Equal(t, 0.6, SoilFactor("Laterite"))
	assert.Equal(t, 0.7, SoilFactor("Volcanic"))
	assert.Equal(t, 0.7, SoilFactor(""))
}

func TestNutrientFactor(t *testing.T) {
	assert.Equal(t, 1.0, NutrientFactor(120, 60, 80))
	assert.InDelta(t, 0.5, NutrientFactor(50, 25, 30), 1e-9)
	assert.InDelta(t, 0.3, NutrientFactor(0, -1, 0), 1e-9)
	assert.InDelta(t, (0.3+1+1)/3, NutrientFactor(0, 50, 60), 1e-9)
}

func TestFactorsStayWithinRange(t *testing.T) {
	for _, crop := range Crops {
		for temp := -10.0; temp <= 60; temp += 0.5 {
			f := TemperatureFactor(crop, temp)
			assert.True(t, f >= 0.3 && f <= 1.0, "temperature factor %v for %s at %v", f, crop, temp)
		}
		for rain := 0.0; rain <= 4000; rain += 25 {
			f := RainfallFactor(crop, rain)
			assert.True(t, f >= 0.3 && f <= 1.0, "rainfall factor %v for %s at %v", f, crop, rain)
		}
	}
	for h := 0.0; h <= 100; h++ {
		f := HumidityFactor(h)
		assert.True(t, f >= 0.4 && f <= 1.0)
	}
	for ph := 0.0; ph <= 14; ph += 0.1 {
		f := PHFactor(ph)
		assert.True(t, f >= 0.4 && f <= 1.0)
	}
}

func TestExpectedYield(t *testing.T) {
	ideal := Conditions{
		Crop: "Wheat", SoilType: "Alluvial",
		Temperature: 20, Humidity: 65, Rainfall: 600, PH: 6.8,
		Nitrogen: 120, Phosphorus: 60, Potassium: 80,
	}
	assert.InDelta(t, 3200.0, ExpectedYield(ideal), 1e-9)

	poorSoil := ideal
	poorSoil.SoilType = "Laterite"
	assert.InDelta(t, 1920.0, ExpectedYield(poorSoil), 1e-9)
}

func TestCategorizeYield(t *testing.T) {
	assert.Equal(t, YieldExcellent, CategorizeYield(3000.5))
	assert.Equal(t, YieldGood, CategorizeYield(3000))
	assert.Equal(t, YieldAverage, CategorizeYield(2000))
	assert.Equal(t, YieldLow, CategorizeYield(1000))
	assert.Equal(t, YieldLow, CategorizeYield(0))
}
