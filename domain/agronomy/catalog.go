// Package agronomy holds the fixed agronomic tables and the suitability factors
// used to synthesise yield labels.
package agronomy

// DefaultBaseYield applies to crops missing from the base yield table (kg/ha)
const DefaultBaseYield = 2000.0

// Crops lists every crop the generator draws from, grouped by family.
var Crops = []string{
	// Cereals
	"Rice", "Wheat", "Maize", "Barley", "Millet", "Sorghum",
	// Cash crops
	"Cotton", "Sugarcane", "Tobacco", "Jute",
	// Oilseeds
	"Groundnut", "Sunflower", "Sesame", "Safflower", "Mustard", "Soybean",
	// Pulses
	"Chickpea", "Pigeon Pea", "Black Gram", "Green Gram", "Lentil", "Field Pea",
	// Vegetables
	"Potato", "Tomato", "Onion", "Cabbage", "Cauliflower", "Carrot", "Brinjal", "Okra", "Cucumber", "Pumpkin",
	// Fruits
	"Apple", "Banana", "Orange", "Mango", "Grapes", "Pomegranate",
	// Spices
	"Chili", "Turmeric", "Coriander", "Cumin", "Fenugreek",
}

// States lists the Indian states covered by the synthetic data
var States = []string{
	"Punjab", "Haryana", "Uttar Pradesh", "Madhya Pradesh", "Maharashtra",
	"Gujarat", "Rajasthan", "West Bengal", "Bihar", "Odisha",
	"Andhra Pradesh", "Tamil Nadu", "Karnataka", "Kerala", "Telangana",
}

// Districts lists the districts covered by the synthetic data. Districts are
// drawn independently of states.
var Districts = []string{
	"Ludhiana", "Amritsar", "Chandigarh", "Gurugram", "Faridabad",
	"Agra", "Lucknow", "Kanpur", "Indore", "Bhopal", "Mumbai", "Pune",
	"Ahmedabad", "Surat", "Jaipur", "Jodhpur", "Kolkata", "Howrah",
}

// SoilTypes lists all soil classes, including those without an explicit suitability score
var SoilTypes = []string{
	"Red", "Black", "Alluvial", "Clayey", "Sandy", "Loamy", "Silt",
	"Peat", "Chalk", "Saline", "Acidic", "Alkaline", "Volcanic", "Desert", "Laterite",
}

var baseYields = map[string]float64{
	"Rice": 3500, "Wheat": 3200, "Maize": 4000, "Barley": 2800, "Millet": 1500, "Sorghum": 2000,

	"Cotton": 2500, "Sugarcane": 75000, "Tobacco": 2200, "Jute": 2800,

	"Groundnut": 2200, "Sunflower": 1800, "Sesame": 800, "Safflower": 1200, "Mustard": 1500, "Soybean": 2500,

	"Chickpea": 1800, "Pigeon Pea": 1500, "Black Gram": 1200, "Green Gram": 1000, "Lentil": 1300, "Field Pea": 1800,

	"Potato": 25000, "Tomato": 35000, "Onion": 20000, "Cabbage": 30000, "Cauliflower": 25000,
	"Carrot": 22000, "Brinjal": 18000, "Okra": 12000, "Cucumber": 15000, "Pumpkin": 20000,

	"Apple": 15000, "Banana": 40000, "Orange": 20000, "Mango": 12000, "Grapes": 18000, "Pomegranate": 10000,

	"Chili": 3000, "Turmeric": 6000, "Coriander": 1500, "Cumin": 1200, "Fenugreek": 1800,
}

// Band is an inclusive optimal range
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the band
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Midpoint returns the centre of the band
func (b Band) Midpoint() float64 {
	return (b.Min + b.Max) / 2
}

var (
	defaultTemperatureBand = Band{18, 30}
	defaultRainfallBand    = Band{600, 1200}
	humidityBand           = Band{50, 80}
	phBand                 = Band{6.0, 7.5}
)

var temperatureBands = map[string]Band{
	"Rice":      {20, 35},
	"Wheat":     {15, 25},
	"Maize":     {18, 32},
	"Cotton":    {21, 30},
	"Sugarcane": {20, 35},
	"Potato":    {15, 25},
	"Tomato":    {18, 28},
}

var rainfallBands = map[string]Band{
	"Rice":      {1000, 1500},
	"Wheat":     {400, 800},
	"Cotton":    {600, 1200},
	"Sugarcane": {1200, 1800},
	"Potato":    {500, 800},
}

var soilSuitability = map[string]float64{
	"Alluvial": 1.0,
	"Loamy":    0.95,
	"Black":    0.9,
	"Red":      0.85,
	"Clayey":   0.8,
	"Sandy":    0.7,
	"Silt":     0.75,
	"Laterite": 0.6,
}

// DefaultSoilFactor applies to soil types without an explicit score
const DefaultSoilFactor = 0.7

// TemperatureBand returns the optimal temperature range for crop
func TemperatureBand(crop string) Band {
	if b, ok := temperatureBands[crop]; ok {
		return b
	}
	return defaultTemperatureBand
}

// RainfallBand returns the optimal rainfall range for crop
func RainfallBand(crop string) Band {
	if b, ok := rainfallBands[crop]; ok {
		return b
	}
	return defaultRainfallBand
}

// HumidityBand returns the optimal relative humidity range
func HumidityBand() Band { return humidityBand }

// PHBand returns the optimal soil pH range
func PHBand() Band { return phBand }
