package agronomy

// YieldCategory buckets a yield estimate
type YieldCategory string

const (
	YieldExcellent YieldCategory = "Excellent"
	YieldGood      YieldCategory = "Good"
	YieldAverage   YieldCategory = "Average"
	YieldLow       YieldCategory = "Low"
	YieldUnknown   YieldCategory = "Unknown"
)

// CategorizeYield maps kg/ha to a category: >3000 Excellent, >2000 Good, >1000 Average, else Low
func CategorizeYield(yield float64) YieldCategory {
	switch {
	case yield > 3000:
		return YieldExcellent
	case yield > 2000:
		return YieldGood
	case yield > 1000:
		return YieldAverage
	default:
		return YieldLow
	}
}
