package reservation

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// Days returns the billable day count for a rental period,
// ceil((end-start)/24h). Zero or negative means an invalid range.
func Days(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// TotalPrice computes days * pricePerDay unless an explicit override
// was supplied at creation.
func TotalPrice(days int, pricePerDay float64, override *float64) float64 {
	if override != nil {
		return *override
	}
	return float64(days) * pricePerDay
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
