package health

import "math"

// StdDev returns the population standard deviation of values (divides by N).
// An empty slice yields 0.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := float64(len(values))

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / n)
}
