package health

// Fallback SPI values used when an activity has nothing planned.
const (
	// spiUnplannedProgress is returned when work was done against a zero plan.
	spiUnplannedProgress = 1.5
	// spiNeutral is returned when nothing was planned and nothing was done.
	spiNeutral = 1.0
)

// SPI returns the schedule performance index: achieved progress relative to
// planned progress. Values above 1 mean ahead of schedule and are not capped.
//
// A zero plan never divides: it yields 1.5 when any progress was achieved
// and 1.0 otherwise.
func SPI(percentAchieved, percentPlanned float64) float64 {
	if percentPlanned == 0 {
		if percentAchieved > 0 {
			return spiUnplannedProgress
		}
		return spiNeutral
	}
	return percentAchieved / percentPlanned
}

// SV returns the schedule variance in percentage points.
// Negative is behind plan, positive is ahead.
func SV(percentAchieved, percentPlanned float64) float64 {
	return percentAchieved - percentPlanned
}
