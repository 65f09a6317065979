package health

// Status is the schedule-health classification of one activity.
type Status string

// Status values, in the spelling consumed by the renderers.
const (
	StatusOnTrack Status = "onTrack"
	StatusAtRisk  Status = "atRisk"
	StatusDelayed Status = "delayed"
)

// Thresholds that map an SPI to a Status. Each band includes its lower bound.
const (
	ThresholdOnTrack = 0.9
	ThresholdAtRisk  = 0.7
)

// Statuses lists every Status from healthiest to worst.
var Statuses = []Status{StatusOnTrack, StatusAtRisk, StatusDelayed}

// Classify maps an SPI to a Status. Boundaries are exact: 0.9 is on track
// and 0.7 is at risk.
func Classify(spi float64) Status {
	switch {
	case spi >= ThresholdOnTrack:
		return StatusOnTrack
	case spi >= ThresholdAtRisk:
		return StatusAtRisk
	default:
		return StatusDelayed
	}
}

// Label returns the human-readable name of s.
func (s Status) Label() string {
	switch s {
	case StatusOnTrack:
		return "On Track"
	case StatusAtRisk:
		return "At Risk"
	case StatusDelayed:
		return "Delayed"
	default:
		return string(s)
	}
}

// Color returns the hex color charts use for s.
func (s Status) Color() string {
	switch s {
	case StatusOnTrack:
		return "#22c55e" // green
	case StatusAtRisk:
		return "#f59e0b" // amber
	case StatusDelayed:
		return "#ef4444" // red
	default:
		return "#9ca3af" // gray
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOnTrack, StatusAtRisk, StatusDelayed:
		return true
	}
	return false
}
