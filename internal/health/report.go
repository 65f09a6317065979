package health

import "github.com/obsidianstack/schedhealth/pkg/types"

// ActivityHealth is one activity together with its derived schedule metrics.
type ActivityHealth struct {
	Activity types.Activity `json:"activity" yaml:"activity"`

	SPI    float64 `json:"spi" yaml:"spi"`
	SV     float64 `json:"sv" yaml:"sv"`
	Status Status  `json:"status" yaml:"status"`

	// PlannedHours is HoursLogged + HoursRemaining.
	PlannedHours float64 `json:"planned_hours" yaml:"planned_hours"`
}

// Report is the portfolio-level schedule-health summary for one set of
// activities. It is built once by Generate and never modified afterwards.
//
// Delayed, AtRisk and OnTrack partition Activities by Status, each keeping
// the input order, so their lengths always add up to len(Activities).
type Report struct {
	Activities []ActivityHealth `json:"activities" yaml:"activities"`

	// WeightedMeanSPI is the SPI mean weighted by planned hours.
	WeightedMeanSPI float64 `json:"weighted_mean_spi" yaml:"weighted_mean_spi"`

	// StandardDeviation is the unweighted population deviation of SPI.
	StandardDeviation float64 `json:"standard_deviation" yaml:"standard_deviation"`

	// PercentAtRisk counts both the Delayed and the AtRisk partitions.
	PercentAtRisk float64 `json:"percent_at_risk" yaml:"percent_at_risk"`

	Delayed []ActivityHealth `json:"delayed" yaml:"delayed"`
	AtRisk  []ActivityHealth `json:"at_risk" yaml:"at_risk"`
	OnTrack []ActivityHealth `json:"on_track" yaml:"on_track"`
}

// Counts is the number of activities in each partition.
type Counts struct {
	Total   int `json:"total" yaml:"total"`
	OnTrack int `json:"on_track" yaml:"on_track"`
	AtRisk  int `json:"at_risk" yaml:"at_risk"`
	Delayed int `json:"delayed" yaml:"delayed"`
}

// Generate computes the schedule-health report for activities.
//
// An empty or nil input is not an error: it yields a neutral report with
// WeightedMeanSPI 1.0, zero deviation, zero risk and empty partitions, so
// renderers never need to special-case a missing report.
//
// When no activity has planned hours the weighted mean falls back to 1.0.
func Generate(activities []types.Activity) Report {
	rep := Report{
		Activities:      make([]ActivityHealth, 0, len(activities)),
		WeightedMeanSPI: spiNeutral,
		Delayed:         []ActivityHealth{},
		AtRisk:          []ActivityHealth{},
		OnTrack:         []ActivityHealth{},
	}
	if len(activities) == 0 {
		return rep
	}

	spis := make([]float64, 0, len(activities))
	var totalHours, weighted float64
	for _, a := range activities {
		ah := assess(a)
		rep.Activities = append(rep.Activities, ah)
		spis = append(spis, ah.SPI)

		totalHours += ah.PlannedHours
		weighted += ah.SPI * ah.PlannedHours

		switch ah.Status {
		case StatusDelayed:
			rep.Delayed = append(rep.Delayed, ah)
		case StatusAtRisk:
			rep.AtRisk = append(rep.AtRisk, ah)
		default:
			rep.OnTrack = append(rep.OnTrack, ah)
		}
	}

	if totalHours > 0 {
		rep.WeightedMeanSPI = weighted / totalHours
	}
	rep.StandardDeviation = StdDev(spis)
	rep.PercentAtRisk = float64(len(rep.Delayed)+len(rep.AtRisk)) / float64(len(activities)) * 100

	return rep
}

// assess derives the per-activity metrics for a.
func assess(a types.Activity) ActivityHealth {
	spi := SPI(a.PercentAchieved, a.PercentPlanned)
	return ActivityHealth{
		Activity:     a,
		SPI:          spi,
		SV:           SV(a.PercentAchieved, a.PercentPlanned),
		Status:       Classify(spi),
		PlannedHours: a.HoursLogged + a.HoursRemaining,
	}
}

// Counts returns the size of each partition.
func (r Report) Counts() Counts {
	return Counts{
		Total:   len(r.Activities),
		OnTrack: len(r.OnTrack),
		AtRisk:  len(r.AtRisk),
		Delayed: len(r.Delayed),
	}
}

// PercentOnTrack is the share of activities classified OnTrack, 0 when the
// report is empty.
func (r Report) PercentOnTrack() float64 {
	if len(r.Activities) == 0 {
		return 0
	}
	return float64(len(r.OnTrack)) / float64(len(r.Activities)) * 100
}

// Partition returns the activities classified as s, or nil for an unknown
// status.
func (r Report) Partition(s Status) []ActivityHealth {
	switch s {
	case StatusOnTrack:
		return r.OnTrack
	case StatusAtRisk:
		return r.AtRisk
	case StatusDelayed:
		return r.Delayed
	default:
		return nil
	}
}
