// Package health derives schedule-health metrics from a project's activities.
//
// metrics.go provides the per-activity indices: SPI (achieved / planned, with
// neutral fallbacks when nothing was planned) and SV (achieved - planned).
//
// status.go maps an SPI to a Status using fixed bands:
// OnTrack ≥0.9, AtRisk 0.7–0.9, Delayed <0.7.
//
// report.go provides the pure Generate(activities) function that assembles a
// Report: per-activity health, the SPI mean weighted by planned hours, the
// population standard deviation of SPI and the status partitions.
//
// Nothing in this package performs I/O, reads the clock or keeps state, so
// every function is safe for concurrent use.
package health
