// Package types defines the project and activity records shared by the
// project loader, the schedule-health analyzer and the renderers.
// These are the canonical in-memory representations of a project schedule,
// independent of the YAML or JSON file they were read from.
package types
