// Package render encodes schedule-health reports for their consumers.
//
// document.go wraps a report in a Document envelope (run id, generation
// time, project metadata, fired alerts) and encodes it as JSON or YAML.
//
// metrics.go exposes a report as Prometheus gauges in the text exposition
// format, suitable for node_exporter's textfile collector.
//
// summary.go prints a colored terminal summary with lipgloss: legend,
// per-activity table, aggregate metrics and delayed / at-risk listings.
//
// file.go writes outputs atomically and derives report file names.
package render
