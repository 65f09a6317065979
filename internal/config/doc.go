// Package config loads the schedhealth configuration file (schedhealth.yaml).
//
// Top-level types:
//   - Config{Input, Output, Metrics, Alerts, Watch, Log}: full tree parsed from YAML
//   - OutputConfig: format (summary|json|yaml|metrics), path, dir
//   - MetricsConfig: namespace and optional Prometheus textfile path
//   - AlertsConfig: threshold rules evaluated against every report
//   - WatchConfig: debounce applied to bursts of file events
//
// Load(path) reads the YAML file, applies defaults (summary output,
// "schedule_health" namespace, 250ms debounce, info logging), then validates
// enums and rule syntax. LoadOrDefault tolerates a missing file.
package config
