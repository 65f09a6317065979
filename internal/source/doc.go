// Package source reads project schedules from local YAML or JSON files and
// watches them for changes.
//
// Load(path) decodes the file with yaml.v3 (JSON documents parse as YAML)
// and validates the shape the analyzer relies on: every activity has a name
// and all numeric fields are finite. Ranges are deliberately not checked, so
// a negative percentage reaches the analyzer unchanged.
//
// Watch(ctx, path, debounce, onChange) uses fsnotify to reload the project
// when the file is written, tolerating the rename→create pattern of
// atomic-save editors.
package source
