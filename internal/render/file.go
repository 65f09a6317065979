package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/obsidianstack/schedhealth/internal/alerts"
	"github.com/obsidianstack/schedhealth/internal/config"
	"github.com/obsidianstack/schedhealth/internal/health"
	"github.com/obsidianstack/schedhealth/pkg/types"
)

// unsafeRun matches every run of characters that may not appear in a slug.
var unsafeRun = regexp.MustCompile(`[^a-z0-9]+`)

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case config.FormatJSON:
		return "json"
	case config.FormatYAML:
		return "yaml"
	case config.FormatMetrics:
		return "prom"
	default:
		return "txt"
	}
}

// FileName returns "schedule-report-<slug>.<ext>" where slug is the
// lower-cased project name reduced to [a-z0-9-]: every run of other
// characters becomes one dash and edge dashes are dropped.
func FileName(projectName, format string) string {
	slug := unsafeRun.ReplaceAllString(strings.ToLower(projectName), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "project"
	}
	return fmt.Sprintf("schedule-report-%s.%s", slug, Extension(format))
}

// Render writes the report for p in the given output format.
func Render(w io.Writer, format, namespace string, p *types.Project, rep health.Report, fired []alerts.Alert, now time.Time) error {
	switch format {
	case config.FormatJSON:
		return JSON(w, NewDocument(p, rep, fired, now))
	case config.FormatYAML:
		return YAML(w, NewDocument(p, rep, fired, now))
	case config.FormatMetrics:
		return Metrics(w, namespace, p, rep)
	case config.FormatSummary:
		return Summary(w, p, rep, fired)
	default:
		return fmt.Errorf("render: unknown format %q", format)
	}
}

// WriteTextfile renders the metrics exposition for rep into path atomically,
// so a textfile collector never reads a half-written file.
func WriteTextfile(path, namespace string, p *types.Project, rep health.Report) error {
	var buf bytes.Buffer
	if err := Metrics(&buf, namespace, p, rep); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".%s.*", filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("render: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		_ = tmp.Close()
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("render: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("render: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("render: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("render: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("render: rename temp file into place: %w", err)
	}
	cleanup = false
	return nil
}
