package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/obsidianstack/schedhealth/internal/alerts"
	"github.com/obsidianstack/schedhealth/internal/health"
	"github.com/obsidianstack/schedhealth/pkg/types"
)

// ProjectMeta is the project header carried by a Document.
type ProjectMeta struct {
	Name   string     `json:"name" yaml:"name"`
	Number string     `json:"number" yaml:"number"`
	Start  types.Date `json:"start" yaml:"start"`
	End    types.Date `json:"end" yaml:"end"`
}

// Document is the envelope written by the JSON and YAML renderers.
type Document struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Project     ProjectMeta    `json:"project" yaml:"project"`
	Counts      health.Counts  `json:"counts" yaml:"counts"`
	Report      health.Report  `json:"report" yaml:"report"`
	Alerts      []alerts.Alert `json:"alerts" yaml:"alerts"`
}

// NewDocument wraps rep for output. now is passed explicitly so callers
// (and tests) control the clock; the analyzer itself never reads it.
func NewDocument(p *types.Project, rep health.Report, fired []alerts.Alert, now time.Time) Document {
	if fired == nil {
		fired = []alerts.Alert{}
	}
	return Document{
		RunID:       uuid.NewString(),
		GeneratedAt: now.UTC(),
		Project: ProjectMeta{
			Name:   p.Name,
			Number: p.Number,
			Start:  p.Start,
			End:    p.End,
		},
		Counts: rep.Counts(),
		Report: rep,
		Alerts: fired,
	}
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render: encode json: %w", err)
	}
	return nil
}

// YAML writes doc as a YAML document.
func YAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render: encode yaml: %w", err)
	}
	return nil
}
