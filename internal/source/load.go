package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/obsidianstack/schedhealth/pkg/types"
)

// ErrEmptyFile is returned when the project file contains no document.
var ErrEmptyFile = errors.New("empty project file")

// Load reads and parses the project file at path.
func Load(path string) (*types.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML or JSON project document and validates it.
// Unknown fields are rejected so typos in field names do not silently zero
// a metric.
func Parse(data []byte) (*types.Project, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p types.Project
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that p can be analysed: every activity is named and every
// numeric field is a finite number.
func Validate(p *types.Project) error {
	for i, a := range p.Activities {
		if a.Name == "" {
			return fmt.Errorf("activities[%d]: name is required", i)
		}
		fields := []struct {
			name string
			v    float64
		}{
			{"percent_achieved", a.PercentAchieved},
			{"percent_planned", a.PercentPlanned},
			{"hours_logged", a.HoursLogged},
			{"hours_remaining", a.HoursRemaining},
		}
		for _, f := range fields {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return fmt.Errorf("activities[%d] %q: %s must be a finite number", i, a.Name, f.name)
			}
		}
	}
	return nil
}
