package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the calendar-day layout used for schedule dates.
const DateLayout = "2006-01-02"

// Project is one schedule: identifying metadata plus its ordered activities.
type Project struct {
	Name       string     `yaml:"name" json:"name"`
	Number     string     `yaml:"number" json:"number"`
	Start      Date       `yaml:"start" json:"start"`
	End        Date       `yaml:"end" json:"end"`
	Activities []Activity `yaml:"activities" json:"activities"`
}

// Activity is one line of a project schedule as supplied by the caller.
// Percentages are nominally 0–100 but are not range-checked anywhere.
type Activity struct {
	Name         string `yaml:"name" json:"name"`
	Number       string `yaml:"number" json:"number"`
	Professional string `yaml:"professional" json:"professional"`
	Start        Date   `yaml:"start" json:"start"`
	End          Date   `yaml:"end" json:"end"`

	// PercentAchieved is the share of the activity actually completed.
	PercentAchieved float64 `yaml:"percent_achieved" json:"percent_achieved"`
	// PercentPlanned is the share that should be complete by now.
	PercentPlanned float64 `yaml:"percent_planned" json:"percent_planned"`

	HoursLogged    float64 `yaml:"hours_logged" json:"hours_logged"`
	HoursRemaining float64 `yaml:"hours_remaining" json:"hours_remaining"`
}

// Date is a calendar date. It decodes either "2006-01-02" or RFC3339 and
// always encodes as "2006-01-02"; the zero Date encodes as an empty string.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s as a calendar date or an RFC3339 timestamp.
// An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// UnmarshalYAML accepts both plain and quoted scalars.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
