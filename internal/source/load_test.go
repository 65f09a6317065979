package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsidianstack/schedhealth/pkg/types"
)

const projectYAML = `
name: Billing Platform Migration
number: PRJ0042
start: 2026-01-05
end: 2026-09-30
activities:
  - name: Discovery
    number: "1.1"
    professional: Ana Souza
    start: 2026-01-05
    end: 2026-02-13
    percent_achieved: 100
    percent_planned: 100
    hours_logged: 120
    hours_remaining: 0
  - name: Data model
    number: "1.2"
    professional: Bruno Lima
    start: "2026-02-16"
    end: 2026-05-29T00:00:00Z
    percent_achieved: 85
    percent_planned: 90
    hours_logged: 180
    hours_remaining: 40
`

const projectJSON = `{
  "name": "Billing Platform Migration",
  "number": "PRJ0042",
  "start": "2026-01-05",
  "end": "2026-09-30",
  "activities": [
    {"name": "Rollout", "number": "2.1", "professional": "Carla Dias",
     "start": "2026-06-01", "end": "2026-09-30",
     "percent_achieved": 45, "percent_planned": 60,
     "hours_logged": 95, "hours_remaining": 85}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	p, err := Load(writeFile(t, "project.yaml", projectYAML))
	require.NoError(t, err)

	assert.Equal(t, "Billing Platform Migration", p.Name)
	assert.Equal(t, "PRJ0042", p.Number)
	assert.Equal(t, types.NewDate(2026, time.January, 5), p.Start)
	assert.Equal(t, "2026-09-30", p.End.String())
	require.Len(t, p.Activities, 2)

	a := p.Activities[1]
	assert.Equal(t, "Data model", a.Name)
	assert.Equal(t, "1.2", a.Number)
	assert.Equal(t, "Bruno Lima", a.Professional)
	assert.Equal(t, "2026-02-16", a.Start.String())
	assert.Equal(t, "2026-05-29", a.End.String())
	assert.Equal(t, 85.0, a.PercentAchieved)
	assert.Equal(t, 90.0, a.PercentPlanned)
	assert.Equal(t, 180.0, a.HoursLogged)
	assert.Equal(t, 40.0, a.HoursRemaining)
}

func TestLoad_JSON(t *testing.T) {
	p, err := Load(writeFile(t, "project.json", projectJSON))
	require.NoError(t, err)

	require.Len(t, p.Activities, 1)
	assert.Equal(t, "Rollout", p.Activities[0].Name)
	assert.Equal(t, 60.0, p.Activities[0].PercentPlanned)
	assert.Equal(t, "2026-06-01", p.Activities[0].Start.String())
}

func TestLoad_NoActivitiesIsValid(t *testing.T) {
	p, err := Load(writeFile(t, "project.yaml", "name: Empty\n"))
	require.NoError(t, err)
	assert.Empty(t, p.Activities)
}

func TestLoad_NegativePercentagesPassThrough(t *testing.T) {
	p, err := Load(writeFile(t, "project.yaml", `
activities:
  - name: Odd
    percent_achieved: -10
    percent_planned: -20
`))
	require.NoError(t, err)
	assert.Equal(t, -10.0, p.Activities[0].PercentAchieved)
	assert.Equal(t, -20.0, p.Activities[0].PercentPlanned)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unnamed activity", "activities:\n  - percent_planned: 10\n"},
		{"NaN percentage", "activities:\n  - name: x\n    percent_planned: .nan\n"},
		{"infinite hours", "activities:\n  - name: x\n    hours_logged: .inf\n"},
		{"unknown field", "activities:\n  - name: x\n    percent_done: 10\n"},
		{"bad date", "start: 05/01/2026\n"},
		{"malformed", "activities: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "project.yaml", tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := Load(writeFile(t, "project.yaml", ""))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
