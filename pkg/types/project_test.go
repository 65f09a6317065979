package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-01-05", "2026-01-05", false},
		{"2026-01-05T15:04:05Z", "2026-01-05", false},
		{"  2026-12-31 ", "2026-12-31", false},
		{"", "", false},
		{"05/01/2026", "", true},
		{"2026-13-01", "", true},
	}
	for _, tc := range tests {
		d, err := ParseDate(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, d.String(), tc.in)
	}
}

func TestDate_YAMLRoundTrip(t *testing.T) {
	var a Activity
	require.NoError(t, yaml.Unmarshal([]byte("name: x\nstart: 2026-02-16\nend: \"2026-05-29\"\n"), &a))
	assert.Equal(t, NewDate(2026, time.February, 16), a.Start)
	assert.Equal(t, "2026-05-29", a.End.String())

	out, err := yaml.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `start: "2026-02-16"`)
}

func TestDate_YAMLNull(t *testing.T) {
	var a Activity
	require.NoError(t, yaml.Unmarshal([]byte("name: x\nstart: null\n"), &a))
	assert.True(t, a.Start.IsZero())
}

func TestDate_JSON(t *testing.T) {
	var a Activity
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","start":"2026-02-16","end":null}`), &a))
	assert.Equal(t, "2026-02-16", a.Start.String())
	assert.True(t, a.End.IsZero())

	out, err := json.Marshal(Project{Start: NewDate(2026, time.March, 1)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"start":"2026-03-01"`)
	assert.Contains(t, string(out), `"end":""`)

	assert.Error(t, json.Unmarshal([]byte(`{"start":20260216}`), &a))
}
