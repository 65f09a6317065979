package alerts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/obsidianstack/schedhealth/internal/health"
)

// Fields that a rule condition may reference.
var fields = map[string]func(health.Report) float64{
	"weighted_mean_spi":  func(r health.Report) float64 { return r.WeightedMeanSPI },
	"standard_deviation": func(r health.Report) float64 { return r.StandardDeviation },
	"percent_at_risk":    func(r health.Report) float64 { return r.PercentAtRisk },
	"percent_on_track":   func(r health.Report) float64 { return r.PercentOnTrack() },
	"delayed_count":      func(r health.Report) float64 { return float64(len(r.Delayed)) },
	"at_risk_count":      func(r health.Report) float64 { return float64(len(r.AtRisk)) },
	"on_track_count":     func(r health.Report) float64 { return float64(len(r.OnTrack)) },
	"activity_count":     func(r health.Report) float64 { return float64(len(r.Activities)) },
}

// condition is a parsed "field op value" expression.
type condition struct {
	field     string
	op        string
	threshold float64
}

// parseCondition parses expressions of the form field operator value:
//
//	percent_at_risk > 30
//	weighted_mean_spi < 0.9
//	delayed_count >= 1
//	standard_deviation > 0.25
func parseCondition(cond string) (condition, error) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return condition{}, fmt.Errorf("condition %q: want \"field op value\"", cond)
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if _, ok := fields[field]; !ok {
		return condition{}, fmt.Errorf("condition %q: unknown field %q", cond, field)
	}
	switch op {
	case ">", ">=", "<", "<=", "==":
	default:
		return condition{}, fmt.Errorf("condition %q: unknown operator %q", cond, op)
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return condition{}, fmt.Errorf("condition %q: threshold: %w", cond, err)
	}
	return condition{field: field, op: op, threshold: threshold}, nil
}

// eval reports whether the condition holds for rep and the value it saw.
func (c condition) eval(rep health.Report) (bool, float64) {
	v := fields[c.field](rep)
	return compareFloat(v, c.op, c.threshold), v
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
