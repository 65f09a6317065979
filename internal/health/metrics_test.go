package health

import (
	"math"
	"testing"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// --- SPI ---

func TestSPI(t *testing.T) {
	tests := []struct {
		name              string
		achieved, planned float64
		want              float64
	}{
		{"on plan", 50, 50, 1.0},
		{"complete on plan", 100, 100, 1.0},
		{"behind", 45, 60, 0.75},
		{"ahead, not clamped", 90, 30, 3.0},
		{"nothing done against a plan", 0, 40, 0},
		{"progress with nothing planned", 10, 0, 1.5},
		{"nothing planned, nothing done", 0, 0, 1.0},
		{"negative progress with nothing planned", -5, 0, 1.0},
		{"negative plan passes through", 20, -40, -0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SPI(tc.achieved, tc.planned)
			if !almostEqual(got, tc.want, 1e-9) {
				t.Errorf("SPI(%v, %v) = %.6f, want %.6f", tc.achieved, tc.planned, got, tc.want)
			}
		})
	}
}

func TestSPI_EqualInputsYieldOne(t *testing.T) {
	// Property: achieving exactly the plan is SPI 1.0 for any positive plan.
	for _, p := range []float64{0.001, 1, 12.5, 33.3333, 99.99, 100, 250} {
		if got := SPI(p, p); got != 1.0 {
			t.Errorf("SPI(%v, %v) = %v, want 1.0", p, p, got)
		}
	}
}

// --- SV ---

func TestSV(t *testing.T) {
	tests := []struct {
		achieved, planned, want float64
	}{
		{100, 100, 0},
		{85, 90, -5},
		{45, 60, -15},
		{70, 50, 20},
		{0, 0, 0},
		{10, 0, 10},
	}
	for _, tc := range tests {
		if got := SV(tc.achieved, tc.planned); got != tc.want {
			t.Errorf("SV(%v, %v) = %v, want %v", tc.achieved, tc.planned, got, tc.want)
		}
	}
}

// --- Classify ---

func TestClassify(t *testing.T) {
	tests := []struct {
		spi  float64
		want Status
	}{
		{3.0, StatusOnTrack},
		{1.5, StatusOnTrack},
		{1.0, StatusOnTrack},
		{0.9, StatusOnTrack},
		{0.8999, StatusAtRisk},
		{0.75, StatusAtRisk},
		{0.7, StatusAtRisk},
		{0.6999, StatusDelayed},
		{0, StatusDelayed},
		{-0.5, StatusDelayed},
	}
	for _, tc := range tests {
		if got := Classify(tc.spi); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.spi, got, tc.want)
		}
	}
}

func TestStatus_LabelAndColor(t *testing.T) {
	tests := []struct {
		s         Status
		wantLabel string
		wantColor string
	}{
		{StatusOnTrack, "On Track", "#22c55e"},
		{StatusAtRisk, "At Risk", "#f59e0b"},
		{StatusDelayed, "Delayed", "#ef4444"},
	}
	for _, tc := range tests {
		if got := tc.s.Label(); got != tc.wantLabel {
			t.Errorf("%q.Label() = %q, want %q", tc.s, got, tc.wantLabel)
		}
		if got := tc.s.Color(); got != tc.wantColor {
			t.Errorf("%q.Color() = %q, want %q", tc.s, got, tc.wantColor)
		}
		if !tc.s.Valid() {
			t.Errorf("%q.Valid() = false, want true", tc.s)
		}
	}
	if Status("unknown").Valid() {
		t.Error(`Status("unknown").Valid() = true, want false`)
	}
}

// --- StdDev ---

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"nil", nil, 0},
		{"empty", []float64{}, 0},
		{"single value", []float64{0.42}, 0},
		{"identical values", []float64{1, 1, 1, 1}, 0},
		{"population, not sample", []float64{1, 2, 3, 4}, 1.118034},
		{"two points", []float64{0, 2}, 1},
		{"scenario SPIs", []float64{1.0, 85.0 / 90.0, 0.75}, 0.107184},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StdDev(tc.values); !almostEqual(got, tc.want, 1e-6) {
				t.Errorf("StdDev(%v) = %.6f, want %.6f", tc.values, got, tc.want)
			}
		})
	}
}
