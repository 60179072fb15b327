package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeLengthStats(t *testing.T) {
	values := []float64{3, 1, 5, 2, 4}
	s := ComputeLengthStats(values)

	if math.Abs(s.Mean-3) > 0.001 {
		t.Errorf("mean = %v, want 3", s.Mean)
	}
	// Sample standard deviation of 1..5
	if math.Abs(s.Std-math.Sqrt(2.5)) > 0.001 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(2.5))
	}
	if math.Abs(s.P50-3) > 0.001 {
		t.Errorf("p50 = %v, want 3", s.P50)
	}
	if math.Abs(s.P10-1.4) > 0.001 {
		t.Errorf("p10 = %v, want 1.4", s.P10)
	}
	if s.Max != 5 {
		t.Errorf("max = %v, want 5", s.Max)
	}
	// Input must not be reordered
	if values[0] != 3 {
		t.Error("ComputeLengthStats sorted its input")
	}
}

func TestComputeLengthStatsSmall(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   LengthStats
	}{
		{"empty", nil, LengthStats{}},
		{"single", []float64{4}, LengthStats{Mean: 4, P10: 4, P50: 4, P90: 4, Max: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeLengthStats(tt.values); got != tt.want {
				t.Errorf("ComputeLengthStats(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}
