package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulated time.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Alive   int `csv:"alive"`
	Stunned int `csv:"stunned"`
	Food    int `csv:"food"`

	// Events during window
	Moves      int `csv:"moves"`
	Collisions int `csv:"collisions"`
	Recoveries int `csv:"recoveries"`
	Deaths     int `csv:"deaths"`
	Eats       int `csv:"eats"`

	CollisionRate float64 `csv:"collision_rate"` // collisions per step attempt

	// Body length distribution (sampled at window end)
	LengthMean float64 `csv:"length_mean"`
	LengthStd  float64 `csv:"length_std"`
	LengthP10  float64 `csv:"length_p10"`
	LengthP50  float64 `csv:"length_p50"`
	LengthP90  float64 `csv:"length_p90"`
	LengthMax  float64 `csv:"length_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LengthStats summarises body lengths.
type LengthStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeLengthStats calculates mean, sample std, percentiles and max.
func ComputeLengthStats(values []float64) LengthStats {
	n := len(values)
	if n == 0 {
		return LengthStats{}
	}

	var s LengthStats
	if n == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}
	s.Max = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Int("stunned", s.Stunned),
		slog.Int("food", s.Food),
		slog.Int("moves", s.Moves),
		slog.Int("collisions", s.Collisions),
		slog.Int("recoveries", s.Recoveries),
		slog.Int("deaths", s.Deaths),
		slog.Int("eats", s.Eats),
		slog.Float64("collision_rate", s.CollisionRate),
		slog.Float64("length_mean", s.LengthMean),
		slog.Float64("length_p50", s.LengthP50),
		slog.Float64("length_max", s.LengthMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"alive", s.Alive,
		"stunned", s.Stunned,
		"food", s.Food,
		"moves", s.Moves,
		"collisions", s.Collisions,
		"recoveries", s.Recoveries,
		"deaths", s.Deaths,
		"eats", s.Eats,
		"collision_rate", s.CollisionRate,
		"length_mean", s.LengthMean,
		"length_std", s.LengthStd,
		"length_p10", s.LengthP10,
		"length_p50", s.LengthP50,
		"length_p90", s.LengthP90,
		"length_max", s.LengthMax,
	)
}
