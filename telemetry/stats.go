package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	GameTimeSec     float64 `csv:"game_time"`

	// State at window end
	Score     int `csv:"score"`
	Level     int `csv:"level"`
	LiveFoods int `csv:"live_foods"`

	// Events during window
	Spawned       int     `csv:"spawned"`
	Eaten         int     `csv:"eaten"`
	Missed        int     `csv:"missed"`
	RottenEaten   int     `csv:"rotten_eaten"`
	Activations   int     `csv:"activations"`
	NotReady      int     `csv:"not_ready"`
	LevelUps      int     `csv:"level_ups"`
	GameOvers     int     `csv:"game_overs"`
	PoolExhausted int     `csv:"pool_exhausted"`
	EatRate       float64 `csv:"eat_rate"` // eaten / (eaten + missed)

	// Anger distribution (sampled every tick)
	AngerMean float64 `csv:"anger_mean"`
	AngerStd  float64 `csv:"anger_std"`
	AngerP90  float64 `csv:"anger_p90"`
	AngerPeak float64 `csv:"anger_peak"`
}

// ComputeAngerStats returns mean, population std-dev, empirical 90th
// percentile and maximum of the samples. All zero for no samples.
func ComputeAngerStats(values []float64) (mean, std, p90, peak float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	peak = sorted[len(sorted)-1]
	return mean, std, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("game_time", s.GameTimeSec),
		slog.Int("score", s.Score),
		slog.Int("level", s.Level),
		slog.Int("live_foods", s.LiveFoods),
		slog.Int("spawned", s.Spawned),
		slog.Int("eaten", s.Eaten),
		slog.Int("missed", s.Missed),
		slog.Int("rotten_eaten", s.RottenEaten),
		slog.Int("activations", s.Activations),
		slog.Int("not_ready", s.NotReady),
		slog.Int("level_ups", s.LevelUps),
		slog.Int("game_overs", s.GameOvers),
		slog.Int("pool_exhausted", s.PoolExhausted),
		slog.Float64("eat_rate", s.EatRate),
		slog.Float64("anger_mean", s.AngerMean),
		slog.Float64("anger_std", s.AngerStd),
		slog.Float64("anger_p90", s.AngerP90),
		slog.Float64("anger_peak", s.AngerPeak),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
