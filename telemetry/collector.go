package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	counts       [eventTypeCount]int
	angerSamples []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in game seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		angerSamples:        make([]float64, 0, ticksPerWindow),
	}
}

// Record counts one event in the current window.
func (c *Collector) Record(ev EventType) {
	if ev < eventTypeCount {
		c.counts[ev]++
	}
}

// Count returns the current window's count for ev.
func (c *Collector) Count(ev EventType) int {
	if ev < eventTypeCount {
		return c.counts[ev]
	}
	return 0
}

// SampleAnger records the anger value for this tick.
func (c *Collector) SampleAnger(v float64) {
	c.angerSamples = append(c.angerSamples, v)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// GameState is the end-of-window state the caller samples for Flush.
type GameState struct {
	Score         int
	Level         int
	LiveFoods     int
	PoolExhausted int // fallback allocations during the window
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, state GameState) WindowStats {
	angerMean, angerStd, angerP90, angerPeak := ComputeAngerStats(c.angerSamples)

	var eatRate float64
	if seen := c.counts[EventEat] + c.counts[EventMiss]; seen > 0 {
		eatRate = float64(c.counts[EventEat]) / float64(seen)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		GameTimeSec:     float64(currentTick) * c.dt,

		Score:     state.Score,
		Level:     state.Level,
		LiveFoods: state.LiveFoods,

		Spawned:       c.counts[EventSpawn],
		Eaten:         c.counts[EventEat],
		Missed:        c.counts[EventMiss],
		RottenEaten:   c.counts[EventRottenEaten],
		Activations:   c.counts[EventActivation],
		NotReady:      c.counts[EventNotReady],
		LevelUps:      c.counts[EventLevelUp],
		GameOvers:     c.counts[EventGameOver],
		PoolExhausted: state.PoolExhausted,
		EatRate:       eatRate,

		AngerMean: angerMean,
		AngerStd:  angerStd,
		AngerP90:  angerP90,
		AngerPeak: angerPeak,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.counts = [eventTypeCount]int{}
	c.angerSamples = c.angerSamples[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
