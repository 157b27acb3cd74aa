package systems

import "github.com/pthm-cable/munch/config"

// RankTier maps a final score to a tier: max - floor(score/threshold),
// clamped to [min, max]. Lower is better.
func RankTier(score int, cfg config.RankConfig) int {
	if score < 0 {
		score = 0
	}
	tier := cfg.Max - score/cfg.Threshold
	if tier < cfg.Min {
		return cfg.Min
	}
	if tier > cfg.Max {
		return cfg.Max
	}
	return tier
}

// RankReveal counts down from the worst tier to the achieved one. The worst
// tier shows on Start, then one more per interval, raising the pitch with
// each step. It is driven by unscaled time so a paused game still finishes
// the sequence.
type RankReveal struct {
	interval  float64
	pitchStep float64
	worst     int

	target  int
	shown   int // last revealed tier, 0 before the first
	steps   int
	timer   float64
	running bool

	hooks Hooks
}

// NewRankReveal creates an idle sequencer.
func NewRankReveal(cfg config.RankConfig, hooks Hooks) *RankReveal {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &RankReveal{interval: cfg.RevealInterval, pitchStep: cfg.PitchIncrement, worst: cfg.Max, hooks: hooks}
}

// Start begins revealing toward target.
func (r *RankReveal) Start(target int) {
	r.target = target
	r.shown = 0
	r.steps = 0
	r.timer = 0
	r.running = true
	r.step()
}

// Advance emits every reveal whose time has come.
func (r *RankReveal) Advance(dt float64) {
	if !r.running {
		return
	}
	r.timer += dt
	for r.running && r.timer >= r.interval {
		r.timer -= r.interval
		r.step()
	}
}

func (r *RankReveal) step() {
	r.shown = r.worst - r.steps
	pitch := 1 + float64(r.steps)*r.pitchStep
	r.steps++
	r.hooks.OnRankRevealed(r.shown, pitch)
	r.hooks.OnSoundCue(CueRank)
	if r.shown <= r.target {
		r.running = false
	}
}

// Reset stops the sequence.
func (r *RankReveal) Reset() {
	r.running = false
	r.shown = 0
	r.steps = 0
	r.timer = 0
	r.target = 0
}

// Shown returns the last revealed tier, or 0 if none yet.
func (r *RankReveal) Shown() int { return r.shown }

// Running reports whether tiers remain to be revealed.
func (r *RankReveal) Running() bool { return r.running }

// Done reports whether the achieved tier has been revealed.
func (r *RankReveal) Done() bool { return !r.running && r.shown != 0 && r.shown <= r.target }
