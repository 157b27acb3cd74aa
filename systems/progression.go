package systems

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/munch/config"
)

// AngerResetter is cleared at the start of every level-up.
type AngerResetter interface {
	Reset()
}

// ProgressionEngine tracks score, growth and level, and fans out
// difficulty scaling when the level changes.
type ProgressionEngine struct {
	cfg config.ProgressionConfig

	score      int
	multiplier float64
	level      int
	growth     float64
	speedScale float64

	anger AngerResetter
	hooks Hooks

	// HoldTempo, when set and returning true, suppresses the tempo push on
	// level-up. The session uses it while Slow owns the tempo.
	HoldTempo func() bool
}

// NewProgressionEngine creates an engine at level 1.
func NewProgressionEngine(cfg config.ProgressionConfig, anger AngerResetter, hooks Hooks) *ProgressionEngine {
	if hooks == nil {
		hooks = NopHooks{}
	}
	p := &ProgressionEngine{cfg: cfg, anger: anger, hooks: hooks}
	p.Reset()
	return p
}

// Reset returns to level 1 without notifying anyone.
func (p *ProgressionEngine) Reset() {
	p.score = 0
	p.multiplier = 1
	p.level = 1
	p.growth = p.cfg.GrowthMin
	p.speedScale = 1
}

// AddScore awards round-half-up(base * multiplier) points and grows the
// player. It returns the points awarded and whether a level-up happened.
func (p *ProgressionEngine) AddScore(basePoints int) (int, bool) {
	points := roundHalfUp(float64(basePoints) * p.multiplier)
	p.score += points
	p.hooks.OnScoreChanged(p.score)

	p.growth = math.Min(p.growth+p.cfg.GrowthIncrement, p.cfg.GrowthMax)
	if p.growth >= p.cfg.GrowthMax {
		p.LevelUp()
		return points, true
	}
	return points, false
}

// LevelUp advances one level. Anger is reset first so a nearly full meter
// cannot end the game in the same tick.
func (p *ProgressionEngine) LevelUp() {
	if p.anger != nil {
		p.anger.Reset()
	}
	p.level++
	p.growth = p.cfg.GrowthMin
	p.multiplier += p.cfg.MultiplierIncrement
	p.speedScale = math.Pow(p.cfg.SpeedStep, float64(p.level-1))

	slog.Info("level up",
		"level", p.level,
		"score", p.score,
		"multiplier", p.multiplier,
		"speed_scale", p.speedScale,
	)

	p.hooks.OnLevelChanged(p.level)
	p.hooks.OnSoundCue(CueLevelUp)
	p.hooks.SetPerLevelSpawnSpeedScale(p.speedScale)
	if p.HoldTempo == nil || !p.HoldTempo() {
		p.hooks.SetMusicTempo(p.BaselineTempo())
	}
}

// BaselineTempo is the music tempo for the current level.
func (p *ProgressionEngine) BaselineTempo() float64 {
	return 1 + float64(p.level-1)*p.cfg.TempoIncrement
}

// SpeedScale is the compounding per-level food speed factor.
func (p *ProgressionEngine) SpeedScale() float64 { return p.speedScale }

// Score returns the accumulated score.
func (p *ProgressionEngine) Score() int { return p.score }

// Level returns the current level, starting at 1.
func (p *ProgressionEngine) Level() int { return p.level }

// Multiplier returns the current point multiplier.
func (p *ProgressionEngine) Multiplier() float64 { return p.multiplier }

// Growth returns the player size metric.
func (p *ProgressionEngine) Growth() float64 { return p.growth }

// GrowthFraction returns growth mapped to [0,1] across its range.
func (p *ProgressionEngine) GrowthFraction() float64 {
	return clamp01(inverseLerp(p.cfg.GrowthMin, p.cfg.GrowthMax, p.growth))
}
