package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
)

// recorder captures notifications for assertions.
type recorder struct {
	NopHooks

	angerEvents []float64
	gameOvers   int
	scores      []int
	levels      []int
	states      map[components.PowerUpKind][]PowerUpState
	notReady    []components.PowerUpKind
	cues        []SoundCue
	tempos      []float64
	multipliers []float64
	speedScales []float64
	reveals     []int
	pitches     []float64
	spawned     []ecs.Entity
	removed     map[RemovalReason]int
}

func newRecorder() *recorder {
	return &recorder{
		states:  make(map[components.PowerUpKind][]PowerUpState),
		removed: make(map[RemovalReason]int),
	}
}

func (r *recorder) OnAngerChanged(v float64, _ int) { r.angerEvents = append(r.angerEvents, v) }
func (r *recorder) OnGameOver(int, int)             { r.gameOvers++ }
func (r *recorder) OnScoreChanged(s int)            { r.scores = append(r.scores, s) }
func (r *recorder) OnLevelChanged(l int)            { r.levels = append(r.levels, l) }
func (r *recorder) OnPowerUpStateChanged(k components.PowerUpKind, s PowerUpState) {
	r.states[k] = append(r.states[k], s)
}
func (r *recorder) OnPowerUpNotReady(k components.PowerUpKind) { r.notReady = append(r.notReady, k) }
func (r *recorder) OnSoundCue(c SoundCue)                      { r.cues = append(r.cues, c) }
func (r *recorder) SetMusicTempo(t float64)                    { r.tempos = append(r.tempos, t) }
func (r *recorder) SetGlobalFoodSpeedMultiplier(m float64) {
	r.multipliers = append(r.multipliers, m)
}
func (r *recorder) SetPerLevelSpawnSpeedScale(s float64) { r.speedScales = append(r.speedScales, s) }
func (r *recorder) OnRankRevealed(rank int, pitch float64) {
	r.reveals = append(r.reveals, rank)
	r.pitches = append(r.pitches, pitch)
}
func (r *recorder) OnFoodSpawned(e ecs.Entity, _ uint8, _ components.Position, _ components.Pattern, _ components.PowerUpKind) {
	r.spawned = append(r.spawned, e)
}
func (r *recorder) OnFoodRemoved(_ ecs.Entity, reason RemovalReason) { r.removed[reason]++ }

func (r *recorder) count(c SoundCue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}
