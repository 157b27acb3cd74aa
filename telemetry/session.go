package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/systems"
)

// SessionSummary describes one game from start to game over.
type SessionSummary struct {
	Session     int     `csv:"session" json:"session"`
	Seed        int64   `csv:"seed" json:"seed"`
	DurationSec float64 `csv:"duration_sec" json:"duration_sec"`
	Score       int     `csv:"score" json:"score"`
	Rank        int     `csv:"rank" json:"rank"`
	Level       int     `csv:"level" json:"level"`
	Eaten       int     `csv:"eaten" json:"eaten"`
	Missed      int     `csv:"missed" json:"missed"`
	RottenEaten int     `csv:"rotten_eaten" json:"rotten_eaten"`
	Activations int     `csv:"activations" json:"activations"`
	PeakAnger   float64 `csv:"peak_anger" json:"peak_anger"`
}

// SessionTracker accumulates per-game statistics. It implements
// systems.Hooks so it can sit alongside other collaborators.
type SessionTracker struct {
	systems.NopHooks

	seed     int64
	current  SessionSummary
	finished []SessionSummary
}

// NewSessionTracker starts tracking the first game.
func NewSessionTracker(seed int64) *SessionTracker {
	st := &SessionTracker{seed: seed}
	st.begin(1)
	return st
}

func (st *SessionTracker) begin(id int) {
	st.current = SessionSummary{Session: id, Seed: st.seed, Level: 1}
}

// Advance adds elapsed game time to the running game.
func (st *SessionTracker) Advance(dt float64) {
	st.current.DurationSec += dt
}

// Current returns the running game's statistics so far.
func (st *SessionTracker) Current() SessionSummary {
	return st.current
}

// TakeFinished returns and clears the summaries of games that ended.
func (st *SessionTracker) TakeFinished() []SessionSummary {
	out := st.finished
	st.finished = nil
	return out
}

func (st *SessionTracker) OnFoodRemoved(_ ecs.Entity, reason systems.RemovalReason) {
	switch reason {
	case systems.RemovedConsumed:
		st.current.Eaten++
	case systems.RemovedMissed:
		st.current.Missed++
	}
}

func (st *SessionTracker) OnScoreChanged(score int) { st.current.Score = score }

func (st *SessionTracker) OnLevelChanged(level int) { st.current.Level = level }

func (st *SessionTracker) OnAngerChanged(value float64, _ int) {
	st.current.PeakAnger = max(st.current.PeakAnger, value)
}

func (st *SessionTracker) OnPowerUpStateChanged(_ components.PowerUpKind, state systems.PowerUpState) {
	if state == systems.PowerUpStateActive {
		st.current.Activations++
	}
}

func (st *SessionTracker) OnSoundCue(cue systems.SoundCue) {
	if cue == systems.CueSick {
		st.current.RottenEaten++
	}
}

func (st *SessionTracker) OnGameOver(finalScore, rankTier int) {
	st.current.Score = finalScore
	st.current.Rank = rankTier
	st.finished = append(st.finished, st.current)
}

// OnRestart starts a new game record. A restart before game over
// discards the unfinished game.
func (st *SessionTracker) OnRestart() {
	st.begin(st.current.Session + 1)
}
