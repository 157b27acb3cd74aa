package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
)

// PowerUpState is the presentation-facing state of one power-up kind.
type PowerUpState uint8

const (
	PowerUpStateNone PowerUpState = iota
	PowerUpStateReady
	PowerUpStateActive
)

func (s PowerUpState) String() string {
	switch s {
	case PowerUpStateReady:
		return "ready"
	case PowerUpStateActive:
		return "active"
	default:
		return "none"
	}
}

// SoundCue identifies a one-shot audio event.
type SoundCue uint8

const (
	CueEat SoundCue = iota
	CueSick
	CueMiss
	CueSpeed
	CueSlow
	CueMagnet
	CueMagnetEnd // stops the magnet loop
	CueNotReady
	CueLevelUp
	CueGameOver
	CueRank
)

var cueNames = [...]string{"eat", "sick", "miss", "speed", "slow", "magnet", "magnet_end", "not_ready", "level_up", "game_over", "rank"}

func (c SoundCue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// RemovalReason explains why a food entity left play.
type RemovalReason uint8

const (
	RemovedConsumed RemovalReason = iota
	RemovedMissed
	RemovedCleared
)

func (r RemovalReason) String() string {
	switch r {
	case RemovedConsumed:
		return "consumed"
	case RemovedMissed:
		return "missed"
	default:
		return "cleared"
	}
}

// Hooks receives every notification the core emits.
// Implementations must not call back into the engines.
type Hooks interface {
	OnFoodSpawned(e ecs.Entity, foodType uint8, pos components.Position, pattern components.Pattern, kind components.PowerUpKind)
	OnFoodRemoved(e ecs.Entity, reason RemovalReason)
	OnScoreChanged(score int)
	OnLevelChanged(level int)
	OnAngerChanged(value float64, severity int)
	OnPowerUpStateChanged(kind components.PowerUpKind, state PowerUpState)
	OnPowerUpNotReady(kind components.PowerUpKind)
	OnGameOver(finalScore, rankTier int)
	OnRankRevealed(rank int, pitch float64)
	OnRestart()
	OnSoundCue(cue SoundCue)

	SetGlobalFoodSpeedMultiplier(m float64)
	SetPerLevelSpawnSpeedScale(s float64)
	SetMusicTempo(t float64)
}

// NopHooks implements Hooks with no-ops. Embed it to override a subset.
type NopHooks struct{}

func (NopHooks) OnFoodSpawned(ecs.Entity, uint8, components.Position, components.Pattern, components.PowerUpKind) {
}
func (NopHooks) OnFoodRemoved(ecs.Entity, RemovalReason) {}
func (NopHooks) OnScoreChanged(int) {}
func (NopHooks) OnLevelChanged(int) {}
func (NopHooks) OnAngerChanged(float64, int) {}
func (NopHooks) OnPowerUpStateChanged(components.PowerUpKind, PowerUpState) {}
func (NopHooks) OnPowerUpNotReady(components.PowerUpKind) {}
func (NopHooks) OnGameOver(int, int) {}
func (NopHooks) OnRankRevealed(int, float64) {}
func (NopHooks) OnRestart() {}
func (NopHooks) OnSoundCue(SoundCue) {}
func (NopHooks) SetGlobalFoodSpeedMultiplier(float64) {}
func (NopHooks) SetPerLevelSpawnSpeedScale(float64) {}
func (NopHooks) SetMusicTempo(float64) {}

// MultiHooks fans every notification out to each element in order.
type MultiHooks []Hooks

func (m MultiHooks) OnFoodSpawned(e ecs.Entity, foodType uint8, pos components.Position, pattern components.Pattern, kind components.PowerUpKind) {
	for _, h := range m {
		h.OnFoodSpawned(e, foodType, pos, pattern, kind)
	}
}

func (m MultiHooks) OnFoodRemoved(e ecs.Entity, reason RemovalReason) {
	for _, h := range m {
		h.OnFoodRemoved(e, reason)
	}
}

func (m MultiHooks) OnScoreChanged(score int) {
	for _, h := range m {
		h.OnScoreChanged(score)
	}
}

func (m MultiHooks) OnLevelChanged(level int) {
	for _, h := range m {
		h.OnLevelChanged(level)
	}
}

func (m MultiHooks) OnAngerChanged(value float64, severity int) {
	for _, h := range m {
		h.OnAngerChanged(value, severity)
	}
}

func (m MultiHooks) OnPowerUpStateChanged(kind components.PowerUpKind, state PowerUpState) {
	for _, h := range m {
		h.OnPowerUpStateChanged(kind, state)
	}
}

func (m MultiHooks) OnPowerUpNotReady(kind components.PowerUpKind) {
	for _, h := range m {
		h.OnPowerUpNotReady(kind)
	}
}

func (m MultiHooks) OnGameOver(finalScore, rankTier int) {
	for _, h := range m {
		h.OnGameOver(finalScore, rankTier)
	}
}

func (m MultiHooks) OnRankRevealed(rank int, pitch float64) {
	for _, h := range m {
		h.OnRankRevealed(rank, pitch)
	}
}

func (m MultiHooks) OnRestart() {
	for _, h := range m {
		h.OnRestart()
	}
}

func (m MultiHooks) OnSoundCue(cue SoundCue) {
	for _, h := range m {
		h.OnSoundCue(cue)
	}
}

func (m MultiHooks) SetGlobalFoodSpeedMultiplier(v float64) {
	for _, h := range m {
		h.SetGlobalFoodSpeedMultiplier(v)
	}
}

func (m MultiHooks) SetPerLevelSpawnSpeedScale(s float64) {
	for _, h := range m {
		h.SetPerLevelSpawnSpeedScale(s)
	}
}

func (m MultiHooks) SetMusicTempo(t float64) {
	for _, h := range m {
		h.SetMusicTempo(t)
	}
}
