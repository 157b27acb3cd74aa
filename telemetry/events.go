// Package telemetry provides session statistics, highlights, and CSV output.
package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/systems"
)

// EventType identifies a counted telemetry event.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventEat
	EventMiss
	EventRottenEaten
	EventActivation
	EventNotReady
	EventLevelUp
	EventGameOver

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"spawn", "eat", "miss", "rotten_eaten", "activation", "not_ready", "level_up", "game_over",
}

func (e EventType) String() string {
	if e < eventTypeCount {
		return eventNames[e]
	}
	return "unknown"
}

// Hooks returns a systems.Hooks that feeds notifications into the collector.
// Combine it with other collaborators through systems.MultiHooks.
func (c *Collector) Hooks() systems.Hooks {
	return collectorHooks{c: c}
}

type collectorHooks struct {
	systems.NopHooks
	c *Collector
}

func (h collectorHooks) OnFoodSpawned(ecs.Entity, uint8, components.Position, components.Pattern, components.PowerUpKind) {
	h.c.Record(EventSpawn)
}

func (h collectorHooks) OnFoodRemoved(_ ecs.Entity, reason systems.RemovalReason) {
	switch reason {
	case systems.RemovedConsumed:
		h.c.Record(EventEat)
	case systems.RemovedMissed:
		h.c.Record(EventMiss)
	}
}

func (h collectorHooks) OnPowerUpStateChanged(_ components.PowerUpKind, state systems.PowerUpState) {
	if state == systems.PowerUpStateActive {
		h.c.Record(EventActivation)
	}
}

func (h collectorHooks) OnPowerUpNotReady(components.PowerUpKind) {
	h.c.Record(EventNotReady)
}

func (h collectorHooks) OnSoundCue(cue systems.SoundCue) {
	if cue == systems.CueSick {
		h.c.Record(EventRottenEaten)
	}
}

func (h collectorHooks) OnLevelChanged(int) {
	h.c.Record(EventLevelUp)
}

func (h collectorHooks) OnGameOver(int, int) {
	h.c.Record(EventGameOver)
}
