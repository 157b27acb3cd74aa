package telemetry

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/systems"
)

func TestCollectorWindowTicks(t *testing.T) {
	tests := []struct {
		window, dt float64
		want       int32
	}{
		{10, 0.5, 20},
		{1, 0.25, 4},
		{0.01, 1, 1},
	}
	for _, tt := range tests {
		c := NewCollector(tt.window, tt.dt)
		if got := c.WindowDurationTicks(); got != tt.want {
			t.Errorf("NewCollector(%v, %v).WindowDurationTicks() = %d, want %d", tt.window, tt.dt, got, tt.want)
		}
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(2, 0.5) // 4 ticks
	if c.ShouldFlush(3) {
		t.Error("ShouldFlush(3) = true before the window elapsed")
	}
	if !c.ShouldFlush(4) {
		t.Error("ShouldFlush(4) = false at the window end")
	}
	c.Flush(4, GameState{})
	if c.ShouldFlush(7) {
		t.Error("ShouldFlush(7) = true after flushing at 4")
	}
	if !c.ShouldFlush(8) {
		t.Error("ShouldFlush(8) = false at the second window end")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(2, 0.5)
	for range 3 {
		c.Record(EventEat)
	}
	c.Record(EventMiss)
	c.Record(EventSpawn)
	c.Record(EventLevelUp)
	c.SampleAnger(0.2)
	c.SampleAnger(0.4)

	s := c.Flush(4, GameState{Score: 300, Level: 2, LiveFoods: 5, PoolExhausted: 1})

	if s.WindowStartTick != 0 || s.WindowEndTick != 4 {
		t.Errorf("window = [%d, %d], want [0, 4]", s.WindowStartTick, s.WindowEndTick)
	}
	if math.Abs(s.GameTimeSec-2) > 1e-9 {
		t.Errorf("GameTimeSec = %v, want 2", s.GameTimeSec)
	}
	if s.Eaten != 3 || s.Missed != 1 || s.Spawned != 1 || s.LevelUps != 1 {
		t.Errorf("counts eaten=%d missed=%d spawned=%d levelups=%d", s.Eaten, s.Missed, s.Spawned, s.LevelUps)
	}
	if math.Abs(s.EatRate-0.75) > 1e-9 {
		t.Errorf("EatRate = %v, want 0.75", s.EatRate)
	}
	if math.Abs(s.AngerMean-0.3) > 1e-9 {
		t.Errorf("AngerMean = %v, want 0.3", s.AngerMean)
	}
	if s.AngerPeak != 0.4 {
		t.Errorf("AngerPeak = %v, want 0.4", s.AngerPeak)
	}
	if s.Score != 300 || s.Level != 2 || s.LiveFoods != 5 || s.PoolExhausted != 1 {
		t.Errorf("state = %+v", s)
	}

	next := c.Flush(8, GameState{})
	if next.Eaten != 0 || next.AngerPeak != 0 || next.WindowStartTick != 4 {
		t.Errorf("second window not reset: %+v", next)
	}
}

func TestCollectorNoEventsEatRate(t *testing.T) {
	c := NewCollector(1, 1)
	if s := c.Flush(1, GameState{}); s.EatRate != 0 {
		t.Errorf("EatRate = %v, want 0", s.EatRate)
	}
}

func TestCollectorHooks(t *testing.T) {
	c := NewCollector(10, 1)
	h := c.Hooks()

	var e ecs.Entity
	h.OnFoodSpawned(e, 0, components.Position{}, components.PatternStraight, components.PowerUpNone)
	h.OnFoodRemoved(e, systems.RemovedConsumed)
	h.OnFoodRemoved(e, systems.RemovedMissed)
	h.OnFoodRemoved(e, systems.RemovedCleared)
	h.OnPowerUpStateChanged(components.PowerUpSpeed, systems.PowerUpStateReady)
	h.OnPowerUpStateChanged(components.PowerUpSpeed, systems.PowerUpStateActive)
	h.OnPowerUpNotReady(components.PowerUpSlow)
	h.OnSoundCue(systems.CueSick)
	h.OnSoundCue(systems.CueEat)
	h.OnLevelChanged(2)
	h.OnGameOver(100, 10)

	want := map[EventType]int{
		EventSpawn:       1,
		EventEat:         1,
		EventMiss:        1,
		EventActivation:  1,
		EventNotReady:    1,
		EventRottenEaten: 1,
		EventLevelUp:     1,
		EventGameOver:    1,
	}
	for ev, n := range want {
		if got := c.Count(ev); got != n {
			t.Errorf("Count(%s) = %d, want %d", ev, got, n)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventRottenEaten.String(); got != "rotten_eaten" {
		t.Errorf("EventRottenEaten.String() = %q", got)
	}
	if got := EventType(200).String(); got != "unknown" {
		t.Errorf("EventType(200).String() = %q", got)
	}
}
