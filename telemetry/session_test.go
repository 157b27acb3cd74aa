package telemetry

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/systems"
)

var _ systems.Hooks = (*SessionTracker)(nil)

func TestSessionTrackerSummary(t *testing.T) {
	st := NewSessionTracker(7)
	var e ecs.Entity

	st.Advance(0.5)
	st.Advance(0.5)
	st.OnFoodRemoved(e, systems.RemovedConsumed)
	st.OnFoodRemoved(e, systems.RemovedConsumed)
	st.OnFoodRemoved(e, systems.RemovedMissed)
	st.OnFoodRemoved(e, systems.RemovedCleared)
	st.OnSoundCue(systems.CueSick)
	st.OnPowerUpStateChanged(components.PowerUpMagnet, systems.PowerUpStateActive)
	st.OnAngerChanged(0.6, 6)
	st.OnAngerChanged(0.3, 3)
	st.OnScoreChanged(250)
	st.OnLevelChanged(2)

	if got := st.TakeFinished(); len(got) != 0 {
		t.Fatalf("TakeFinished before game over = %v", got)
	}

	st.OnGameOver(250, 10)
	got := st.TakeFinished()
	if len(got) != 1 {
		t.Fatalf("TakeFinished = %d summaries, want 1", len(got))
	}
	s := got[0]
	if s.Session != 1 || s.Seed != 7 {
		t.Errorf("session/seed = %d/%d, want 1/7", s.Session, s.Seed)
	}
	if math.Abs(s.DurationSec-1) > 1e-9 {
		t.Errorf("DurationSec = %v, want 1", s.DurationSec)
	}
	if s.Eaten != 2 || s.Missed != 1 || s.RottenEaten != 1 || s.Activations != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.PeakAnger != 0.6 {
		t.Errorf("PeakAnger = %v, want 0.6", s.PeakAnger)
	}
	if s.Score != 250 || s.Rank != 10 || s.Level != 2 {
		t.Errorf("score/rank/level = %d/%d/%d", s.Score, s.Rank, s.Level)
	}
	if again := st.TakeFinished(); len(again) != 0 {
		t.Errorf("TakeFinished twice returned %d summaries", len(again))
	}
}

func TestSessionTrackerRestart(t *testing.T) {
	st := NewSessionTracker(1)
	st.OnScoreChanged(100)
	st.OnGameOver(100, 10)
	st.OnRestart()

	cur := st.Current()
	if cur.Session != 2 {
		t.Errorf("Session after restart = %d, want 2", cur.Session)
	}
	if cur.Score != 0 || cur.Level != 1 || cur.DurationSec != 0 {
		t.Errorf("restart did not clear the record: %+v", cur)
	}
}
