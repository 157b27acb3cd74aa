package systems

import (
	"math"
	"testing"
)

func TestAngerIncrease_StaysInRange(t *testing.T) {
	deltas := []float64{0, 0.05, 0.1, 0.33, 0.5, 0.99, 1}
	for _, d := range deltas {
		a := NewAngerTracker(0.5, nil)
		for i := 0; i < 30; i++ {
			v, _ := a.Increase(d)
			if v < 0 || v > 1 {
				t.Fatalf("Increase(%v) step %d = %v, out of [0,1]", d, i, v)
			}
		}
	}
}

func TestAngerIncrease_ClampsNegativeAndNaN(t *testing.T) {
	a := NewAngerTracker(0.5, nil)
	if v, _ := a.Increase(-3); v != 0 {
		t.Errorf("Increase(-3) = %v, want 0", v)
	}
	if v, _ := a.Increase(math.NaN()); v != 0 {
		t.Errorf("Increase(NaN) = %v, want 0", v)
	}
	if v, _ := a.Increase(5); v != 1 {
		t.Errorf("Increase(5) = %v, want 1", v)
	}
}

func TestAngerGameOver_TripsOnce(t *testing.T) {
	a := NewAngerTracker(0.5, nil)
	trips := 0
	for i := 0; i < 15; i++ {
		if _, tripped := a.Increase(0.1); tripped {
			trips++
		}
	}
	if trips != 1 {
		t.Errorf("trips = %d, want 1", trips)
	}
	if !a.Tripped() {
		t.Error("Tripped() = false after filling")
	}

	a.Reset()
	if a.Tripped() {
		t.Error("Tripped() = true after Reset")
	}
	if _, tripped := a.Increase(1); !tripped {
		t.Error("Increase(1) after Reset did not trip again")
	}
}

func TestAngerGameOver_ExactlyFullAfterReset(t *testing.T) {
	tests := []struct {
		name  string
		steps []float64
		trips []bool
		over  bool
	}{
		{"just below full", []float64{0.999}, []bool{false}, false},
		{"sum reaches full", []float64{0.999, 0.001}, []bool{false, true}, true},
		{"stays tripped", []float64{0.999, 0.001, 0.1}, []bool{false, true, false}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAngerTracker(0.5, nil)
			a.Increase(0.7)
			a.Reset()

			for i, d := range tt.steps {
				if _, tripped := a.Increase(d); tripped != tt.trips[i] {
					t.Errorf("Increase(%v) step %d tripped = %v, want %v", d, i, tripped, tt.trips[i])
				}
			}
			if a.Tripped() != tt.over {
				t.Errorf("Tripped() = %v, want %v", a.Tripped(), tt.over)
			}
		})
	}
}

func TestAngerReset_ClearsBeforeReporting(t *testing.T) {
	rec := newRecorder()
	a := NewAngerTracker(0.5, rec)
	a.Increase(1)
	rec.angerEvents = nil

	a.Reset()
	if len(rec.angerEvents) != 1 || rec.angerEvents[0] != 0 {
		t.Errorf("events after Reset = %v, want [0]", rec.angerEvents)
	}
	if a.Value() != 0 {
		t.Errorf("Value() = %v, want 0", a.Value())
	}
}

func TestSeverityIndex(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.05, 0},
		{0.1, 1},
		{0.45, 4},
		{0.9, 9},
		{0.99, 9},
		{1, 9},
		{-0.2, 0},
	}
	for _, tt := range tests {
		if got := SeverityIndex(tt.v); got != tt.want {
			t.Errorf("SeverityIndex(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestAngerLabel(t *testing.T) {
	a := NewAngerTracker(0.5, nil)
	if got := a.Label(); got != "Happy" {
		t.Errorf("Label() at 0 = %q, want Happy", got)
	}
	a.Increase(0.95)
	if got := a.Label(); got != "Furious!!!" {
		t.Errorf("Label() at 0.95 = %q, want Furious!!!", got)
	}
	a.Increase(0.1)
	if got := a.Label(); got != "" {
		t.Errorf("Label() when full = %q, want empty", got)
	}
}

func TestAngerDisplayed_EasesOverFillDuration(t *testing.T) {
	a := NewAngerTracker(0.5, nil)
	a.Increase(0.4)

	a.Advance(0.25)
	if got := a.Displayed(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Displayed() halfway = %v, want 0.2", got)
	}
	a.Advance(0.25)
	if got := a.Displayed(); got != 0.4 {
		t.Errorf("Displayed() after full duration = %v, want 0.4", got)
	}

	a.Reset()
	a.Settle()
	if a.Displayed() != 0 {
		t.Errorf("Displayed() after Settle = %v, want 0", a.Displayed())
	}
}

func TestAngerColor_Endpoints(t *testing.T) {
	a := NewAngerTracker(0, nil)
	if got := a.Color(); got != angerCalm {
		t.Errorf("Color() at 0 = %v, want %v", got, angerCalm)
	}
	a.Increase(1)
	a.Advance(0.1)
	if got := a.Color(); got != angerFurious {
		t.Errorf("Color() at 1 = %v, want %v", got, angerFurious)
	}
}
