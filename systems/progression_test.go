package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/munch/config"
)

func testProgressionConfig() config.ProgressionConfig {
	return config.ProgressionConfig{
		BasePoints:          100,
		GrowthMin:           1,
		GrowthMax:           10,
		GrowthIncrement:     0.5,
		MultiplierIncrement: 0.5,
		SpeedStep:           1.3,
		TempoIncrement:      0.05,
	}
}

func TestAddScore_AppliesMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		base       int
		multiplier float64
		want       int
	}{
		{"unit", 100, 1.0, 100},
		{"one and a half", 100, 1.5, 150},
		{"half rounds up", 1, 1.5, 2},
		{"below half rounds down", 3, 1.1, 3},
		{"level five", 100, 3.0, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgressionEngine(testProgressionConfig(), nil, nil)
			p.multiplier = tt.multiplier
			got, _ := p.AddScore(tt.base)
			if got != tt.want {
				t.Errorf("AddScore(%d) at x%v = %d, want %d", tt.base, tt.multiplier, got, tt.want)
			}
			if p.Score() != tt.want {
				t.Errorf("Score() = %d, want %d", p.Score(), tt.want)
			}
		})
	}
}

func TestAddScore_LevelsUpAtGrowthCeiling(t *testing.T) {
	rec := newRecorder()
	p := NewProgressionEngine(testProgressionConfig(), nil, rec)

	// 1.0 -> 10.0 in 0.5 steps takes 18 consumptions.
	for i := 0; i < 17; i++ {
		if _, leveled := p.AddScore(100); leveled {
			t.Fatalf("leveled up early at consumption %d", i+1)
		}
	}
	if _, leveled := p.AddScore(100); !leveled {
		t.Fatal("no level-up at growth ceiling")
	}

	if p.Level() != 2 {
		t.Errorf("Level = %d, want 2", p.Level())
	}
	if p.Growth() != 1 {
		t.Errorf("Growth = %v, want 1", p.Growth())
	}
	if p.Multiplier() != 1.5 {
		t.Errorf("Multiplier = %v, want 1.5", p.Multiplier())
	}
	if math.Abs(p.SpeedScale()-1.3) > 1e-12 {
		t.Errorf("SpeedScale = %v, want 1.3", p.SpeedScale())
	}
	if len(rec.speedScales) != 1 || math.Abs(rec.speedScales[0]-1.3) > 1e-12 {
		t.Errorf("pushed speed scales = %v, want [1.3]", rec.speedScales)
	}
	if len(rec.tempos) != 1 || math.Abs(rec.tempos[0]-1.05) > 1e-12 {
		t.Errorf("pushed tempos = %v, want [1.05]", rec.tempos)
	}
}

func TestLevelUp_ResetsAngerFirst(t *testing.T) {
	anger := NewAngerTracker(0.5, nil)
	anger.Increase(0.95)
	p := NewProgressionEngine(testProgressionConfig(), anger, nil)
	p.growth = 9.5

	p.AddScore(100)
	if anger.Value() != 0 {
		t.Errorf("anger = %v, want 0", anger.Value())
	}

	// A miss in the same tick must not end the game.
	if _, tripped := anger.Increase(0.1); tripped {
		t.Error("miss after level-up tripped game over")
	}
}

func TestLevelUp_Compounds(t *testing.T) {
	p := NewProgressionEngine(testProgressionConfig(), nil, nil)
	for i := 0; i < 3; i++ {
		p.LevelUp()
	}
	if p.Level() != 4 {
		t.Errorf("Level = %d, want 4", p.Level())
	}
	if want := math.Pow(1.3, 3); math.Abs(p.SpeedScale()-want) > 1e-12 {
		t.Errorf("SpeedScale = %v, want %v", p.SpeedScale(), want)
	}
	if want := 1.15; math.Abs(p.BaselineTempo()-want) > 1e-12 {
		t.Errorf("BaselineTempo = %v, want %v", p.BaselineTempo(), want)
	}
	if p.Multiplier() != 2.5 {
		t.Errorf("Multiplier = %v, want 2.5", p.Multiplier())
	}
}

func TestLevelUp_HoldTempo(t *testing.T) {
	rec := newRecorder()
	p := NewProgressionEngine(testProgressionConfig(), nil, rec)
	p.HoldTempo = func() bool { return true }
	p.LevelUp()
	if len(rec.tempos) != 0 {
		t.Errorf("tempos = %v, want none while held", rec.tempos)
	}
	if math.Abs(p.BaselineTempo()-1.05) > 1e-12 {
		t.Errorf("BaselineTempo = %v, want 1.05", p.BaselineTempo())
	}
}

func TestProgressionReset(t *testing.T) {
	p := NewProgressionEngine(testProgressionConfig(), nil, nil)
	p.AddScore(100)
	p.LevelUp()
	p.Reset()
	if p.Score() != 0 || p.Level() != 1 || p.Multiplier() != 1 || p.Growth() != 1 || p.SpeedScale() != 1 {
		t.Errorf("after Reset: score %d level %d mult %v growth %v scale %v",
			p.Score(), p.Level(), p.Multiplier(), p.Growth(), p.SpeedScale())
	}
}
