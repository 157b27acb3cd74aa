package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_TracksPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMotion)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseConsume)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseMotion] <= 0 {
		t.Error("expected motion phase to be tracked")
	}
	if stats.PhaseAvg[PhaseConsume] <= 0 {
		t.Error("expected consume phase to be tracked")
	}
	if stats.PhaseAvg[PhaseSpawn] != 0 {
		t.Errorf("spawn phase = %v, want 0 (never started)", stats.PhaseAvg[PhaseSpawn])
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseInput)
		pc.EndTick()
	}

	if pc.sampleCount != 5 {
		t.Errorf("sampleCount = %d, want 5", pc.sampleCount)
	}
	if pc.writeIndex != 12%5 {
		t.Errorf("writeIndex = %d, want %d", pc.writeIndex, 12%5)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpawn)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseMisses)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseMisses] <= stats.PhasePct[PhaseSpawn] {
		t.Errorf("expected misses (%v%%) > spawn (%v%%)", stats.PhasePct[PhaseMisses], stats.PhasePct[PhaseSpawn])
	}
	csv := stats.ToCSV(600)
	if csv.WindowEnd != 600 || csv.MissesPct != stats.PhasePct[PhaseMisses] {
		t.Errorf("ToCSV = %+v", csv)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseTelemetry.String() != "telemetry" {
		t.Errorf("PhaseTelemetry = %q", PhaseTelemetry.String())
	}
	if Phase(200).String() != "unknown" {
		t.Errorf("Phase(200) = %q", Phase(200).String())
	}
}
