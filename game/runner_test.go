package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/systems"
)

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return len(strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestRunnerWritesOutput(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	r, err := NewRunner(cfg, Options{Seed: 3, OutputDir: dir, AutoRestart: true})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	window := int(r.collector.WindowDurationTicks())
	for range window * 5 {
		r.StepAuto()
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := countLines(t, filepath.Join(dir, "telemetry.csv")); got != 6 {
		t.Errorf("telemetry.csv lines = %d, want 6", got)
	}
	if got := countLines(t, filepath.Join(dir, "perf.csv")); got != 6 {
		t.Errorf("perf.csv lines = %d, want 6", got)
	}
	for _, name := range []string{"config.yaml", "hall_of_fame.json", "sessions.csv", "highlights.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRunnerIsDeterministic(t *testing.T) {
	run := func() Snapshot {
		r, err := NewRunner(config.Default(), Options{Seed: 11})
		if err != nil {
			t.Fatalf("NewRunner: %v", err)
		}
		defer r.Close()
		for range 1200 {
			r.StepAuto()
		}
		snap := r.Session().Snapshot()
		snap.Foods = append([]systems.FoodView(nil), snap.Foods...)
		return snap
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Anger != b.Anger || a.Player != b.Player {
		t.Errorf("runs diverged: score %d/%d anger %v/%v", a.Score, b.Score, a.Anger, b.Anger)
	}
	if len(a.Foods) != len(b.Foods) {
		t.Fatalf("live foods %d/%d", len(a.Foods), len(b.Foods))
	}
	for i := range a.Foods {
		if a.Foods[i].Pos != b.Foods[i].Pos {
			t.Errorf("food %d at %+v vs %+v", i, a.Foods[i].Pos, b.Foods[i].Pos)
		}
	}
}

func TestRunnerAutopilotScores(t *testing.T) {
	r, err := NewRunner(config.Default(), Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	for range 3600 {
		r.StepAuto()
	}
	if r.Current().Eaten == 0 && len(r.Finished()) == 0 {
		t.Error("autopilot ate nothing in a minute of play")
	}
}

// ---------- batch ----------

func TestRunBatch(t *testing.T) {
	cfg := config.Default()
	cfg.Anger.MissIncrement = 1

	seeds := []int64{1, 2, 3}
	results, err := RunBatch(context.Background(), cfg, seeds, 60*600, 2)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != len(seeds) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(seeds))
	}
	for i, res := range results {
		if res.Seed != seeds[i] {
			t.Errorf("results[%d].Seed = %d, want %d", i, res.Seed, seeds[i])
		}
		if !res.Finished {
			t.Errorf("seed %d: game did not finish", res.Seed)
		}
		if res.Summary.Missed < 1 {
			t.Errorf("seed %d: Missed = %d, want >= 1", res.Seed, res.Summary.Missed)
		}
	}
	if cfg.Anger.MissIncrement != 1 {
		t.Error("RunBatch modified the caller's config")
	}
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatch(ctx, config.Default(), []int64{1, 2}, 1000, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
