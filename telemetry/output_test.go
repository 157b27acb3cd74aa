package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/munch/config"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v, want nil, nil", om, err)
	}
	// A nil manager swallows every write.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil: %v", err)
	}
	if err := om.WriteSession(SessionSummary{}); err != nil {
		t.Errorf("WriteSession on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
	if om.Dir() != "" || om.SnapshotDir() != "" {
		t.Error("nil manager reported a directory")
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := range 3 {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 10), Eaten: i}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteHighlight(Highlight{Type: HighlightCleanRun, Tick: 50, Description: "x"}); err != nil {
		t.Fatalf("WriteHighlight: %v", err)
	}
	if err := om.WriteSession(SessionSummary{Session: 1, Score: 900}); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "telemetry.csv"))
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("telemetry header = %q", lines[0])
	}
	if strings.HasPrefix(lines[2], "window_end") {
		t.Error("header repeated in telemetry.csv")
	}

	sessions := readLines(t, filepath.Join(dir, "sessions.csv"))
	if len(sessions) != 2 || !strings.HasPrefix(sessions[0], "session,") {
		t.Errorf("sessions.csv = %q", sessions)
	}
	highlights := readLines(t, filepath.Join(dir, "highlights.csv"))
	if len(highlights) != 2 || !strings.Contains(highlights[1], "clean_run") {
		t.Errorf("highlights.csv = %q", highlights)
	}
	perf := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 2 {
		t.Errorf("perf.csv has %d lines, want 2", len(perf))
	}
}

func TestOutputManagerConfigAndHallOfFame(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	hof := NewHallOfFame(2)
	hof.Consider(SessionSummary{Session: 1, Score: 42})
	if err := om.WriteHallOfFame(hof); err != nil {
		t.Fatalf("WriteHallOfFame: %v", err)
	}
	loaded, err := LoadHallOfFameFromFile(filepath.Join(dir, "hall_of_fame.json"))
	if err != nil {
		t.Fatalf("LoadHallOfFameFromFile: %v", err)
	}
	if loaded.TopScore() != 42 {
		t.Errorf("TopScore() = %d, want 42", loaded.TopScore())
	}
	if om.SnapshotDir() != filepath.Join(dir, "snapshots") {
		t.Errorf("SnapshotDir() = %q", om.SnapshotDir())
	}
}
