package game

import (
	"log/slog"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/systems"
	"github.com/pthm-cable/munch/telemetry"
)

// hallOfFameSize is how many finished games the hall of fame keeps.
const hallOfFameSize = 10

// Options configures a Runner.
type Options struct {
	Seed        int64
	LogStats    bool   // log window and perf stats via slog
	OutputDir   string // empty disables CSV output
	AutoRestart bool   // start a new game once the rank reveal finishes

	// Hooks receives every notification alongside the telemetry collectors.
	Hooks systems.Hooks
}

// Runner drives a Session at the fixed timestep and feeds telemetry.
type Runner struct {
	cfg     *config.Config
	session *Session
	pilot   *Autopilot

	tick        int32
	logStats    bool
	autoRestart bool

	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	highlights *telemetry.HighlightDetector
	tracker    *telemetry.SessionTracker
	hallOfFame *telemetry.HallOfFame
	output     *telemetry.OutputManager

	finished []telemetry.SessionSummary
}

// NewRunner builds a session with telemetry attached.
func NewRunner(cfg *config.Config, opts Options) (*Runner, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	r := &Runner{
		cfg:         cfg,
		logStats:    opts.LogStats,
		autoRestart: opts.AutoRestart,
		collector:   telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		highlights:  telemetry.NewHighlightDetector(cfg.Telemetry.HighlightHistorySize),
		tracker:     telemetry.NewSessionTracker(opts.Seed),
		hallOfFame:  telemetry.NewHallOfFame(hallOfFameSize),
		output:      output,
	}

	hooks := systems.MultiHooks{r.collector.Hooks(), r.tracker}
	if opts.Hooks != nil {
		hooks = append(hooks, opts.Hooks)
	}
	r.session = New(cfg, opts.Seed, hooks)
	r.session.SetPhaseTimer(r.perf)
	r.pilot = NewAutopilot(cfg)

	if output != nil {
		slog.Info("output enabled", "dir", output.Dir())
	}
	return r, nil
}

// Step runs one fixed tick with the given input.
func (r *Runner) Step(in Input) {
	r.perf.StartTick()
	dt := r.cfg.Physics.DT

	r.session.Tick(dt, in)
	r.tick++

	r.perf.StartPhase(telemetry.PhaseTelemetry)
	if r.session.State() != StateGameOver && !r.session.Paused() {
		r.tracker.Advance(dt)
	}
	r.collector.SampleAnger(r.session.anger.Value())
	r.flushTelemetry()
	r.collectFinished()

	if r.autoRestart && r.session.State() == StateGameOver && r.session.RevealDone() {
		r.session.Restart()
	}
	r.perf.EndTick()
}

// StepAuto runs one tick with input from the built-in autopilot.
func (r *Runner) StepAuto() {
	snap := r.session.Snapshot()
	r.Step(r.pilot.Decide(&snap))
}

// RecordFrame forwards frame timing in graphical mode.
func (r *Runner) RecordFrame() {
	r.perf.RecordFrame()
}

// flushTelemetry closes the stats window when due and handles highlights.
func (r *Runner) flushTelemetry() {
	if !r.collector.ShouldFlush(r.tick) {
		return
	}

	pool := r.session.pool
	stats := r.collector.Flush(r.tick, telemetry.GameState{
		Score:         r.session.progression.Score(),
		Level:         r.session.progression.Level(),
		LiveFoods:     pool.ActiveCount(),
		PoolExhausted: pool.Exhausted(),
	})
	pool.ResetCounters()
	perfStats := r.perf.Stats()

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := r.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, h := range r.highlights.Check(stats) {
		if r.logStats {
			h.LogHighlight()
		}
		if err := r.output.WriteHighlight(h); err != nil {
			slog.Error("failed to write highlight", "error", err)
		}
		if dir := r.output.SnapshotDir(); dir != "" {
			r.saveSnapshot(&h, dir)
		}
	}
}

// collectFinished records games that ended this tick.
func (r *Runner) collectFinished() {
	for _, s := range r.tracker.TakeFinished() {
		slog.Info("session finished",
			"session", s.Session,
			"score", s.Score,
			"rank", s.Rank,
			"level", s.Level,
			"duration", s.DurationSec,
		)
		if err := r.output.WriteSession(s); err != nil {
			slog.Error("failed to write session", "error", err)
		}
		r.hallOfFame.Consider(s)
		r.finished = append(r.finished, s)
	}
}

// saveSnapshot writes the current state next to a highlight.
func (r *Runner) saveSnapshot(h *telemetry.Highlight, dir string) {
	path, err := telemetry.SaveSnapshot(r.createSnapshot(h), dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", r.tick)
}

// createSnapshot builds a telemetry snapshot from the current state.
func (r *Runner) createSnapshot(h *telemetry.Highlight) *telemetry.Snapshot {
	view := r.session.Snapshot()
	snapshot := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    r.session.Seed(),
		Tick:       r.tick,
		Score:      view.Score,
		Level:      view.Level,
		Multiplier: view.Multiplier,
		Growth:     view.Growth,
		Anger:      view.Anger,
		PlayerX:    view.Player.X,
		PlayerY:    view.Player.Y,
		Highlight:  h,
	}

	for _, f := range view.Foods {
		state := telemetry.FoodState{
			ID:      f.Entity.ID(),
			Type:    r.cfg.Food(f.Type).Name,
			X:       f.Pos.X,
			Y:       f.Pos.Y,
			Facing:  f.Facing,
			Pattern: f.Pattern.String(),
			Magnet:  f.Magnet,
		}
		if f.PowerUp != components.PowerUpNone {
			state.PowerUp = f.PowerUp.String()
		}
		snapshot.Foods = append(snapshot.Foods, state)
	}
	return snapshot
}

// Session returns the driven session.
func (r *Runner) Session() *Session { return r.session }

// Tick returns the number of ticks run.
func (r *Runner) Tick() int32 { return r.tick }

// Finished returns the summaries of every game that ended so far.
func (r *Runner) Finished() []telemetry.SessionSummary { return r.finished }

// Current returns the running game's statistics.
func (r *Runner) Current() telemetry.SessionSummary { return r.tracker.Current() }

// Perf returns the tick timing collector.
func (r *Runner) Perf() *telemetry.PerfCollector { return r.perf }

// HallOfFame returns the best finished games.
func (r *Runner) HallOfFame() *telemetry.HallOfFame { return r.hallOfFame }

// Close writes the hall of fame and closes output files.
func (r *Runner) Close() error {
	if err := r.output.WriteHallOfFame(r.hallOfFame); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	return r.output.Close()
}
