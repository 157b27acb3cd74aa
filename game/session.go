package game

import (
	"errors"
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/systems"
	"github.com/pthm-cable/munch/telemetry"
)

// State is the session's top-level phase.
type State uint8

const (
	StatePlaying State = iota
	StateLevelingUp
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateLevelingUp:
		return "leveling_up"
	case StateGameOver:
		return "game_over"
	default:
		return "playing"
	}
}

// levelFlashDuration is how long the session reports LevelingUp after a level-up.
const levelFlashDuration = 1.0

// Input is one tick of normalized player intent.
type Input struct {
	Axis           float64 // vertical, -1 (down) to 1 (up)
	Eat            bool
	ActivateSpeed  bool
	ActivateSlow   bool
	ActivateMagnet bool
}

// PhaseTimer receives phase boundaries during Tick.
type PhaseTimer interface {
	StartPhase(phase telemetry.Phase)
}

// Session owns one of each engine plus the food pool and runs the game
// one fixed tick at a time.
type Session struct {
	cfg   *config.Config
	seed  int64
	hooks systems.Hooks
	timer PhaseTimer

	player      *systems.Player
	anger       *systems.AngerTracker
	powerups    *systems.PowerUpEngine
	progression *systems.ProgressionEngine
	pool        *systems.FoodPool
	scheduler   *systems.Scheduler
	reveal      *systems.RankReveal

	state     State
	flash     float64
	paused    bool
	finalRank int
	gameTime  float64

	due     []uint8
	foodBuf []systems.FoodView
}

// New creates a session. hooks may be nil.
func New(cfg *config.Config, seed int64, hooks systems.Hooks) *Session {
	if hooks == nil {
		hooks = systems.NopHooks{}
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Session{
		cfg:   cfg,
		seed:  seed,
		hooks: hooks,
	}
	s.player = systems.NewPlayer(cfg)
	s.pool = systems.NewFoodPool(cfg, rng, hooks)
	s.scheduler = systems.NewScheduler(cfg.Derived.Foods)
	s.anger = systems.NewAngerTracker(cfg.Anger.FillDuration, hooks)
	s.progression = systems.NewProgressionEngine(cfg.Progression, s.anger, hooks)
	s.powerups = systems.NewPowerUpEngine(cfg.PowerUps, s.player, s.pool, s.progression, hooks)
	s.progression.HoldTempo = func() bool {
		return s.powerups.Active(components.PowerUpSlow)
	}
	s.reveal = systems.NewRankReveal(cfg.Rank, hooks)
	return s
}

// SetPhaseTimer attaches a timer that is told when each tick phase starts.
func (s *Session) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

func (s *Session) phase(p telemetry.Phase) {
	if s.timer != nil {
		s.timer.StartPhase(p)
	}
}

// Tick advances the session by dt seconds. While paused, gameplay time
// stands still but power-up timers and the rank reveal keep running.
func (s *Session) Tick(dt float64, in Input) {
	gdt := dt
	if s.paused {
		gdt = 0
	}
	live := s.state != StateGameOver

	s.phase(telemetry.PhaseInput)
	if live && !s.paused {
		s.applyInput(gdt, in)
	}

	s.phase(telemetry.PhasePowerUps)
	s.powerups.Advance(dt)

	s.phase(telemetry.PhaseMotion)
	s.pool.Step(gdt, s.motionParams())

	s.phase(telemetry.PhaseSpawn)
	if live && gdt > 0 {
		s.due = s.scheduler.Due(gdt, s.due[:0])
		for _, foodType := range s.due {
			if e, ok := s.pool.Spawn(foodType); ok {
				s.powerups.Track(e)
			}
		}
	}

	s.phase(telemetry.PhaseConsume)
	if live && !s.paused {
		mouth := s.player.Position()
		open := s.player.MouthOpen()
		for _, e := range s.pool.Within(mouth.X, mouth.Y, s.cfg.World.MouthReachX, s.cfg.World.MouthReachY) {
			s.OnFoodReached(e, open)
		}
	}

	s.phase(telemetry.PhaseMisses)
	for _, e := range s.pool.Crossed(s.cfg.World.MissX) {
		s.handleMiss(e)
	}

	// The worst tier shows at game over; later tiers count from the next tick.
	s.reveal.Advance(dt)
	if s.anger.Tripped() && s.state != StateGameOver {
		s.enterGameOver()
	}

	if s.state == StateLevelingUp {
		s.flash -= gdt
		if s.flash <= 0 {
			s.flash = 0
			s.state = StatePlaying
		}
	}
	s.anger.Advance(gdt)
	s.gameTime += gdt
}

func (s *Session) applyInput(dt float64, in Input) {
	for _, req := range [...]struct {
		want bool
		kind components.PowerUpKind
	}{
		{in.ActivateSpeed, components.PowerUpSpeed},
		{in.ActivateSlow, components.PowerUpSlow},
		{in.ActivateMagnet, components.PowerUpMagnet},
	} {
		if !req.want {
			continue
		}
		if err := s.powerups.Activate(req.kind); errors.Is(err, systems.ErrNotReady) {
			slog.Debug("activation refused", "kind", req.kind.String())
		}
	}
	s.player.Update(dt, in.Axis, in.Eat)
}

func (s *Session) motionParams() systems.MotionParams {
	return systems.MotionParams{
		LevelScale:       s.progression.SpeedScale(),
		GlobalMultiplier: s.powerups.GlobalMultiplier(),
		Player:           s.player.Position(),
		WaveFrequency:    s.cfg.Motion.WaveFrequency,
	}
}

// OnFoodReached reports that a food touched the mouth. A closed mouth, a
// finished game or an entity that is no longer live leaves everything as is.
func (s *Session) OnFoodReached(e ecs.Entity, mouthOpen bool) systems.Outcome {
	if s.state == StateGameOver || !mouthOpen {
		return systems.OutcomeIgnored
	}
	outcome, food := s.pool.Consume(e)
	if outcome != systems.OutcomeConsumed {
		return outcome
	}

	if food.PowerUp != components.PowerUpRotten {
		s.hooks.OnSoundCue(systems.CueEat)
	}
	if _, leveled := s.progression.AddScore(food.BasePoints); leveled {
		s.state = StateLevelingUp
		s.flash = levelFlashDuration
	}

	switch {
	case food.PowerUp == components.PowerUpRotten:
		s.powerups.ApplyRotten()
	case food.PowerUp.Storable():
		s.powerups.Grant(food.PowerUp)
	}
	return outcome
}

// handleMiss returns a food that crossed the trailing boundary. Missing
// rotten food costs nothing.
func (s *Session) handleMiss(e ecs.Entity) {
	outcome, food := s.pool.Miss(e)
	if outcome != systems.OutcomeMissed || food.PowerUp == components.PowerUpRotten {
		return
	}
	s.hooks.OnSoundCue(systems.CueMiss)
	s.anger.Increase(s.cfg.Anger.MissIncrement)
}

func (s *Session) enterGameOver() {
	s.state = StateGameOver
	s.flash = 0
	score := s.progression.Score()
	s.finalRank = systems.RankTier(score, s.cfg.Rank)
	cleared := s.pool.Clear()

	slog.Info("game over",
		"score", score,
		"level", s.progression.Level(),
		"rank", s.finalRank,
		"cleared", cleared,
		"game_time", s.gameTime,
	)

	s.hooks.OnSoundCue(systems.CueGameOver)
	s.hooks.OnGameOver(score, s.finalRank)
	s.reveal.Start(s.finalRank)
}

// Restart puts every component back to its construction state. Running
// effects are dropped without their deactivation actions.
func (s *Session) Restart() {
	s.powerups.Reset()
	s.pool.Clear()
	s.scheduler.Reset()
	s.anger.Reset()
	s.anger.Settle()
	s.progression.Reset()
	s.player.Reset()
	s.reveal.Reset()

	s.state = StatePlaying
	s.flash = 0
	s.paused = false
	s.finalRank = 0
	s.gameTime = 0

	slog.Info("restart", "seed", s.seed)

	s.hooks.SetGlobalFoodSpeedMultiplier(1)
	s.hooks.SetPerLevelSpawnSpeedScale(1)
	s.hooks.SetMusicTempo(s.progression.BaselineTempo())
	s.hooks.OnRestart()
}

// SetPaused stops or resumes gameplay time.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether gameplay time is stopped.
func (s *Session) Paused() bool { return s.paused }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// GameTime returns the gameplay seconds since the last (re)start.
func (s *Session) GameTime() float64 { return s.gameTime }

// RevealDone reports whether the game-over rank sequence has finished.
func (s *Session) RevealDone() bool { return s.reveal.Done() }

// PowerUpStatus is the HUD view of one power-up kind.
type PowerUpStatus struct {
	State     systems.PowerUpState
	Remaining float64
	Duration  float64
}

// Snapshot is a read-only view of the session for presentation.
type Snapshot struct {
	State  State
	Paused bool

	Player    r2.Vec
	MouthOpen bool
	Jittering bool

	Score          int
	Level          int
	Multiplier     float64
	Growth         float64
	GrowthFraction float64
	LevelFlash     float64

	Anger          float64
	AngerDisplayed float64
	AngerSeverity  int
	AngerLabel     string
	AngerColor     color.RGBA

	PowerUps [components.PowerUpKindCount]PowerUpStatus

	// Foods is reused by the next Snapshot call.
	Foods []systems.FoodView

	RankTier  int
	RankShown int
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	s.foodBuf = s.pool.Live(s.foodBuf[:0])
	snap := Snapshot{
		State:          s.state,
		Paused:         s.paused,
		Player:         s.player.Position(),
		MouthOpen:      s.player.MouthOpen(),
		Jittering:      s.player.Jittering(),
		Score:          s.progression.Score(),
		Level:          s.progression.Level(),
		Multiplier:     s.progression.Multiplier(),
		Growth:         s.progression.Growth(),
		GrowthFraction: s.progression.GrowthFraction(),
		LevelFlash:     s.flash,
		Anger:          s.anger.Value(),
		AngerDisplayed: s.anger.Displayed(),
		AngerSeverity:  s.anger.SeverityIndex(),
		AngerLabel:     s.anger.Label(),
		AngerColor:     s.anger.Color(),
		Foods:          s.foodBuf,
		RankTier:       s.finalRank,
		RankShown:      s.reveal.Shown(),
	}
	for kind := components.PowerUpSpeed; kind < components.PowerUpKindCount; kind++ {
		snap.PowerUps[kind] = PowerUpStatus{
			State:     s.powerups.State(kind),
			Remaining: s.powerups.Remaining(kind),
			Duration:  s.cfg.PowerUps.Duration,
		}
	}
	return snap
}
