package systems

import (
	"errors"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
)

// ErrNotReady is returned by Activate when no charge is held for the kind.
var ErrNotReady = errors.New("power-up not ready")

// PlayerActor is the part of the player that power-ups act on.
type PlayerActor interface {
	MoveSpeed() float64
	SetMoveSpeed(v float64)
	Jitter()
}

// MagnetField switches live food into seek mode and back.
type MagnetField interface {
	// EnrollAll puts every live food into seek mode and returns the ones it changed.
	EnrollAll() []ecs.Entity
	// Enroll puts one entity into seek mode, reporting whether it changed.
	Enroll(e ecs.Entity) bool
	// Release restores the given entities to their own pattern.
	Release(entities []ecs.Entity)
}

// TempoSource provides the level-dependent music tempo baseline.
type TempoSource interface {
	BaselineTempo() float64
}

// timedKinds is the fixed advance order. Each kind only touches its own
// state so the order does not change outcomes.
var timedKinds = [...]components.PowerUpKind{
	components.PowerUpSpeed,
	components.PowerUpSlow,
	components.PowerUpMagnet,
}

// Effect is one running timed power-up.
type Effect struct {
	Kind      components.PowerUpKind
	Remaining float64
	Affected  []ecs.Entity // Magnet only
}

// PowerUpEngine holds pending charges and running effects.
type PowerUpEngine struct {
	duration   float64
	speedBoost float64
	slowFactor float64
	slowTempo  float64

	charges [components.PowerUpKindCount]bool
	effects [components.PowerUpKindCount]*Effect

	originalSpeed    float64
	globalMultiplier float64

	player PlayerActor
	field  MagnetField
	tempo  TempoSource
	hooks  Hooks
}

// NewPowerUpEngine creates an engine with no charges and no effects.
func NewPowerUpEngine(cfg config.PowerUpsConfig, player PlayerActor, field MagnetField, tempo TempoSource, hooks Hooks) *PowerUpEngine {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &PowerUpEngine{
		duration:         cfg.Duration,
		speedBoost:       cfg.SpeedBoost,
		slowFactor:       cfg.SlowFactor,
		slowTempo:        cfg.SlowTempo,
		globalMultiplier: 1,
		player:           player,
		field:            field,
		tempo:            tempo,
		hooks:            hooks,
	}
}

var activationCues = [components.PowerUpKindCount]SoundCue{
	components.PowerUpSpeed:  CueSpeed,
	components.PowerUpSlow:   CueSlow,
	components.PowerUpMagnet: CueMagnet,
}

// Grant stores a pending charge. A second charge of a held kind is dropped.
// Rotten and None are not storable and are ignored.
func (p *PowerUpEngine) Grant(kind components.PowerUpKind) {
	if !kind.Storable() || p.charges[kind] {
		return
	}
	p.charges[kind] = true
	p.hooks.OnPowerUpStateChanged(kind, p.State(kind))
}

// Activate spends the charge for kind and starts or restarts its effect.
// Without a charge it returns ErrNotReady and changes nothing.
func (p *PowerUpEngine) Activate(kind components.PowerUpKind) error {
	if !kind.Storable() || !p.charges[kind] {
		p.hooks.OnPowerUpNotReady(kind)
		p.hooks.OnSoundCue(CueNotReady)
		return ErrNotReady
	}
	p.charges[kind] = false

	eff := p.effects[kind]
	if eff == nil {
		eff = &Effect{Kind: kind}
		p.effects[kind] = eff
		p.begin(eff, true)
	} else {
		p.begin(eff, false)
	}
	eff.Remaining = p.duration

	p.hooks.OnSoundCue(activationCues[kind])
	p.hooks.OnPowerUpStateChanged(kind, p.State(kind))
	return nil
}

func (p *PowerUpEngine) begin(eff *Effect, fresh bool) {
	switch eff.Kind {
	case components.PowerUpSpeed:
		if fresh {
			p.originalSpeed = p.player.MoveSpeed()
		}
		p.player.SetMoveSpeed(p.originalSpeed * p.speedBoost)
	case components.PowerUpSlow:
		p.globalMultiplier = p.slowFactor
		p.hooks.SetGlobalFoodSpeedMultiplier(p.globalMultiplier)
		p.hooks.SetMusicTempo(p.slowTempo)
	case components.PowerUpMagnet:
		eff.Affected = append(eff.Affected, p.field.EnrollAll()...)
	}
}

func (p *PowerUpEngine) end(eff *Effect) {
	switch eff.Kind {
	case components.PowerUpSpeed:
		p.player.SetMoveSpeed(p.originalSpeed)
	case components.PowerUpSlow:
		p.globalMultiplier = 1
		p.hooks.SetGlobalFoodSpeedMultiplier(1)
		p.hooks.SetMusicTempo(p.tempo.BaselineTempo())
	case components.PowerUpMagnet:
		p.field.Release(eff.Affected)
		eff.Affected = nil
		p.hooks.OnSoundCue(CueMagnetEnd)
	}
}

// Advance counts down every running effect and ends the expired ones.
func (p *PowerUpEngine) Advance(dt float64) {
	for _, kind := range timedKinds {
		eff := p.effects[kind]
		if eff == nil {
			continue
		}
		eff.Remaining -= dt
		if eff.Remaining <= 0 {
			p.effects[kind] = nil
			p.end(eff)
			p.hooks.OnPowerUpStateChanged(kind, p.State(kind))
		}
	}
}

// Track enrolls a freshly spawned entity while Magnet is running, so that
// it is released with the rest when the effect ends.
func (p *PowerUpEngine) Track(e ecs.Entity) {
	eff := p.effects[components.PowerUpMagnet]
	if eff == nil {
		return
	}
	// A pooled handle can come back while the effect runs.
	if p.field.Enroll(e) && !slices.Contains(eff.Affected, e) {
		eff.Affected = append(eff.Affected, e)
	}
}

// ApplyRotten runs the jitter penalty. Charges are never touched.
func (p *PowerUpEngine) ApplyRotten() {
	p.player.Jitter()
	p.hooks.OnSoundCue(CueSick)
}

// Reset drops all charges and effects without running deactivation actions.
func (p *PowerUpEngine) Reset() {
	for _, kind := range timedKinds {
		changed := p.charges[kind] || p.effects[kind] != nil
		p.charges[kind] = false
		p.effects[kind] = nil
		if changed {
			p.hooks.OnPowerUpStateChanged(kind, PowerUpStateNone)
		}
	}
	p.globalMultiplier = 1
	p.originalSpeed = 0
}

// State reports the presentation state of kind. Active wins over ready.
func (p *PowerUpEngine) State(kind components.PowerUpKind) PowerUpState {
	if int(kind) >= len(p.effects) {
		return PowerUpStateNone
	}
	if p.effects[kind] != nil {
		return PowerUpStateActive
	}
	if p.charges[kind] {
		return PowerUpStateReady
	}
	return PowerUpStateNone
}

// Ready reports whether a charge is held for kind.
func (p *PowerUpEngine) Ready(kind components.PowerUpKind) bool {
	return int(kind) < len(p.charges) && p.charges[kind]
}

// Active reports whether kind has a running effect.
func (p *PowerUpEngine) Active(kind components.PowerUpKind) bool {
	return int(kind) < len(p.effects) && p.effects[kind] != nil
}

// Remaining returns the seconds left on kind's effect, or 0.
func (p *PowerUpEngine) Remaining(kind components.PowerUpKind) float64 {
	if !p.Active(kind) {
		return 0
	}
	return p.effects[kind].Remaining
}

// Affected returns the entities enrolled by the running Magnet effect.
func (p *PowerUpEngine) Affected() []ecs.Entity {
	if eff := p.effects[components.PowerUpMagnet]; eff != nil {
		return eff.Affected
	}
	return nil
}

// GlobalMultiplier is the food speed factor contributed by Slow.
func (p *PowerUpEngine) GlobalMultiplier() float64 {
	return p.globalMultiplier
}
