package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/munch/config"
)

// Player is the vertically moving eater.
type Player struct {
	pos        r2.Vec
	minY, maxY float64

	baseSpeed float64
	speed     float64

	mouthDuration float64
	mouthTimer    float64

	jitterDuration  float64
	jitterFrequency float64
	jitterAmplitude float64
	jitterElapsed   float64
	jittering       bool
	anchor          r2.Vec
}

// NewPlayer creates a player centered in its movement range.
func NewPlayer(cfg *config.Config) *Player {
	p := &Player{
		minY:            cfg.World.PlayerMinY,
		maxY:            cfg.World.PlayerMaxY,
		baseSpeed:       cfg.Player.MoveSpeed,
		mouthDuration:   cfg.Player.MouthOpenDuration,
		jitterDuration:  cfg.Player.JitterDuration,
		jitterFrequency: cfg.Player.JitterFrequency,
		jitterAmplitude: cfg.Player.JitterAmplitude,
	}
	p.pos.X = cfg.World.PlayerX
	p.Reset()
	return p
}

// Reset restores the construction-time state.
func (p *Player) Reset() {
	p.pos.Y = (p.minY + p.maxY) / 2
	p.speed = p.baseSpeed
	p.mouthTimer = 0
	p.jittering = false
	p.jitterElapsed = 0
}

// Update applies one tick of input. axis is clamped to [-1,1].
func (p *Player) Update(dt, axis float64, eat bool) {
	if eat {
		p.mouthTimer = p.mouthDuration
	} else if p.mouthTimer > 0 {
		p.mouthTimer -= dt
	}

	if p.jittering {
		p.jitterElapsed += dt
		if p.jitterElapsed >= p.jitterDuration {
			p.jittering = false
			p.pos = p.anchor
			return
		}
		p.pos.X = p.anchor.X + math.Sin(p.jitterElapsed*p.jitterFrequency)*p.jitterAmplitude
		p.pos.Y = p.anchor.Y
		return
	}

	if math.IsNaN(axis) {
		axis = 0
	}
	axis = clamp(axis, -1, 1)
	p.pos.Y = clamp(p.pos.Y+axis*p.speed*dt, p.minY, p.maxY)
}

// Jitter starts the rotten-food shake. Movement is frozen until it ends,
// then the player is put back where the shake began.
func (p *Player) Jitter() {
	if !p.jittering {
		p.anchor = p.pos
	}
	p.jittering = true
	p.jitterElapsed = 0
}

// MoveSpeed returns the current vertical speed.
func (p *Player) MoveSpeed() float64 { return p.speed }

// SetMoveSpeed overrides the vertical speed.
func (p *Player) SetMoveSpeed(v float64) { p.speed = v }

// BaseSpeed returns the configured speed.
func (p *Player) BaseSpeed() float64 { return p.baseSpeed }

// Position returns the mouth position.
func (p *Player) Position() r2.Vec { return p.pos }

// MouthOpen reports whether an eat trigger is still in effect.
func (p *Player) MouthOpen() bool { return p.mouthTimer > 0 }

// Jittering reports whether the rotten shake is running.
func (p *Player) Jittering() bool { return p.jittering }
