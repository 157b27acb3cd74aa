// Package components defines ECS components for food entities.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Pattern selects the trajectory a food entity follows.
type Pattern uint8

const (
	PatternStraight Pattern = iota
	PatternBounce
	PatternWave
)

// PowerUpKind is the effect a food grants when eaten.
type PowerUpKind uint8

const (
	PowerUpNone PowerUpKind = iota
	PowerUpSpeed
	PowerUpSlow
	PowerUpMagnet
	PowerUpRotten

	PowerUpKindCount // must stay last
)

// PoolState is the pool partition an entity currently belongs to.
type PoolState uint8

const (
	PoolFree PoolState = iota
	PoolActive
)

// Motion holds per-entity kinematic state.
type Motion struct {
	Pattern   Pattern
	Direction r2.Vec  // unit vector; Y flips on bounce
	BaseSpeed float64 // per-type spawn speed before any scaling
	Phase     float64 // wave phase accumulator, advanced by dt * speed/baseSpeed
	Facing    float64 // radians, derived from instantaneous velocity
	LaneMin   float64
	LaneMax   float64

	// Magnet overrides Pattern while set. Pattern itself is left untouched
	// so clearing Magnet restores the original trajectory.
	Magnet bool
}

// Food holds gameplay data and pool bookkeeping for a food entity.
type Food struct {
	Type       uint8 // index into config.Foods
	PowerUp    PowerUpKind
	BasePoints int
	State      PoolState
	Poolable   bool // false for overflow instances created on exhaustion
}

// Active reports whether the entity is currently in play.
func (f *Food) Active() bool {
	return f.State == PoolActive
}
