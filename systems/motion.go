package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/munch/components"
)

// MotionParams is pushed into food motion every tick. Effective speed is
// recomputed from it on each step, so changes apply immediately.
type MotionParams struct {
	LevelScale       float64 // per-level spawn speed scale
	GlobalMultiplier float64 // Slow effect factor
	Player           r2.Vec  // magnet pursuit target
	WaveFrequency    float64
}

// DefaultMotionParams returns neutral scaling.
func DefaultMotionParams() MotionParams {
	return MotionParams{LevelScale: 1, GlobalMultiplier: 1, WaveFrequency: 3}
}

// SpeedFactor is the combined scale applied to every base speed.
func (p MotionParams) SpeedFactor() float64 {
	return p.LevelScale * p.GlobalMultiplier
}

// LeftwardDirection returns the leftward unit vector rotated by heading
// radians (positive tilts upward).
func LeftwardDirection(heading float64) r2.Vec {
	return r2.Vec{X: -math.Cos(heading), Y: math.Sin(heading)}
}

// InitMotion prepares motion state for a freshly spawned entity at pos.
func InitMotion(m *components.Motion, pos components.Position, waveFrequency float64) {
	m.Magnet = false
	m.Phase = 0
	if m.Pattern == components.PatternWave && waveFrequency != 0 {
		// Seed the phase so the first sample lands on the spawn height.
		s := clamp(2*inverseLerp(m.LaneMin, m.LaneMax, pos.Y)-1, -1, 1)
		m.Phase = math.Asin(s) / waveFrequency
	}
	m.Facing = math.Atan2(m.Direction.Y, m.Direction.X)
}

// StepMotion advances one entity by dt.
func StepMotion(pos *components.Position, m *components.Motion, dt float64, p MotionParams) {
	speed := m.BaseSpeed * p.SpeedFactor()

	if m.Magnet {
		stepSeek(pos, m, speed*dt, p.Player)
		return
	}

	switch m.Pattern {
	case components.PatternWave:
		stepWave(pos, m, dt, speed, p)
	case components.PatternBounce:
		pos.Set(r2.Add(pos.Vec(), r2.Scale(speed*dt, m.Direction)))
		if (pos.Y > m.LaneMax && m.Direction.Y > 0) || (pos.Y < m.LaneMin && m.Direction.Y < 0) {
			m.Direction.Y = -m.Direction.Y
		}
		m.Facing = math.Atan2(m.Direction.Y, m.Direction.X)
	default:
		pos.Set(r2.Add(pos.Vec(), r2.Scale(speed*dt, m.Direction)))
	}
}

func stepWave(pos *components.Position, m *components.Motion, dt, speed float64, p MotionParams) {
	rate := 0.0
	if m.BaseSpeed != 0 {
		rate = speed / m.BaseSpeed
	}
	m.Phase += dt * rate

	arg := m.Phase * p.WaveFrequency
	pos.X += m.Direction.X * speed * dt
	pos.Y = lerp(m.LaneMin, m.LaneMax, (math.Sin(arg)+1)/2)

	// Facing follows the tangent of the curve: d/dt of x and y.
	vx := m.Direction.X * speed
	vy := (m.LaneMax - m.LaneMin) / 2 * math.Cos(arg) * p.WaveFrequency * rate
	if vx != 0 || vy != 0 {
		m.Facing = math.Atan2(vy, vx)
	}
}

func stepSeek(pos *components.Position, m *components.Motion, step float64, target r2.Vec) {
	to := r2.Sub(target, pos.Vec())
	dist := r2.Norm(to)
	if dist == 0 {
		return
	}
	m.Facing = math.Atan2(to.Y, to.X)
	if dist <= step {
		pos.Set(target)
		return
	}
	pos.Set(r2.Add(pos.Vec(), r2.Scale(step, r2.Unit(to))))
}
