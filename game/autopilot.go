package game

import (
	"math"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/systems"
)

// Autopilot plays the game from snapshots. It chases the food that will
// reach the mouth line first, opens the mouth when that food is in reach,
// and spends ready power-ups when the screen gets crowded.
type Autopilot struct {
	reachX, reachY float64
	leadX          float64 // how far ahead of the mouth a food is still worth chasing
	deadZone       float64
	crowd          int
}

// NewAutopilot derives reach distances from the world config.
func NewAutopilot(cfg *config.Config) *Autopilot {
	return &Autopilot{
		reachX:   cfg.World.MouthReachX,
		reachY:   cfg.World.MouthReachY,
		leadX:    cfg.World.SpawnX - cfg.World.PlayerX,
		deadZone: cfg.World.MouthReachY * 0.25,
		crowd:    4,
	}
}

// Decide returns the input for the next tick.
func (a *Autopilot) Decide(snap *Snapshot) Input {
	var in Input
	if snap.State == StateGameOver || snap.Paused {
		return in
	}

	px, py := snap.Player.X, snap.Player.Y
	target := -1
	bestX := math.Inf(1)
	rottenInReach := false
	for i, f := range snap.Foods {
		dx := f.Pos.X - px
		inReach := math.Abs(dx) <= a.reachX && math.Abs(f.Pos.Y-py) <= a.reachY
		if f.PowerUp == components.PowerUpRotten {
			rottenInReach = rottenInReach || inReach
			continue
		}
		if dx < -a.reachX || dx > a.leadX {
			continue
		}
		if f.Pos.X < bestX {
			bestX = f.Pos.X
			target = i
		}
	}

	if target >= 0 {
		f := snap.Foods[target]
		dy := f.Pos.Y - py
		if math.Abs(dy) > a.deadZone {
			in.Axis = math.Copysign(1, dy)
		}
		inReach := math.Abs(f.Pos.X-px) <= a.reachX*2 && math.Abs(dy) <= a.reachY
		in.Eat = inReach && !rottenInReach
	}

	if len(snap.Foods) >= a.crowd {
		switch {
		case ready(snap, components.PowerUpMagnet):
			in.ActivateMagnet = true
		case ready(snap, components.PowerUpSlow):
			in.ActivateSlow = true
		case ready(snap, components.PowerUpSpeed):
			in.ActivateSpeed = true
		}
	}
	return in
}

func ready(snap *Snapshot, kind components.PowerUpKind) bool {
	return snap.PowerUps[kind].State == systems.PowerUpStateReady
}
