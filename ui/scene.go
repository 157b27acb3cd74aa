package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/munch/camera"
	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/game"
)

const (
	foodRadius   = 0.45 // world units
	playerRadius = 1.2
)

var (
	backgroundColor = rl.Color{R: 18, G: 22, B: 28, A: 255}
	laneColor       = rl.Color{R: 50, G: 60, B: 72, A: 255}
	missLineColor   = rl.Color{R: 140, G: 50, B: 50, A: 200}
	reachColor      = rl.Color{R: 120, G: 220, B: 120, A: 160}
	playerColor     = rl.Color{R: 240, G: 170, B: 200, A: 255}
)

// Scene draws the playfield through a camera.
type Scene struct {
	cfg *config.Config
	cam *camera.Camera
}

// NewScene fits the camera to the playfield.
func NewScene(cfg *config.Config, cam *camera.Camera) *Scene {
	w := cfg.World
	cam.X = (w.SpawnX + w.MissX) / 2
	cam.Y = (w.LaneMinY + w.LaneMaxY) / 2
	cam.Fit(math.Abs(w.SpawnX-w.MissX)+2, w.LaneMaxY-w.LaneMinY+2)
	return &Scene{cfg: cfg, cam: cam}
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Camera { return s.cam }

// Draw renders the world for one frame.
func (s *Scene) Draw(snap *game.Snapshot, overlays *OverlayRegistry) {
	rl.ClearBackground(backgroundColor)

	if overlays.IsEnabled(OverlayLanes) {
		s.drawLanes()
	}

	for i := range snap.Foods {
		f := &snap.Foods[i]
		if !s.cam.IsVisible(f.Pos.X, f.Pos.Y, foodRadius) {
			continue
		}
		sx, sy := s.cam.WorldToScreen(f.Pos.X, f.Pos.Y)
		r := s.cam.Length(foodRadius)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, FoodColor(f.Type))
		if ring := PowerUpColor(f.PowerUp); ring.A > 0 {
			rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, r+2, ring)
		}
		if f.Magnet {
			px, py := s.cam.WorldToScreen(snap.Player.X, snap.Player.Y)
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: px, Y: py}, rl.Fade(PowerUpColor(components.PowerUpMagnet), 0.3))
		}

		switch {
		case overlays.IsEnabled(OverlayHeadings):
			hx := sx + float32(math.Cos(f.Facing))*r*2
			hy := sy - float32(math.Sin(f.Facing))*r*2
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: hx, Y: hy}, rl.White)
		case overlays.IsEnabled(OverlayFoodLabels):
			label := fmt.Sprintf("%d %s %s", f.Entity.ID(), s.cfg.Food(f.Type).Name, f.Pattern)
			rl.DrawText(label, int32(sx+r+2), int32(sy-6), 10, rl.LightGray)
		}
	}

	s.drawPlayer(snap)

	if overlays.IsEnabled(OverlayReachBox) {
		w := s.cfg.World
		x0, y0 := s.cam.WorldToScreen(snap.Player.X-w.MouthReachX, snap.Player.Y+w.MouthReachY)
		x1, y1 := s.cam.WorldToScreen(snap.Player.X+w.MouthReachX, snap.Player.Y-w.MouthReachY)
		rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, reachColor)
	}
}

func (s *Scene) drawLanes() {
	w := s.cfg.World
	for _, y := range []float64{w.LaneMinY, w.LaneMaxY} {
		x0, sy := s.cam.WorldToScreen(w.MissX, y)
		x1, _ := s.cam.WorldToScreen(w.SpawnX, y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: sy}, rl.Vector2{X: x1, Y: sy}, laneColor)
	}
	mx, top := s.cam.WorldToScreen(w.MissX, w.LaneMaxY)
	_, bottom := s.cam.WorldToScreen(w.MissX, w.LaneMinY)
	rl.DrawLineV(rl.Vector2{X: mx, Y: top}, rl.Vector2{X: mx, Y: bottom}, missLineColor)
}

func (s *Scene) drawPlayer(snap *game.Snapshot) {
	sx, sy := s.cam.WorldToScreen(snap.Player.X, snap.Player.Y)
	r := s.cam.Length(playerRadius)
	body := playerColor
	if snap.Jittering {
		body = rl.Color{R: 150, G: 190, B: 90, A: 255}
	}
	center := rl.Vector2{X: sx, Y: sy}
	rl.DrawCircleV(center, r, body)

	// Mouth faces the incoming food, toward +X.
	open := float32(10)
	if snap.MouthOpen {
		open = 40
	}
	rl.DrawCircleSector(center, r, -open, open, 12, backgroundColor)
}
