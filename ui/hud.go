package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/game"
	"github.com/pthm-cable/munch/systems"
	"github.com/pthm-cable/munch/telemetry"
)

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    280,
	}
}

var slotKeys = [components.PowerUpKindCount]string{
	components.PowerUpSpeed:  "1",
	components.PowerUpSlow:   "2",
	components.PowerUpMagnet: "3",
}

// Draw renders the score panel, meters and power-up tray.
func (h *HUD) Draw(snap *game.Snapshot, p *Presenter, screenWidth, screenHeight int32) {
	r := h.renderer
	pad := r.Theme.Padding
	x := pad

	r.DrawPanel(x, pad, h.width, 110)
	y := pad + pad

	rl.DrawText(fmt.Sprintf("%d", snap.Score), x+pad, y, 24, rl.White)
	rl.DrawText(fmt.Sprintf("Lv %d  x%.1f", snap.Level, snap.Multiplier), x+pad+140, y+6, 14, r.Theme.SectionHeader)
	y += 30

	label := snap.AngerLabel
	if label == "" {
		label = "full"
	}
	y = r.DrawBar(x+pad, y, "Anger", float32(snap.AngerDisplayed), h.width-pad*2, snap.AngerColor, label)
	y = r.DrawBar(x+pad, y, "Growth", float32(snap.GrowthFraction), h.width-pad*2, r.Theme.GrowthFill, "")

	foodSpeed, _, tempo := p.Multipliers()
	r.DrawLabelValue(x+pad, y, "Tempo", fmt.Sprintf("%.2f  food x%.2f", tempo, foodSpeed))

	h.drawTray(snap, p, screenWidth)

	if snap.Paused {
		drawCentered("PAUSED", screenWidth/2, screenHeight/2-20, 32, rl.Yellow)
	}
	if banner, level := p.LevelBanner(); banner > 0 && snap.State != game.StateGameOver {
		drawCentered(fmt.Sprintf("LEVEL %d", level), screenWidth/2, screenHeight/4, 40, rl.Fade(rl.Gold, float32(banner)))
	}
}

func (h *HUD) drawTray(snap *game.Snapshot, p *Presenter, screenWidth int32) {
	r := h.renderer
	const size = int32(44)
	gap := r.Theme.Padding
	x := screenWidth - (size+gap)*3
	y := r.Theme.Padding

	for kind := components.PowerUpSpeed; kind <= components.PowerUpMagnet; kind++ {
		st := snap.PowerUps[kind]
		col := r.Theme.DimColor
		frac := float32(1)
		switch st.State {
		case systems.PowerUpStateReady:
			col = r.Theme.ReadyColor
		case systems.PowerUpStateActive:
			col = r.Theme.ActiveColor
			if st.Duration > 0 {
				frac = float32(st.Remaining / st.Duration)
			}
		}
		if f := p.NotReadyFlash(kind); f > 0 {
			col = lerpColor(col, rl.Red, float32(f))
		}
		r.DrawSlot(x, y, size, slotKeys[kind], kind.String(), col, frac)
		x += size + gap
	}
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*clampUnit(t)) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// DrawFeed renders the event feed in the bottom-left corner.
func (h *HUD) DrawFeed(p *Presenter, screenHeight int32) {
	feed := p.Feed()
	y := screenHeight - 30 - int32(len(feed))*h.renderer.Theme.LineHeight
	for _, e := range feed {
		alpha := float32(1 - e.Age/feedLifetime)
		rl.DrawText(e.Text, h.renderer.Theme.Padding, y, h.renderer.Theme.FontSize, rl.Fade(rl.LightGray, alpha))
		y += h.renderer.Theme.LineHeight
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func drawCentered(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (max %s)  FPS: %.0f",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond),
		stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for i, avg := range stats.PhaseAvg {
		pct := stats.PhasePct[i]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %6s %5.1f%%", telemetry.Phase(i), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
