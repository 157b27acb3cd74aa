package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/munch/game"
	"github.com/pthm-cable/munch/telemetry"
)

// GameOverAction is the player's choice on the game-over panel.
type GameOverAction uint8

const (
	GameOverNone GameOverAction = iota
	GameOverRestart
	GameOverQuit
)

// GameOverPanel shows the final score, the rank reveal and the hall of fame.
type GameOverPanel struct {
	renderer *Renderer
	width    int32
	height   int32
}

// NewGameOverPanel creates the panel.
func NewGameOverPanel() *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		width:    360,
		height:   320,
	}
}

// Draw renders the panel centered on screen and returns the clicked action.
func (g *GameOverPanel) Draw(snap *game.Snapshot, p *Presenter, best []telemetry.SessionSummary, screenWidth, screenHeight int32) GameOverAction {
	r := g.renderer
	pad := r.Theme.Padding
	x := (screenWidth - g.width) / 2
	y := (screenHeight - g.height) / 2
	r.DrawPanel(x, y, g.width, g.height)

	cy := y + pad
	drawCentered("GAME OVER", screenWidth/2, cy, 28, rl.Red)
	cy += 36
	drawCentered(fmt.Sprintf("Score %d", snap.Score), screenWidth/2, cy, 20, rl.White)
	cy += 28

	// One pip per rank step, lit as the reveal reaches it.
	const pip = int32(14)
	total := int32(max(snap.RankTier, snap.RankShown))
	px := screenWidth/2 - total*(pip+4)/2
	for i := int32(0); i < total; i++ {
		col := r.Theme.DimColor
		if i < int32(snap.RankShown) {
			col = rl.Gold
		}
		rl.DrawRectangle(px+i*(pip+4), cy, pip, pip, col)
	}
	cy += pip + 8
	rank, pitch := p.Reveal()
	r.DrawLabelValue(x+pad, cy, "Rank", fmt.Sprintf("%d  (pitch %.2f)", rank, pitch))
	cy += r.Theme.LineHeight + 4

	cy = r.DrawSectionHeader(x+pad, cy, "Best Games")
	for i, s := range best {
		if i >= 5 {
			break
		}
		line := fmt.Sprintf("%d. %6d  lv %-2d rank %d", i+1, s.Score, s.Level, s.Rank)
		rl.DrawText(line, x+pad, cy, r.Theme.FontSize, r.Theme.ValueColor)
		cy += r.Theme.LineHeight
	}

	btnY := float32(y + g.height - 30 - pad)
	if gui.Button(rl.Rectangle{X: float32(x + pad), Y: btnY, Width: 120, Height: 30}, "Restart") {
		return GameOverRestart
	}
	if gui.Button(rl.Rectangle{X: float32(x + g.width - pad - 120), Y: btnY, Width: 120, Height: 30}, "Quit") {
		return GameOverQuit
	}
	return GameOverNone
}
