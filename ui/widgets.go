package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for [0, 1] values with an optional caption
// after the bar. A zero fill color uses the theme default.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32, fill rl.Color, caption string) int32 {
	value = clampUnit(value)
	if fill.A == 0 {
		fill = r.Theme.BarFill
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, fill)
	rl.DrawRectangleLines(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.PanelBorder)

	if caption == "" {
		caption = fmt.Sprintf("%.0f%%", value*100)
	}
	rl.DrawText(caption, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawSlot draws a key-bound status slot, used for the power-up tray.
// fraction shades the slot for timed states; pass 1 for a solid slot.
func (r *Renderer) DrawSlot(x, y, size int32, key, name string, color rl.Color, fraction float32) {
	rl.DrawRectangle(x, y, size, size, r.Theme.BarBg)
	fill := int32(float32(size) * clampUnit(fraction))
	rl.DrawRectangle(x, y+size-fill, size, fill, color)
	rl.DrawRectangleLines(x, y, size, size, r.Theme.PanelBorder)
	rl.DrawText(key, x+4, y+4, r.Theme.FontSize, rl.White)

	nameWidth := rl.MeasureText(name, r.Theme.FontSize)
	rl.DrawText(name, x+(size-nameWidth)/2, y+size+4, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawSpacer returns y advanced by the given amount.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
