package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// rowKind selects how a controls panel line is drawn.
type rowKind uint8

const (
	rowHeader rowKind = iota
	rowToggle
	rowKey
)

// controlRow is one line of the controls panel.
type controlRow struct {
	kind rowKind
	text string
	key  string
	on   bool
}

var keyLegend = []controlRow{
	{kind: rowKey, key: "W/S", text: "move"},
	{kind: rowKey, key: "Space", text: "eat"},
	{kind: rowKey, key: "1 2 3", text: "speed, slow, magnet"},
	{kind: rowKey, key: "P", text: "pause"},
	{kind: rowKey, key: "Enter", text: "restart after game over"},
	{kind: rowKey, key: "Tab", text: "this panel"},
}

var categoryLabels = map[string]string{
	"world": "World",
	"debug": "Debug",
}

// controlRows lays out the overlay toggles by category, then the key legend.
func controlRows(overlays *OverlayRegistry) []controlRow {
	var rows []controlRow
	for _, cat := range overlays.Categories() {
		label, ok := categoryLabels[cat]
		if !ok {
			label = cat
		}
		rows = append(rows, controlRow{kind: rowHeader, text: label})
		for _, d := range overlays.ByCategory(cat) {
			rows = append(rows, controlRow{kind: rowToggle, text: d.Name, key: d.KeyLabel, on: overlays.IsEnabled(d.ID)})
		}
	}
	rows = append(rows, controlRow{kind: rowHeader, text: "Keys"})
	return append(rows, keyLegend...)
}

// ControlsPanel lists the overlay toggles and the key bindings. Hidden
// until toggled.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden panel at x, y.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Toggle flips visibility and returns the new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Visible reports whether the panel is shown.
func (c *ControlsPanel) Visible() bool { return c.visible }

// Draw renders the panel and returns the y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}
	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight
	rows := controlRows(overlays)

	r.DrawPanel(c.x, c.y, c.width, int32(len(rows))*line+pad*2)

	x, y := c.x+pad, c.y+pad
	inner := c.width - pad*2
	for _, row := range rows {
		switch row.kind {
		case rowHeader:
			rl.DrawText(row.text, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		case rowToggle:
			c.drawToggle(x, y, inner, row)
		case rowKey:
			r.DrawLabelValue(x, y, row.key, row.text)
		}
		y += line
	}
	return y + pad
}

func (c *ControlsPanel) drawToggle(x, y, width int32, row controlRow) {
	t := c.renderer.Theme
	dot, name := t.DimColor, t.LabelColor
	if row.on {
		dot, name = t.ActiveColor, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, dot)
	rl.DrawText(row.text, x+14, y, t.FontSize, name)

	if row.key != "" {
		label := fmt.Sprintf("[%s]", row.key)
		rl.DrawText(label, x+width-rl.MeasureText(label, t.FontSize), y, t.FontSize, t.LabelColor)
	}
}
