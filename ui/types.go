package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/munch/components"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	GrowthFill     rl.Color
	ReadyColor     rl.Color
	ActiveColor    rl.Color
	DimColor       rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		GrowthFill:     rl.Color{R: 100, G: 200, B: 100, A: 255},
		ReadyColor:     rl.Color{R: 200, G: 180, B: 100, A: 255},
		ActiveColor:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		DimColor:       rl.Color{R: 80, G: 80, B: 80, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     60,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// foodPalette colors foods by type index; it wraps for long food lists.
var foodPalette = []rl.Color{
	{R: 220, G: 60, B: 60, A: 255},
	{R: 240, G: 200, B: 80, A: 255},
	{R: 120, G: 200, B: 240, A: 255},
	{R: 240, G: 120, B: 40, A: 255},
	{R: 200, G: 120, B: 220, A: 255},
	{R: 160, G: 220, B: 120, A: 255},
}

// powerUpColors outline foods that carry a power-up.
var powerUpColors = [components.PowerUpKindCount]rl.Color{
	components.PowerUpSpeed:  {R: 255, G: 240, B: 90, A: 255},
	components.PowerUpSlow:   {R: 110, G: 180, B: 255, A: 255},
	components.PowerUpMagnet: {R: 255, G: 90, B: 200, A: 255},
	components.PowerUpRotten: {R: 110, G: 140, B: 60, A: 255},
}

// FoodColor returns the fill color for a food type.
func FoodColor(foodType uint8) rl.Color {
	return foodPalette[int(foodType)%len(foodPalette)]
}

// PowerUpColor returns the outline color for a power-up kind. The zero
// color means no outline.
func PowerUpColor(kind components.PowerUpKind) rl.Color {
	if kind >= components.PowerUpKindCount {
		return rl.Color{}
	}
	return powerUpColors[kind]
}
