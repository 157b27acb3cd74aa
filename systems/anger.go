package systems

import (
	"image/color"
	"math"
)

// AngerBands is the number of severity bands the meter maps to.
const AngerBands = 10

var angerLabels = [AngerBands]string{
	"Happy", "Pleased", "Content", "Neutral", "Irritated",
	"Annoyed", "Frustrated", "Angry!", "Enraged!!", "Furious!!!",
}

var (
	angerCalm    = color.RGBA{R: 40, G: 110, B: 230, A: 255}
	angerFurious = color.RGBA{R: 225, G: 30, B: 30, A: 255}
)

// AngerTracker holds the frustration meter. Reaching 1.0 trips game over
// exactly once until Reset.
type AngerTracker struct {
	value   float64
	tripped bool

	// Presentation smoothing: displayed eases from `from` to value over fillDuration.
	displayed    float64
	from         float64
	elapsed      float64
	fillDuration float64

	hooks Hooks
}

// NewAngerTracker creates an empty meter.
func NewAngerTracker(fillDuration float64, hooks Hooks) *AngerTracker {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &AngerTracker{fillDuration: fillDuration, hooks: hooks}
}

// Increase adds delta and clamps to [0,1]. It returns the new value and
// whether this call tripped game over.
func (a *AngerTracker) Increase(delta float64) (float64, bool) {
	if math.IsNaN(delta) {
		return a.value, false
	}
	next := clamp01(a.value + delta)
	if next != a.value {
		a.set(next)
	}
	if a.value >= 1 && !a.tripped {
		a.tripped = true
		return a.value, true
	}
	return a.value, false
}

// Reset clears the meter. The value is zeroed before observers are told,
// so a reset never reports a full meter and never trips.
func (a *AngerTracker) Reset() {
	a.tripped = false
	a.set(0)
}

// Settle snaps the displayed fill to the true value.
func (a *AngerTracker) Settle() {
	a.displayed = a.value
	a.from = a.value
	a.elapsed = a.fillDuration
}

func (a *AngerTracker) set(v float64) {
	a.value = v
	a.from = a.displayed
	a.elapsed = 0
	a.hooks.OnAngerChanged(v, a.SeverityIndex())
}

// Advance eases the displayed fill toward the true value.
func (a *AngerTracker) Advance(dt float64) {
	if a.displayed == a.value {
		return
	}
	a.elapsed += dt
	if a.fillDuration <= 0 || a.elapsed >= a.fillDuration {
		a.displayed = a.value
		return
	}
	t := a.elapsed / a.fillDuration
	a.displayed = a.from + (a.value-a.from)*t
}

// Value returns the true meter value.
func (a *AngerTracker) Value() float64 { return a.value }

// Displayed returns the smoothed fill for presentation.
func (a *AngerTracker) Displayed() float64 { return a.displayed }

// Tripped reports whether the meter has filled since the last Reset.
func (a *AngerTracker) Tripped() bool { return a.tripped }

// SeverityIndex maps the value to one of ten bands.
func (a *AngerTracker) SeverityIndex() int {
	return SeverityIndex(a.value)
}

// SeverityIndex maps a meter value to clamp(floor(v*10), 0, 9).
func SeverityIndex(v float64) int {
	idx := int(math.Floor(v * AngerBands))
	if idx < 0 {
		return 0
	}
	if idx > AngerBands-1 {
		return AngerBands - 1
	}
	return idx
}

// Label returns the mood text for the current band, empty once full.
func (a *AngerTracker) Label() string {
	if a.value >= 1 {
		return ""
	}
	return angerLabels[a.SeverityIndex()]
}

// Color lerps from calm blue to furious red over the displayed fill.
func (a *AngerTracker) Color() color.RGBA {
	t := clamp01(a.displayed)
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{
		R: lerp(angerCalm.R, angerFurious.R),
		G: lerp(angerCalm.G, angerFurious.G),
		B: lerp(angerCalm.B, angerFurious.B),
		A: 255,
	}
}
