package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/munch/game"
)

// KeyState reports keyboard state. Keyboard is the raylib-backed
// implementation; tests substitute their own.
type KeyState interface {
	IsKeyDown(key int32) bool
	IsKeyPressed(key int32) bool
}

// Keyboard reads keys from the raylib window.
type Keyboard struct{}

func (Keyboard) IsKeyDown(key int32) bool    { return rl.IsKeyDown(key) }
func (Keyboard) IsKeyPressed(key int32) bool { return rl.IsKeyPressed(key) }

// Commands are the frame-level requests that do not go through the session.
type Commands struct {
	TogglePause    bool
	ToggleControls bool
	Restart        bool
	Quit           bool
}

// ReadInput maps the keyboard to one tick of player input. Opposite keys
// cancel. Eat and the activations are edge-triggered.
func ReadInput(k KeyState) game.Input {
	var in game.Input
	if k.IsKeyDown(rl.KeyW) || k.IsKeyDown(rl.KeyUp) {
		in.Axis++
	}
	if k.IsKeyDown(rl.KeyS) || k.IsKeyDown(rl.KeyDown) {
		in.Axis--
	}
	in.Eat = k.IsKeyPressed(rl.KeySpace)
	in.ActivateSpeed = k.IsKeyPressed(rl.KeyOne)
	in.ActivateSlow = k.IsKeyPressed(rl.KeyTwo)
	in.ActivateMagnet = k.IsKeyPressed(rl.KeyThree)
	return in
}

// ReadCommands maps the keyboard to frame-level commands.
func ReadCommands(k KeyState) Commands {
	return Commands{
		TogglePause:    k.IsKeyPressed(rl.KeyP),
		ToggleControls: k.IsKeyPressed(rl.KeyTab),
		Restart:        k.IsKeyPressed(rl.KeyEnter),
		Quit:           k.IsKeyPressed(rl.KeyEscape),
	}
}

// InputLatch holds edge-triggered presses until a tick consumes them.
// The axis is level-triggered and always reflects the latest frame.
type InputLatch struct {
	pending game.Input
}

// Merge records one frame of input. Presses accumulate until Take.
func (l *InputLatch) Merge(in game.Input) {
	l.pending.Axis = in.Axis
	l.pending.Eat = l.pending.Eat || in.Eat
	l.pending.ActivateSpeed = l.pending.ActivateSpeed || in.ActivateSpeed
	l.pending.ActivateSlow = l.pending.ActivateSlow || in.ActivateSlow
	l.pending.ActivateMagnet = l.pending.ActivateMagnet || in.ActivateMagnet
}

// Take returns the input for one tick and clears the presses.
func (l *InputLatch) Take() game.Input {
	in := l.pending
	l.pending = game.Input{Axis: in.Axis}
	return in
}
