package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as an r2 vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Set overwrites the position from an r2 vector.
func (p *Position) Set(v r2.Vec) {
	p.X = v.X
	p.Y = v.Y
}
