package runtime

import "math"

// DefaultPenColor is the palette index the turtle starts with (white in
// the standard 16-color palette).
const DefaultPenColor = 7

// Turtle carries the drawing cursor: position, heading, and pen state.
// Coordinates are SVG-style with y growing downward; heading is degrees
// with 0 pointing up and positive turns clockwise. Headings are never
// normalized into [0, 360).
type Turtle struct {
	X        float64
	Y        float64
	Heading  float64
	PenDown  bool
	PenColor int
}

// NewTurtle places a turtle at (x, y), facing up, pen lifted.
func NewTurtle(x, y float64) *Turtle {
	return &Turtle{X: x, Y: y, PenColor: DefaultPenColor}
}

// Move advances distance units along heading+offset degrees and returns
// the new position. FORWARD moves with offset 0, BACK with a negated
// distance, and LEFT/RIGHT strafe with offsets -90 and +90 without
// changing the heading.
func (t *Turtle) Move(offset, distance float64) (float64, float64) {
	radians := (t.Heading + offset) * (math.Pi / 180.0)
	t.X += distance * math.Sin(radians)
	t.Y -= distance * math.Cos(radians)
	return t.X, t.Y
}

// Turn rotates the heading by the given degrees.
func (t *Turtle) Turn(degrees float64) {
	t.Heading += degrees
}

// SetHeading points the turtle at an absolute heading.
func (t *Turtle) SetHeading(degrees float64) {
	t.Heading = degrees
}

// SetX teleports horizontally; no line is drawn even with the pen down.
func (t *Turtle) SetX(x float64) {
	t.X = x
}

// SetY teleports vertically; no line is drawn even with the pen down.
func (t *Turtle) SetY(y float64) {
	t.Y = y
}
