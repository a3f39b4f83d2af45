// Package canvas collects the draw primitives emitted while a script runs
// and renders them to an image. The interpreter never touches an image
// directly; it appends ops to a Sink and a renderer replays them afterward.
package canvas

// OpKind identifies a draw primitive.
type OpKind int

const (
	OpMoveTo OpKind = iota
	OpLineTo
	OpSetColor
	OpPenState
)

func (k OpKind) String() string {
	switch k {
	case OpMoveTo:
		return "MOVETO"
	case OpLineTo:
		return "LINETO"
	case OpSetColor:
		return "SETCOLOR"
	case OpPenState:
		return "PENSTATE"
	default:
		return "UNKNOWN"
	}
}

// Op is one draw primitive. X and Y are set for MoveTo/LineTo, Color for
// SetColor, Down for PenState; the remaining fields are zero.
type Op struct {
	Kind  OpKind  `json:"kind"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Color int     `json:"color,omitempty"`
	Down  bool    `json:"down,omitempty"`
}

// MoveTo repositions the pen without drawing.
func MoveTo(x, y float64) Op {
	return Op{Kind: OpMoveTo, X: x, Y: y}
}

// LineTo draws a segment from the current position in the current color.
func LineTo(x, y float64) Op {
	return Op{Kind: OpLineTo, X: x, Y: y}
}

// SetColor switches the pen to the given palette index.
func SetColor(index int) Op {
	return Op{Kind: OpSetColor, Color: index}
}

// PenState records the pen being raised or lowered.
func PenState(down bool) Op {
	return Op{Kind: OpPenState, Down: down}
}

// Sink receives draw primitives in execution order.
type Sink interface {
	Record(op Op)
}

// Recorder is an in-memory Sink.
type Recorder struct {
	ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(op Op) {
	r.ops = append(r.ops, op)
}

// Ops returns the recorded primitives in the order they were emitted.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Palette is the 16-color pen palette. Index 7, white, is the default pen
// color; images are rendered on a black background.
var Palette = [16]string{
	"#000000", // 0 black
	"#0000ff", // 1 blue
	"#00ff00", // 2 green
	"#00ffff", // 3 cyan
	"#ff0000", // 4 red
	"#ff00ff", // 5 magenta
	"#ffff00", // 6 yellow
	"#ffffff", // 7 white
	"#964b00", // 8 brown
	"#d2b48c", // 9 tan
	"#228b22", // 10 forest
	"#7fffd4", // 11 aqua
	"#fa8072", // 12 salmon
	"#a020f0", // 13 purple
	"#ffa500", // 14 orange
	"#808080", // 15 grey
}

// ColorHex maps a pen color index to its hex string. Indexes beyond the
// palette wrap around rather than erroring.
func ColorHex(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}
