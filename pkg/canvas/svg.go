package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultColor is the pen color a renderer assumes before any SetColor op.
const DefaultColor = 7

// RenderSVG replays a primitive stream into an SVG document of the given
// pixel dimensions. The pen starts at (0, 0) in DefaultColor; a MoveTo or
// LineTo updates the current position, a LineTo additionally emits a line
// element in the current color. PenState ops carry no visual weight here,
// the interpreter already folded pen state into the MoveTo/LineTo split.
func RenderSVG(ops []Op, width, height int) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#000000"/>`, width, height))
	sb.WriteString("\n")

	x, y := 0.0, 0.0
	color := DefaultColor
	for _, op := range ops {
		switch op.Kind {
		case OpMoveTo:
			x, y = op.X, op.Y
		case OpLineTo:
			sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
				coord(x), coord(y), coord(op.X), coord(op.Y), ColorHex(color)))
			sb.WriteString("\n")
			x, y = op.X, op.Y
		case OpSetColor:
			color = op.Color
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
