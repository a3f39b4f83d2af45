package canvas

import (
	"strings"
	"testing"
)

func TestRecorderPreservesOrder(t *testing.T) {
	rec := NewRecorder()
	rec.Record(PenState(true))
	rec.Record(LineTo(10, 0))
	rec.Record(SetColor(4))
	rec.Record(MoveTo(5, 5))

	ops := rec.Ops()
	if len(ops) != 4 {
		t.Fatalf("recorded ops: got %d, want 4", len(ops))
	}
	wantKinds := []OpKind{OpPenState, OpLineTo, OpSetColor, OpMoveTo}
	for i, kind := range wantKinds {
		if ops[i].Kind != kind {
			t.Fatalf("op %d kind: got %s, want %s", i, ops[i].Kind, kind)
		}
	}
	if !ops[0].Down {
		t.Fatalf("pen state op: got up, want down")
	}
	if ops[2].Color != 4 {
		t.Fatalf("set color op: got %d, want 4", ops[2].Color)
	}
}

func TestColorHexWrapsPalette(t *testing.T) {
	if got := ColorHex(7); got != "#ffffff" {
		t.Fatalf("color 7: got %s, want #ffffff", got)
	}
	if got := ColorHex(0); got != "#000000" {
		t.Fatalf("color 0: got %s, want #000000", got)
	}
	if got, want := ColorHex(16), ColorHex(0); got != want {
		t.Fatalf("color 16: got %s, want %s", got, want)
	}
	if got, want := ColorHex(23), ColorHex(7); got != want {
		t.Fatalf("color 23: got %s, want %s", got, want)
	}
}

func TestRenderSVGOneLinePerSegment(t *testing.T) {
	ops := []Op{
		MoveTo(10, 10),
		LineTo(10, 60),
		SetColor(4),
		LineTo(60, 60),
		MoveTo(0, 0),
	}
	svg := RenderSVG(ops, 100, 80)

	if !strings.Contains(svg, `width="100" height="80"`) {
		t.Fatalf("svg missing dimensions: %s", svg)
	}
	if got := strings.Count(svg, "<line "); got != 2 {
		t.Fatalf("line elements: got %d, want 2", got)
	}
	if !strings.Contains(svg, `<line x1="10" y1="10" x2="10" y2="60" stroke="#ffffff"`) {
		t.Fatalf("first segment not drawn in default color: %s", svg)
	}
	if !strings.Contains(svg, `<line x1="10" y1="60" x2="60" y2="60" stroke="#ff0000"`) {
		t.Fatalf("second segment not drawn in red: %s", svg)
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Fatalf("svg missing background rect: %s", svg)
	}
}

func TestRenderSVGEmptyStream(t *testing.T) {
	svg := RenderSVG(nil, 50, 50)
	if strings.Contains(svg, "<line") {
		t.Fatalf("empty stream produced line elements: %s", svg)
	}
	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("malformed document: %s", svg)
	}
}
