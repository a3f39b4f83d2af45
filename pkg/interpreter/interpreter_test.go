package interpreter

import (
	"errors"
	"math"
	"strings"
	"testing"

	"logo/interpreter-go/pkg/canvas"
	"logo/interpreter-go/pkg/parser"
	"logo/interpreter-go/pkg/runtime"
)

func runScript(t *testing.T, source string) (*Interpreter, *canvas.Recorder) {
	t.Helper()
	script, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	rec := canvas.NewRecorder()
	interp := New(runtime.NewTurtle(0, 0), rec)
	if err := interp.Run(script); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return interp, rec
}

func runScriptErr(t *testing.T, source string) (*Interpreter, error) {
	t.Helper()
	script, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	interp := New(runtime.NewTurtle(0, 0), nil)
	runErr := interp.Run(script)
	if runErr == nil {
		t.Fatalf("expected run error, got success")
	}
	return interp, runErr
}

func globalNumber(t *testing.T, interp *Interpreter, name string) float64 {
	t.Helper()
	value, ok := interp.GlobalEnvironment().Get(name)
	if !ok {
		t.Fatalf("variable %s not defined", name)
	}
	return runtime.AsNumber(value)
}

func TestPrefixArithmetic(t *testing.T) {
	interp, _ := runScript(t, `MAKE "X + "3 * "2 "4`)
	if got := globalNumber(t, interp, "X"); got != 11 {
		t.Fatalf("X: got %v, want 11", got)
	}
}

func TestNestedPrefixExpression(t *testing.T) {
	interp, _ := runScript(t, `MAKE "Y / - "10 "4 "2`)
	if got := globalNumber(t, interp, "Y"); got != 3 {
		t.Fatalf("Y: got %v, want 3", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	interp, err := runScriptErr(t, `MAKE "X / "1 "0`)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Kind != ErrDivisionByZero {
		t.Fatalf("error: got %v, want DivisionByZero", err)
	}
	if interp.Status() != StatusHaltedError {
		t.Fatalf("status: got %s, want HaltedError", interp.Status())
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := runScriptErr(t, `FORWARD :UNSET`)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Kind != ErrUndefinedVariable {
		t.Fatalf("error: got %v, want UndefinedVariable", err)
	}
	if rerr.Name != "UNSET" {
		t.Fatalf("variable name: got %s, want UNSET", rerr.Name)
	}
}

func TestComparisonsProduceBooleans(t *testing.T) {
	interp, _ := runScript(t, `MAKE "B EQ "3 "3`)
	value, ok := interp.GlobalEnvironment().Get("B")
	if !ok {
		t.Fatalf("B not defined")
	}
	if value.Kind() != runtime.KindBool {
		t.Fatalf("B kind: got %s, want bool", value.Kind())
	}
	if !runtime.Truthy(value) {
		t.Fatalf("EQ 3 3: got false, want true")
	}
}

func TestBooleanNumericBoundary(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "T + EQ "1 "1 "0
MAKE "F + NE "1 "1 "0
`)
	if got := globalNumber(t, interp, "T"); got != 1.0 {
		t.Fatalf("true as number: got %v, want 1.0", got)
	}
	if got := globalNumber(t, interp, "F"); got != 0.0 {
		t.Fatalf("false as number: got %v, want 0.0", got)
	}
}

func TestBooleanLiterals(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "A AND "TRUE "FALSE
MAKE "O OR "TRUE "FALSE
MAKE "N NOT "TRUE
`)
	for name, want := range map[string]bool{"A": false, "O": true, "N": false} {
		value, ok := interp.GlobalEnvironment().Get(name)
		if !ok {
			t.Fatalf("%s not defined", name)
		}
		if runtime.Truthy(value) != want {
			t.Fatalf("%s: got %v, want %v", name, runtime.Truthy(value), want)
		}
	}
}

func TestLogicalEvaluatesBothOperands(t *testing.T) {
	_, err := runScriptErr(t, `MAKE "X OR EQ "1 "1 / "1 "0`)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Kind != ErrDivisionByZero {
		t.Fatalf("error: got %v, want DivisionByZero from the second operand", err)
	}
}

func TestWhileReevaluatesCondition(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "I "0
WHILE LT :I "3 [
  ADDASSIGN "I "1
]
`)
	if got := globalNumber(t, interp, "I"); got != 3 {
		t.Fatalf("I after loop: got %v, want 3", got)
	}
}

func TestIfExecutesOnce(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "X "0
IF GT "2 "1 [
  ADDASSIGN "X "5
]
IF GT "1 "2 [
  ADDASSIGN "X "100
]
`)
	if got := globalNumber(t, interp, "X"); got != 5 {
		t.Fatalf("X: got %v, want 5", got)
	}
}

func TestForwardDrawsWithPenDown(t *testing.T) {
	interp, rec := runScript(t, `
PENDOWN
FORWARD "10
`)
	turtle := interp.Turtle()
	if turtle.X != 0 || turtle.Y != -10 {
		t.Fatalf("position: got (%v, %v), want (0, -10)", turtle.X, turtle.Y)
	}
	ops := rec.Ops()
	if len(ops) != 3 {
		t.Fatalf("ops: got %d, want 3", len(ops))
	}
	if ops[2].Kind != canvas.OpLineTo {
		t.Fatalf("movement op: got %s, want LINETO", ops[2].Kind)
	}
}

func TestForwardMovesWithPenUp(t *testing.T) {
	_, rec := runScript(t, `FORWARD "10`)
	ops := rec.Ops()
	if len(ops) != 2 || ops[0].Kind != canvas.OpMoveTo || ops[1].Kind != canvas.OpMoveTo {
		t.Fatalf("pen-up movement: got %v, want two MOVETO ops", ops)
	}
}

func TestRunOpensAtStartingPosition(t *testing.T) {
	script, err := parser.Parse(`
PENDOWN
FORWARD "50
`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	rec := canvas.NewRecorder()
	interp := New(runtime.NewTurtle(100, 100), rec)
	if err := interp.Run(script); err != nil {
		t.Fatalf("run error: %v", err)
	}
	ops := rec.Ops()
	if len(ops) == 0 || ops[0].Kind != canvas.OpMoveTo {
		t.Fatalf("first op: got %v, want MOVETO", ops)
	}
	if ops[0].X != 100 || ops[0].Y != 100 {
		t.Fatalf("start position: got (%v, %v), want (100, 100)", ops[0].X, ops[0].Y)
	}
	last := ops[len(ops)-1]
	if last.Kind != canvas.OpLineTo || last.X != 100 || last.Y != 50 {
		t.Fatalf("segment end: got %v, want LINETO (100, 50)", last)
	}
}

func TestHeadingMath(t *testing.T) {
	interp, _ := runScript(t, `
TURN "90
FORWARD "10
`)
	turtle := interp.Turtle()
	if math.Abs(turtle.X-10) > 1e-9 || math.Abs(turtle.Y) > 1e-9 {
		t.Fatalf("position: got (%v, %v), want (10, 0)", turtle.X, turtle.Y)
	}
	if turtle.Heading != 90 {
		t.Fatalf("heading: got %v, want 90", turtle.Heading)
	}
}

func TestStrafeKeepsHeading(t *testing.T) {
	interp, _ := runScript(t, `
SETHEADING "90
LEFT "5
RIGHT "5
`)
	turtle := interp.Turtle()
	if turtle.Heading != 90 {
		t.Fatalf("heading after strafes: got %v, want 90", turtle.Heading)
	}
	if math.Abs(turtle.X) > 1e-9 || math.Abs(turtle.Y) > 1e-9 {
		t.Fatalf("position: got (%v, %v), want (0, 0)", turtle.X, turtle.Y)
	}
}

func TestSetXYNeverDraw(t *testing.T) {
	_, rec := runScript(t, `
PENDOWN
SETX "40
SETY "40
`)
	for _, op := range rec.Ops() {
		if op.Kind == canvas.OpLineTo {
			t.Fatalf("SETX/SETY drew a line: %v", rec.Ops())
		}
	}
}

func TestQueriesReadTurtleState(t *testing.T) {
	interp, _ := runScript(t, `
SETX "12
SETY "34
SETHEADING "45
SETPENCOLOR "3
MAKE "X XCOR
MAKE "Y YCOR
MAKE "H HEADING
MAKE "C COLOR
`)
	for name, want := range map[string]float64{"X": 12, "Y": 34, "H": 45, "C": 3} {
		if got := globalNumber(t, interp, name); got != want {
			t.Fatalf("%s: got %v, want %v", name, got, want)
		}
	}
}

func TestSetPenColorValidation(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"negative", `SETPENCOLOR - "0 "1`},
		{"fractional", `SETPENCOLOR "2.5`},
		{"boolean", `SETPENCOLOR "TRUE`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runScriptErr(t, tc.source)
			var rerr *RuntimeError
			if !errors.As(err, &rerr) || rerr.Kind != ErrInvalidOperandType {
				t.Fatalf("error: got %v, want InvalidOperandType", err)
			}
		})
	}
}

func TestDefaultPenColor(t *testing.T) {
	interp, _ := runScript(t, `MAKE "C COLOR`)
	if got := globalNumber(t, interp, "C"); got != 7 {
		t.Fatalf("default color: got %v, want 7", got)
	}
	if interp.Turtle().PenDown {
		t.Fatalf("pen starts down, want up")
	}
}

func TestProcedureParameterShadowing(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "DIST "100
TO STEP "DIST
  FORWARD :DIST
  MAKE "LAST :DIST
END
STEP "5
`)
	if got := globalNumber(t, interp, "DIST"); got != 100 {
		t.Fatalf("global DIST after call: got %v, want 100", got)
	}
	if got := globalNumber(t, interp, "LAST"); got != 5 {
		t.Fatalf("LAST: got %v, want 5", got)
	}
	if _, ok := interp.GlobalEnvironment().Get("STEP"); ok {
		t.Fatalf("procedure name leaked into variables")
	}
}

func TestProcedureArgsEvaluateInCallerScope(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "N "4
TO DOUBLE "N
  MAKE "OUT * :N "2
END
DOUBLE + :N "1
`)
	if got := globalNumber(t, interp, "OUT"); got != 10 {
		t.Fatalf("OUT: got %v, want 10", got)
	}
}

func TestRecursiveProcedure(t *testing.T) {
	interp, _ := runScript(t, `
MAKE "SUM "0
TO COUNTDOWN "N
  IF GT :N "0 [
    ADDASSIGN "SUM :N
    COUNTDOWN - :N "1
  ]
END
COUNTDOWN "4
`)
	if got := globalNumber(t, interp, "SUM"); got != 10 {
		t.Fatalf("SUM: got %v, want 10", got)
	}
}

func TestRedefinedProcedureArityMismatch(t *testing.T) {
	interp, err := runScriptErr(t, `
TO P "A
  MAKE "OUT :A
END
TO Q
  P "1
END
TO P "A "B
  MAKE "OUT + :A :B
END
Q
`)
	if !strings.Contains(err.Error(), "expects 2 arguments, got 1") {
		t.Fatalf("error: got %v, want arity mismatch", err)
	}
	if interp.Status() != StatusHaltedError {
		t.Fatalf("status: got %s, want HaltedError", interp.Status())
	}
}

func TestBoxLineScenario(t *testing.T) {
	interp, rec := runScript(t, `
PENDOWN
TO BOX "STEP
  IF GT :STEP "0 [
    FORWARD :STEP
  ]
END
MAKE "BOXLINE "2
WHILE LT :BOXLINE "60 [
  BOX "1
  ADDASSIGN "BOXLINE "2
]
`)
	if got := globalNumber(t, interp, "BOXLINE"); got != 60.0 {
		t.Fatalf("BOXLINE: got %v, want 60.0", got)
	}
	lines := 0
	for _, op := range rec.Ops() {
		if op.Kind == canvas.OpLineTo {
			lines++
		}
	}
	if lines != 29 {
		t.Fatalf("loop iterations: got %d, want 29", lines)
	}
}

func TestRunStatus(t *testing.T) {
	script, err := parser.Parse(`FORWARD "1`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	interp := New(runtime.NewTurtle(0, 0), nil)
	if interp.Status() != StatusRunning {
		t.Fatalf("fresh status: got %s, want Running", interp.Status())
	}
	if err := interp.Run(script); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if interp.Status() != StatusHaltedSuccess {
		t.Fatalf("status: got %s, want HaltedSuccess", interp.Status())
	}
}

func TestErrorAbortsRun(t *testing.T) {
	interp, _ := runScriptErr(t, `
MAKE "A "1
FORWARD :MISSING
MAKE "B "2
`)
	if _, ok := interp.GlobalEnvironment().Get("B"); ok {
		t.Fatalf("statement after error executed")
	}
	if _, ok := interp.GlobalEnvironment().Get("A"); !ok {
		t.Fatalf("statement before error rolled back")
	}
}
