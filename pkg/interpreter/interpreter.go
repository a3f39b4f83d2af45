// Package interpreter walks a parsed script, mutating the turtle and the
// variable environment and emitting draw primitives in execution order.
package interpreter

import (
	"fmt"

	"logo/interpreter-go/pkg/ast"
	"logo/interpreter-go/pkg/canvas"
	"logo/interpreter-go/pkg/runtime"
)

// Status describes where a run is in its lifecycle. A run is Running while
// statements execute and halts exactly once; the first error aborts the
// run with no resumption.
type Status int

const (
	StatusRunning Status = iota
	StatusHaltedSuccess
	StatusHaltedError
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusHaltedSuccess:
		return "HaltedSuccess"
	case StatusHaltedError:
		return "HaltedError"
	default:
		return fmt.Sprintf("unknown_status_%d", int(s))
	}
}

// Interpreter drives evaluation of script AST nodes against a turtle.
type Interpreter struct {
	global     *runtime.Environment
	turtle     *runtime.Turtle
	sink       canvas.Sink
	procedures map[string]*ast.ProcedureDefinition
	status     Status
}

// New returns an interpreter with an empty global environment. The sink
// receives draw primitives as commands execute; a nil sink discards them.
func New(turtle *runtime.Turtle, sink canvas.Sink) *Interpreter {
	return &Interpreter{
		global:     runtime.NewEnvironment(nil),
		turtle:     turtle,
		sink:       sink,
		procedures: make(map[string]*ast.ProcedureDefinition),
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Turtle returns the turtle the interpreter mutates.
func (i *Interpreter) Turtle() *runtime.Turtle {
	return i.turtle
}

// Status reports the run lifecycle state.
func (i *Interpreter) Status() Status {
	return i.status
}

// Run executes a script to completion. On the first error the run halts
// with StatusHaltedError and the error is returned; otherwise the run
// ends in StatusHaltedSuccess.
func (i *Interpreter) Run(script *ast.Script) error {
	i.status = StatusRunning
	// The stream opens at the turtle's starting position so the first
	// pen-down segment anchors there rather than at the renderer default.
	i.emit(canvas.MoveTo(i.turtle.X, i.turtle.Y))
	if err := i.executeBlock(script.Body, i.global); err != nil {
		i.status = StatusHaltedError
		return err
	}
	i.status = StatusHaltedSuccess
	return nil
}

func (i *Interpreter) emit(op canvas.Op) {
	if i.sink != nil {
		i.sink.Record(op)
	}
}
