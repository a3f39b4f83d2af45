package interpreter

import (
	"fmt"
	"math"

	"logo/interpreter-go/pkg/ast"
	"logo/interpreter-go/pkg/canvas"
	"logo/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeBlock(body []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range body {
		if err := i.executeStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.Command:
		return i.executeCommand(n, env)
	case *ast.Assignment:
		return i.executeAssignment(n, env)
	case *ast.IfStatement:
		return i.executeIf(n, env)
	case *ast.WhileStatement:
		return i.executeWhile(n, env)
	case *ast.ProcedureDefinition:
		i.procedures[n.Name] = n
		return nil
	case *ast.ProcedureCall:
		return i.executeProcedureCall(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) executeCommand(cmd *ast.Command, env *runtime.Environment) error {
	var value runtime.Value
	var arg float64
	if len(cmd.Args) > 0 {
		var err error
		value, err = i.evaluateExpression(cmd.Args[0], env)
		if err != nil {
			return err
		}
		arg = runtime.AsNumber(value)
	}

	switch cmd.Kind {
	case ast.CmdPenUp:
		i.turtle.PenDown = false
		i.emit(canvas.PenState(false))
	case ast.CmdPenDown:
		i.turtle.PenDown = true
		i.emit(canvas.PenState(true))
	case ast.CmdForward:
		i.move(0, arg)
	case ast.CmdBack:
		i.move(0, -arg)
	case ast.CmdLeft:
		i.move(-90, arg)
	case ast.CmdRight:
		i.move(90, arg)
	case ast.CmdTurn:
		i.turtle.Turn(arg)
	case ast.CmdSetHeading:
		i.turtle.SetHeading(arg)
	case ast.CmdSetX:
		i.turtle.SetX(arg)
		i.emit(canvas.MoveTo(i.turtle.X, i.turtle.Y))
	case ast.CmdSetY:
		i.turtle.SetY(arg)
		i.emit(canvas.MoveTo(i.turtle.X, i.turtle.Y))
	case ast.CmdSetPenColor:
		index, err := penColorIndex(value)
		if err != nil {
			return err
		}
		i.turtle.PenColor = index
		i.emit(canvas.SetColor(index))
	default:
		return fmt.Errorf("unsupported command: %s", cmd.Kind)
	}
	return nil
}

// move advances the turtle and emits the matching primitive: a line when
// the pen is down, a bare reposition when it is up.
func (i *Interpreter) move(offset, distance float64) {
	x, y := i.turtle.Move(offset, distance)
	if i.turtle.PenDown {
		i.emit(canvas.LineTo(x, y))
	} else {
		i.emit(canvas.MoveTo(x, y))
	}
}

// penColorIndex validates a SETPENCOLOR operand: it must be a number with
// an integral, non-negative value. Booleans are rejected outright.
func penColorIndex(v runtime.Value) (int, error) {
	fv, ok := v.(runtime.FloatValue)
	if !ok {
		return 0, invalidOperand(fmt.Sprintf("pen color must be a number, got %s", v.Kind()))
	}
	if fv.Val < 0 || fv.Val != math.Trunc(fv.Val) {
		return 0, invalidOperand(fmt.Sprintf("pen color must be a non-negative integer, got %v", fv.Val))
	}
	return int(fv.Val), nil
}

func (i *Interpreter) executeAssignment(n *ast.Assignment, env *runtime.Environment) error {
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return err
	}
	switch n.Kind {
	case ast.AssignMake:
		env.Set(n.Name, value)
		return nil
	case ast.AssignAdd:
		current, ok := env.Get(n.Name)
		if !ok {
			return undefinedVariable(n.Name)
		}
		sum := runtime.AsNumber(current) + runtime.AsNumber(value)
		env.Set(n.Name, runtime.FloatValue{Val: sum})
		return nil
	default:
		return fmt.Errorf("unsupported assignment kind: %s", n.Kind)
	}
}

func (i *Interpreter) executeIf(n *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(n.Condition, env)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return i.executeBlock(n.Block, env)
	}
	return nil
}

func (i *Interpreter) executeWhile(n *ast.WhileStatement, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if err := i.executeBlock(n.Block, env); err != nil {
			return err
		}
	}
}

// executeProcedureCall evaluates arguments in the caller's scope, then
// binds parameters in a fresh child of the global scope. Writes to names
// other than the parameters land in the global root and persist after the
// call returns.
func (i *Interpreter) executeProcedureCall(n *ast.ProcedureCall, env *runtime.Environment) error {
	proc, ok := i.procedures[n.Name]
	if !ok {
		return fmt.Errorf("procedure %s is not defined", n.Name)
	}
	// A redefinition may have changed the arity since this call was parsed.
	if len(n.Args) != len(proc.Params) {
		return fmt.Errorf("procedure %s expects %d arguments, got %d", n.Name, len(proc.Params), len(n.Args))
	}
	args := make([]runtime.Value, len(n.Args))
	for idx, expr := range n.Args {
		value, err := i.evaluateExpression(expr, env)
		if err != nil {
			return err
		}
		args[idx] = value
	}
	scope := i.global.Extend()
	for idx, param := range proc.Params {
		scope.Define(param, args[idx])
	}
	return i.executeBlock(proc.Body, scope)
}
