package interpreter

import (
	"fmt"

	"logo/interpreter-go/pkg/ast"
	"logo/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.VariableReference:
		value, ok := env.Get(n.Name)
		if !ok {
			return nil, undefinedVariable(n.Name)
		}
		return value, nil
	case *ast.QueryExpression:
		return i.evaluateQuery(n)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n, env)
	case *ast.NotExpression:
		operand, err := i.evaluateExpression(n.Operand, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateQuery(n *ast.QueryExpression) (runtime.Value, error) {
	switch n.Query {
	case ast.QueryXCor:
		return runtime.FloatValue{Val: i.turtle.X}, nil
	case ast.QueryYCor:
		return runtime.FloatValue{Val: i.turtle.Y}, nil
	case ast.QueryHeading:
		return runtime.FloatValue{Val: i.turtle.Heading}, nil
	case ast.QueryColor:
		return runtime.FloatValue{Val: float64(i.turtle.PenColor)}, nil
	default:
		return nil, fmt.Errorf("unsupported query: %s", n.Query)
	}
}

func (i *Interpreter) evaluateBinary(n *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	l := runtime.AsNumber(left)
	r := runtime.AsNumber(right)
	switch n.Operator {
	case ast.OpAdd:
		return runtime.FloatValue{Val: l + r}, nil
	case ast.OpSub:
		return runtime.FloatValue{Val: l - r}, nil
	case ast.OpMul:
		return runtime.FloatValue{Val: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, divisionByZero()
		}
		return runtime.FloatValue{Val: l / r}, nil
	case ast.OpEq:
		return runtime.BoolValue{Val: l == r}, nil
	case ast.OpNe:
		return runtime.BoolValue{Val: l != r}, nil
	case ast.OpLt:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OpGt:
		return runtime.BoolValue{Val: l > r}, nil
	default:
		return nil, fmt.Errorf("unsupported operator: %s", n.Operator)
	}
}

// evaluateLogical evaluates both operands before combining; a failure on
// either side aborts even when the other side would decide the result.
func (i *Interpreter) evaluateLogical(n *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.OpAnd:
		return runtime.BoolValue{Val: runtime.Truthy(left) && runtime.Truthy(right)}, nil
	case ast.OpOr:
		return runtime.BoolValue{Val: runtime.Truthy(left) || runtime.Truthy(right)}, nil
	default:
		return nil, fmt.Errorf("unsupported operator: %s", n.Operator)
	}
}
