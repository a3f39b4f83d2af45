package parser

import (
	"strconv"

	"logo/interpreter-go/pkg/ast"
)

var binaryOperators = map[string]ast.BinaryOperator{
	"+":  ast.OpAdd,
	"-":  ast.OpSub,
	"*":  ast.OpMul,
	"/":  ast.OpDiv,
	"EQ": ast.OpEq,
	"NE": ast.OpNe,
	"LT": ast.OpLt,
	"GT": ast.OpGt,
}

var logicalOperators = map[string]ast.LogicalOperator{
	"AND": ast.OpAnd,
	"OR":  ast.OpOr,
}

var queryKinds = map[string]ast.QueryKind{
	"XCOR":    ast.QueryXCor,
	"YCOR":    ast.QueryYCor,
	"HEADING": ast.QueryHeading,
	"COLOR":   ast.QueryColor,
}

// parseExpression parses one prefix expression starting at pos: the
// operator token comes first, then its operands recursively, so position
// alone decides grouping and no precedence table is needed.
func (b *builder) parseExpression(pos int) (ast.Expression, int, error) {
	tok, ok := b.at(pos)
	if !ok {
		return nil, pos, &ParseError{Kind: ParseMissingOperand, Pos: pos, Expected: "an expression"}
	}

	switch tok.Kind {
	case TokenLiteral:
		switch tok.Text {
		case "TRUE":
			return ast.NewBooleanLiteral(true), pos + 1, nil
		case "FALSE":
			return ast.NewBooleanLiteral(false), pos + 1, nil
		}
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, pos, &ParseError{Kind: ParseInvalidNumber, Pos: pos, Token: tok.Text}
		}
		return ast.NewNumberLiteral(value), pos + 1, nil

	case TokenVariable:
		return ast.NewVariableReference(tok.Text), pos + 1, nil

	case TokenWord:
		if query, ok := queryKinds[tok.Text]; ok {
			return ast.NewQueryExpression(query), pos + 1, nil
		}
		if op, ok := binaryOperators[tok.Text]; ok {
			left, right, next, err := b.parseOperandPair(pos + 1)
			if err != nil {
				return nil, pos, err
			}
			return ast.NewBinaryExpression(op, left, right), next, nil
		}
		if op, ok := logicalOperators[tok.Text]; ok {
			left, right, next, err := b.parseOperandPair(pos + 1)
			if err != nil {
				return nil, pos, err
			}
			return ast.NewLogicalExpression(op, left, right), next, nil
		}
		if tok.Text == "NOT" {
			operand, next, err := b.parseExpression(pos + 1)
			if err != nil {
				return nil, pos, err
			}
			return ast.NewNotExpression(operand), next, nil
		}
		return nil, pos, &ParseError{Kind: ParseUnexpectedToken, Pos: pos, Token: tok.Text, Expected: "an expression"}

	default:
		return nil, pos, &ParseError{Kind: ParseUnexpectedToken, Pos: pos, Token: tok.Text, Expected: "an expression"}
	}
}

func (b *builder) parseOperandPair(pos int) (ast.Expression, ast.Expression, int, error) {
	left, pos, err := b.parseExpression(pos)
	if err != nil {
		return nil, nil, pos, err
	}
	right, pos, err := b.parseExpression(pos)
	if err != nil {
		return nil, nil, pos, err
	}
	return left, right, pos, nil
}
