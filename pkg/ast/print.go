package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a script back to source text. Parsing the result yields a
// structurally equal AST, so Format is the inverse of the parser for every
// tree the parser can produce.
func Format(script *Script) string {
	var b strings.Builder
	writeStatements(&b, script.Body, 0)
	return b.String()
}

// FormatExpression renders a single expression in prefix form.
func FormatExpression(expr Expression) string {
	switch e := expr.(type) {
	case *NumberLiteral:
		return `"` + strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *BooleanLiteral:
		if e.Value {
			return `"TRUE`
		}
		return `"FALSE`
	case *VariableReference:
		return ":" + e.Name
	case *QueryExpression:
		return string(e.Query)
	case *BinaryExpression:
		return string(e.Operator) + " " + FormatExpression(e.Left) + " " + FormatExpression(e.Right)
	case *LogicalExpression:
		return string(e.Operator) + " " + FormatExpression(e.Left) + " " + FormatExpression(e.Right)
	case *NotExpression:
		return "NOT " + FormatExpression(e.Operand)
	default:
		return fmt.Sprintf("<%s>", expr.NodeType())
	}
}

func writeStatements(b *strings.Builder, stmts []Statement, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *Command:
			b.WriteString(indent + string(s.Kind))
			for _, arg := range s.Args {
				b.WriteString(" " + FormatExpression(arg))
			}
			b.WriteString("\n")
		case *Assignment:
			fmt.Fprintf(b, "%s%s \"%s %s\n", indent, s.Kind, s.Name, FormatExpression(s.Value))
		case *IfStatement:
			fmt.Fprintf(b, "%sIF %s [\n", indent, FormatExpression(s.Condition))
			writeStatements(b, s.Block, depth+1)
			b.WriteString(indent + "]\n")
		case *WhileStatement:
			fmt.Fprintf(b, "%sWHILE %s [\n", indent, FormatExpression(s.Condition))
			writeStatements(b, s.Block, depth+1)
			b.WriteString(indent + "]\n")
		case *ProcedureDefinition:
			b.WriteString(indent + "TO " + s.Name)
			for _, param := range s.Params {
				b.WriteString(` "` + param)
			}
			b.WriteString("\n")
			writeStatements(b, s.Body, depth+1)
			b.WriteString(indent + "END\n")
		case *ProcedureCall:
			b.WriteString(indent + s.Name)
			for _, arg := range s.Args {
				b.WriteString(" " + FormatExpression(arg))
			}
			b.WriteString("\n")
		default:
			fmt.Fprintf(b, "%s<%s>\n", indent, stmt.NodeType())
		}
	}
}
