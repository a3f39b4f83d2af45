package parser

import "fmt"

// LexErrorKind classifies tokenizer failures.
type LexErrorKind string

const (
	LexEmptyLiteral      LexErrorKind = "empty_literal"
	LexEmptyVariable     LexErrorKind = "empty_variable"
	LexUnbalancedBracket LexErrorKind = "unbalanced_bracket"
)

// LexError reports a malformed token stream before parsing begins.
type LexError struct {
	Kind  LexErrorKind
	Line  int
	Token string
}

func (e *LexError) Error() string {
	switch e.Kind {
	case LexEmptyLiteral:
		return fmt.Sprintf("lex: empty quoted literal at line %d", e.Line)
	case LexEmptyVariable:
		return fmt.Sprintf("lex: empty variable reference at line %d", e.Line)
	case LexUnbalancedBracket:
		return fmt.Sprintf("lex: unbalanced bracket %q at line %d", e.Token, e.Line)
	default:
		return fmt.Sprintf("lex: invalid token %q at line %d", e.Token, e.Line)
	}
}

// ParseErrorKind classifies parser failures.
type ParseErrorKind string

const (
	ParseUnexpectedToken    ParseErrorKind = "unexpected_token"
	ParseInvalidNumber      ParseErrorKind = "invalid_number"
	ParseMissingOperand     ParseErrorKind = "missing_operand"
	ParseUnterminatedBlock  ParseErrorKind = "unterminated_block"
	ParseUndefinedProcedure ParseErrorKind = "undefined_procedure"
)

// ParseError reports the offending token by stream index. The AST builder
// never returns a partial node alongside one of these.
type ParseError struct {
	Kind     ParseErrorKind
	Pos      int
	Token    string
	Expected string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseInvalidNumber:
		return fmt.Sprintf("parse: cannot read %q as a number (token %d)", e.Token, e.Pos)
	case ParseMissingOperand:
		return fmt.Sprintf("parse: expected %s but the script ended (token %d)", e.Expected, e.Pos)
	case ParseUnterminatedBlock:
		return fmt.Sprintf("parse: block opened at token %d is never closed", e.Pos)
	case ParseUndefinedProcedure:
		return fmt.Sprintf("parse: %q is not a command or a defined procedure (token %d)", e.Token, e.Pos)
	default:
		if e.Expected != "" {
			return fmt.Sprintf("parse: expected %s, found %q (token %d)", e.Expected, e.Token, e.Pos)
		}
		return fmt.Sprintf("parse: unexpected token %q (token %d)", e.Token, e.Pos)
	}
}
