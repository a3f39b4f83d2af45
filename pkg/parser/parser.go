package parser

import (
	"logo/interpreter-go/pkg/ast"
)

// Keywords that terminate procedure parameter lists and can never be used
// as parameter or procedure names.
var reservedWords = map[string]bool{
	"MAKE": true, "ADDASSIGN": true,
	"IF": true, "WHILE": true,
	"TO": true, "END": true,
	"XCOR": true, "YCOR": true, "HEADING": true, "COLOR": true,
	"+": true, "-": true, "*": true, "/": true,
	"EQ": true, "NE": true, "LT": true, "GT": true,
	"AND": true, "OR": true, "NOT": true,
}

func isReserved(word string) bool {
	if reservedWords[word] {
		return true
	}
	_, isCommand := ast.CommandArity[ast.CommandKind(word)]
	return isCommand
}

// Parse tokenizes and parses a script in one step.
func Parse(source string) (*ast.Script, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens builds the top-level AST from a token stream. Every parsing
// helper receives a cursor and returns the cursor past what it consumed;
// no position state is shared between calls.
func ParseTokens(tokens []Token) (*ast.Script, error) {
	b := &builder{tokens: tokens, procedures: make(map[string]int)}
	body, pos, err := b.parseStatements(0, nil)
	if err != nil {
		return nil, err
	}
	if pos < len(tokens) {
		return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: pos, Token: tokens[pos].Text}
	}
	return ast.NewScript(body), nil
}

type builder struct {
	tokens []Token

	// procedures maps each TO-defined name to its declared arity, so calls
	// know how many argument expressions to parse. A name is registered
	// before its body parses, which is what lets a body call itself.
	procedures map[string]int
}

func (b *builder) at(pos int) (Token, bool) {
	if pos < 0 || pos >= len(b.tokens) {
		return Token{}, false
	}
	return b.tokens[pos], true
}

// parseStatements consumes statements until the stream ends or stop
// matches the next token. The stop token itself is not consumed.
func (b *builder) parseStatements(pos int, stop func(Token) bool) ([]ast.Statement, int, error) {
	stmts := []ast.Statement{}
	for {
		tok, ok := b.at(pos)
		if !ok || (stop != nil && stop(tok)) {
			return stmts, pos, nil
		}
		stmt, next, err := b.parseStatement(pos)
		if err != nil {
			return nil, pos, err
		}
		stmts = append(stmts, stmt)
		pos = next
	}
}

func (b *builder) parseStatement(pos int) (ast.Statement, int, error) {
	tok := b.tokens[pos]
	if tok.Kind != TokenWord {
		return nil, pos, &ParseError{Kind: ParseUnexpectedToken, Pos: pos, Token: tok.Text, Expected: "a command"}
	}

	if arity, ok := ast.CommandArity[ast.CommandKind(tok.Text)]; ok {
		args, next, err := b.parseExpressions(pos+1, arity)
		if err != nil {
			return nil, pos, err
		}
		return ast.NewCommand(ast.CommandKind(tok.Text), args), next, nil
	}

	switch tok.Text {
	case "MAKE":
		return b.parseAssignment(pos, ast.AssignMake)
	case "ADDASSIGN":
		return b.parseAssignment(pos, ast.AssignAdd)
	case "IF", "WHILE":
		cond, next, err := b.parseExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		block, next, err := b.parseBlock(next)
		if err != nil {
			return nil, pos, err
		}
		if tok.Text == "IF" {
			return ast.NewIfStatement(cond, block), next, nil
		}
		return ast.NewWhileStatement(cond, block), next, nil
	case "TO":
		return b.parseProcedureDefinition(pos)
	}

	if arity, ok := b.procedures[tok.Text]; ok {
		args, next, err := b.parseExpressions(pos+1, arity)
		if err != nil {
			return nil, pos, err
		}
		return ast.NewProcedureCall(tok.Text, args), next, nil
	}
	return nil, pos, &ParseError{Kind: ParseUndefinedProcedure, Pos: pos, Token: tok.Text}
}

// parseAssignment handles MAKE and ADDASSIGN: a quoted variable name
// followed by one value expression.
func (b *builder) parseAssignment(pos int, kind ast.AssignmentKind) (ast.Statement, int, error) {
	nameTok, ok := b.at(pos + 1)
	if !ok {
		return nil, pos, &ParseError{Kind: ParseMissingOperand, Pos: pos + 1, Expected: "a variable name"}
	}
	if nameTok.Kind != TokenLiteral {
		return nil, pos, &ParseError{Kind: ParseUnexpectedToken, Pos: pos + 1, Token: nameTok.Text, Expected: `a quoted variable name ("name)`}
	}
	value, next, err := b.parseExpression(pos + 2)
	if err != nil {
		return nil, pos, err
	}
	return ast.NewAssignment(kind, nameTok.Text, value), next, nil
}

// parseBlock expects [ at pos and parses statements up to the matching ].
// Nested blocks are consumed by the recursive statement parser, so the
// first close bracket seen at this level is the matching one.
func (b *builder) parseBlock(pos int) ([]ast.Statement, int, error) {
	open, ok := b.at(pos)
	if !ok {
		return nil, pos, &ParseError{Kind: ParseMissingOperand, Pos: pos, Expected: "a [ block"}
	}
	if open.Kind != TokenOpenBlock {
		return nil, pos, &ParseError{Kind: ParseUnexpectedToken, Pos: pos, Token: open.Text, Expected: "["}
	}
	block, next, err := b.parseStatements(pos+1, func(t Token) bool { return t.Kind == TokenCloseBlock })
	if err != nil {
		return nil, pos, err
	}
	closeTok, ok := b.at(next)
	if !ok || closeTok.Kind != TokenCloseBlock {
		return nil, pos, &ParseError{Kind: ParseUnterminatedBlock, Pos: pos}
	}
	return block, next + 1, nil
}

// parseProcedureDefinition handles TO name params... body END. Parameter
// names are declared as quoted words ("name) after the procedure name and
// referenced as :name inside the body; the first non-quoted token starts
// the body.
func (b *builder) parseProcedureDefinition(pos int) (ast.Statement, int, error) {
	nameTok, ok := b.at(pos + 1)
	if !ok {
		return nil, pos, &ParseError{Kind: ParseMissingOperand, Pos: pos + 1, Expected: "a procedure name"}
	}
	if nameTok.Kind != TokenWord || isReserved(nameTok.Text) {
		return nil, pos, &ParseError{Kind: ParseUnexpectedToken, Pos: pos + 1, Token: nameTok.Text, Expected: "a procedure name"}
	}
	name := nameTok.Text

	params := []string{}
	cursor := pos + 2
	for {
		tok, ok := b.at(cursor)
		if !ok {
			return nil, pos, &ParseError{Kind: ParseUnterminatedBlock, Pos: pos}
		}
		if tok.Kind != TokenLiteral {
			break
		}
		params = append(params, tok.Text)
		cursor++
	}

	// Visible to its own body, so recursive calls parse.
	b.procedures[name] = len(params)

	body, cursor, err := b.parseStatements(cursor, func(t Token) bool {
		return t.Kind == TokenWord && t.Text == "END"
	})
	if err != nil {
		return nil, pos, err
	}
	endTok, ok := b.at(cursor)
	if !ok || endTok.Kind != TokenWord || endTok.Text != "END" {
		return nil, pos, &ParseError{Kind: ParseUnterminatedBlock, Pos: pos}
	}
	return ast.NewProcedureDefinition(name, params, body), cursor + 1, nil
}

func (b *builder) parseExpressions(pos, count int) ([]ast.Expression, int, error) {
	exprs := make([]ast.Expression, 0, count)
	for i := 0; i < count; i++ {
		expr, next, err := b.parseExpression(pos)
		if err != nil {
			return nil, pos, err
		}
		exprs = append(exprs, expr)
		pos = next
	}
	return exprs, pos, nil
}
