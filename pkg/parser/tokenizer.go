package parser

import "strings"

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	// TokenWord is a bareword: command, keyword, operator, or procedure name.
	TokenWord TokenKind = iota
	// TokenLiteral is a quoted literal with the " prefix stripped.
	TokenLiteral
	// TokenVariable is a variable reference with the : prefix stripped.
	TokenVariable
	TokenOpenBlock
	TokenCloseBlock
)

// Token is a single lexical unit. Pos is the token's index in the stream,
// which the parser threads as its cursor; Line is 1-based source position
// for error reporting.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
	Line int
}

// Tokenize splits script text into an ordered token stream. Lines are
// trimmed, blank lines and // comments skipped, whitespace separates
// tokens (so brackets must be space-delimited). Bracket balance is checked
// here so the parser can assume every [ has a matching ].
func Tokenize(source string) ([]Token, error) {
	var tokens []Token
	depth := 0
	for lineIdx, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		for _, field := range strings.Fields(line) {
			tok := Token{Pos: len(tokens), Line: lineIdx + 1}
			switch {
			case field == "[":
				tok.Kind = TokenOpenBlock
				tok.Text = field
				depth++
			case field == "]":
				tok.Kind = TokenCloseBlock
				tok.Text = field
				depth--
				if depth < 0 {
					return nil, &LexError{Kind: LexUnbalancedBracket, Line: tok.Line, Token: "]"}
				}
			case strings.HasPrefix(field, `"`):
				body := strings.TrimPrefix(field, `"`)
				if body == "" {
					return nil, &LexError{Kind: LexEmptyLiteral, Line: tok.Line, Token: field}
				}
				tok.Kind = TokenLiteral
				tok.Text = body
			case strings.HasPrefix(field, ":"):
				body := strings.TrimPrefix(field, ":")
				if body == "" {
					return nil, &LexError{Kind: LexEmptyVariable, Line: tok.Line, Token: field}
				}
				tok.Kind = TokenVariable
				tok.Text = body
			default:
				tok.Kind = TokenWord
				tok.Text = field
			}
			tokens = append(tokens, tok)
		}
	}
	if depth != 0 {
		return nil, &LexError{Kind: LexUnbalancedBracket, Line: 0, Token: "["}
	}
	return tokens, nil
}
