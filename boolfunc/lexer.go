package boolfunc

import (
	"fmt"

	"github.com/qigel/liberty/reporter"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNot     // !
	tokTick    // '
	tokXor     // ^
	tokAnd     // & or *
	tokOr      // + or |
	tokLParen  // (
	tokRParen  // )
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer tokenizes a boolean-function expression. Whitespace is
// significant only in that it can stand for an implicit AND between two
// operands; the lexer itself discards it and lets the parser notice two
// adjacent operand-starting tokens with no explicit operator between
// them.
type lexer struct {
	src []rune
	pos int
}

func newLexer(s string) *lexer {
	return &lexer{src: []rune(s)}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[l.pos]
	switch c {
	case '!':
		l.pos++
		return token{kind: tokNot, text: "!", pos: start}, nil
	case '\'':
		l.pos++
		return token{kind: tokTick, text: "'", pos: start}, nil
	case '^':
		l.pos++
		return token{kind: tokXor, text: "^", pos: start}, nil
	case '&', '*':
		l.pos++
		return token{kind: tokAnd, text: string(c), pos: start}, nil
	case '+', '|':
		l.pos++
		return token{kind: tokOr, text: string(c), pos: start}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	}
	if c == '0' || c == '1' {
		l.pos++
		return token{kind: tokName, text: string(c), pos: start}, nil
	}
	if isNameStart(c) {
		for l.pos < len(l.src) && isNameRune(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokName, text: string(l.src[start:l.pos]), pos: start}, nil
	}
	return token{}, &reporter.BooleanParseError{
		Pos:     reporter.Pos{Col: start + 1},
		Message: fmt.Sprintf("unexpected character %q", c),
	}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameRune(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9')
}
