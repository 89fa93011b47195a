package boolfunc

import (
	"github.com/qigel/liberty/reporter"
)

type parser struct {
	lx   *lexer
	cur  token
}

// Parse parses a Liberty pin-function expression into a symbolic Expr
// tree, e.g. "A' + B + C & D + E ^ F * G | (H + I)".
func Parse(s string) (Expr, error) {
	p := &parser{lx: newLexer(s)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, &reporter.BooleanParseError{
			Pos:     reporter.Pos{Col: p.cur.pos + 1},
			Message: "unexpected trailing input",
		}
	}
	return expr, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// parseOr: and_expr (("+"|"|") and_expr)*
func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := Or{first}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return terms, nil
}

// parseAnd: xor_expr ( [("&"|"*")] xor_expr )*
// A bare juxtaposition (no explicit operator) between two operands is an
// implicit AND, so after parsing one xor_expr we keep consuming further
// xor_exprs as long as the next token can start one.
func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	terms := And{first}
	for {
		if p.cur.kind == tokAnd {
			if err := p.advance(); err != nil {
				return nil, err
			}
			next, err := p.parseXor()
			if err != nil {
				return nil, err
			}
			terms = append(terms, next)
			continue
		}
		if p.startsOperand() {
			next, err := p.parseXor()
			if err != nil {
				return nil, err
			}
			terms = append(terms, next)
			continue
		}
		break
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return terms, nil
}

// parseXor: atom ("^" atom)*
func (p *parser) parseXor() (Expr, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	terms := Xor{first}
	for p.cur.kind == tokXor {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return terms, nil
}

// parseAtom: NAME | "!" atom | atom "'" | "(" or_expr ")"
func (p *parser) parseAtom() (Expr, error) {
	var e Expr
	switch p.cur.kind {
	case tokNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		e = Not{X: inner}
	case tokName:
		e = Var(p.cur.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, &reporter.BooleanParseError{
				Pos:     reporter.Pos{Col: p.cur.pos + 1},
				Message: "expected ')'",
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		e = inner
	default:
		return nil, &reporter.BooleanParseError{
			Pos:     reporter.Pos{Col: p.cur.pos + 1},
			Message: "expected a variable, '(', or '!'",
		}
	}

	// postfix negation, possibly repeated: A''
	for p.cur.kind == tokTick {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e = Not{X: e}
	}
	return e, nil
}

func (p *parser) startsOperand() bool {
	switch p.cur.kind {
	case tokName, tokNot, tokLParen:
		return true
	default:
		return false
	}
}
