package parser

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/qigel/liberty/ast"
	"github.com/qigel/liberty/reporter"
)

// parser turns a token stream into an *ast.Group tree. One method per
// grammar production, the way the teacher's (goyacc-generated) parser
// is organized around one rule per production, but hand-written since
// Liberty's grammar is small enough for plain recursive descent —
// spec.md 4.B explicitly allows this as an alternative to LALR as long
// as the unit/exponent split happens in the lexer, which it does (see
// lexer.go readNumberOrUnit).
type parser struct {
	lx      *lexer
	cur     token
	handler *reporter.Handler
}

func newParser(src string) *parser {
	return &parser{lx: newLexer(src), handler: &reporter.Handler{}}
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// advanceSigned is used right before parsing a value, where a leading
// '-' or '+' must be read as part of a number rather than as its own
// punctuation rune.
func (p *parser) advanceSigned() error {
	t, err := p.lx.nextSigned()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &reporter.ParseError{
		Pos:     p.cur.pos,
		Message: fmt.Sprintf(format, args...),
		Found:   p.cur.describe(),
	}
}

func (t token) describe() string {
	switch t.kind {
	case tEOF:
		return "end of input"
	case tName:
		return "name " + strconv_Quote(t.text)
	case tNumber:
		return "number"
	case tNumberUnit:
		return "number with unit"
	case tString:
		return "string"
	case tRune:
		return strconv_Quote(t.text)
	default:
		return "token"
	}
}

// strconv_Quote avoids importing strconv twice under a different name;
// kept as a tiny local wrapper so describe() reads cleanly above.
func strconv_Quote(s string) string { return "\"" + s + "\"" }

func (p *parser) expectRune(r string) error {
	if p.cur.kind != tRune || p.cur.text != r {
		return p.errorf("expected %q", r)
	}
	return p.advance()
}

func (p *parser) isRune(r string) bool {
	return p.cur.kind == tRune && p.cur.text == r
}

// Parse parses exactly one top-level group, as required for a single
// Liberty library file (spec.md 4.B). It is an error for the buffer to
// contain zero or more than one top-level group; use ParseMulti for
// buffers holding several independent libraries.
func Parse(src string) (*ast.Group, error) {
	p := newParser(src)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.kind == tEOF {
		return nil, &reporter.ParseError{Pos: p.cur.pos, Message: "empty input: expected a top-level group"}
	}
	g, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tEOF {
		return nil, p.errorf("expected end of input after top-level group %q", g.GroupName)
	}
	return g, nil
}

// ParseLenient parses src like Parse, but does not abort on the first
// statement-level error: it routes every one through a reporter.Handler
// with Continue set, recovering at the next statement boundary and
// carrying on, so a single malformed attribute or define in an otherwise
// valid library doesn't prevent the rest of it from being parsed. It
// returns the best-effort group (nil only if the top-level group itself
// could not be opened at all) alongside every error collected along the
// way, in the order encountered.
func ParseLenient(src string) (*ast.Group, []error) {
	p := newParser(src)
	p.handler.Continue = true
	if err := p.advance(); err != nil {
		return nil, []error{err}
	}
	if p.cur.kind == tEOF {
		return nil, []error{&reporter.ParseError{Pos: p.cur.pos, Message: "empty input: expected a top-level group"}}
	}
	g, err := p.parseGroup()
	if err != nil {
		p.handler.HandleError(err)
		return nil, p.handler.Errors()
	}
	if p.cur.kind != tEOF {
		p.handler.HandleError(p.errorf("expected end of input after top-level group %q", g.GroupName))
	}
	return g, p.handler.Errors()
}

// ParseMulti parses a buffer holding any number of independent
// top-level groups concatenated back to back (e.g. several `library`
// blocks). Groups are split on brace-depth-0 boundaries first, then
// parsed independently in parallel via errgroup, mirroring the way the
// teacher's compiler.go fans file-level parses out across a
// golang.org/x/sync/errgroup (adapted here to chunk-level rather than
// file-level granularity, since there is only one buffer).
func ParseMulti(src string) ([]*ast.Group, error) {
	chunks, err := splitTopLevelGroups(src)
	if err != nil {
		return nil, err
	}
	results := make([]*ast.Group, len(chunks))
	var eg errgroup.Group
	for i, chunk := range chunks {
		i, chunk := i, chunk
		eg.Go(func() error {
			g, err := Parse(chunk)
			if err != nil {
				return err
			}
			results[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// splitTopLevelGroups scans src for balanced-brace, depth-0 boundaries
// and returns each top-level group's source text as its own chunk. It
// is comment- and string-aware so that a brace inside a quoted string
// or a /* */ comment never perturbs the depth count.
func splitTopLevelGroups(src string) ([]string, error) {
	runes := []rune(src)
	var chunks []string
	i := 0
	n := len(runes)
	for i < n {
		for i < n && isSpaceOrComment(runes, &i) {
		}
		if i >= n {
			break
		}
		start := i
		depth := 0
		started := false
		for i < n {
			c := runes[i]
			switch {
			case c == '/' && i+1 < n && runes[i+1] == '*':
				for i < n && !(runes[i] == '*' && i+1 < n && runes[i+1] == '/') {
					i++
				}
				i += 2
			case c == '"':
				i++
				for i < n && runes[i] != '"' {
					if runes[i] == '\\' && i+1 < n {
						i += 2
						continue
					}
					i++
				}
				i++
			case c == '{':
				depth++
				started = true
				i++
			case c == '}':
				depth--
				i++
				if started && depth == 0 {
					goto closed
				}
			default:
				i++
			}
		}
	closed:
		if depth != 0 {
			return nil, &reporter.ParseError{Message: "unbalanced braces while splitting multi-library buffer"}
		}
		chunks = append(chunks, string(runes[start:i]))
	}
	return chunks, nil
}

func isSpaceOrComment(runes []rune, i *int) bool {
	n := len(runes)
	if *i >= n {
		return false
	}
	c := runes[*i]
	if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
		*i++
		return true
	}
	if c == '/' && *i+1 < n && runes[*i+1] == '*' {
		*i += 2
		for *i < n && !(runes[*i] == '*' && *i+1 < n && runes[*i+1] == '/') {
			*i++
		}
		*i += 2
		return true
	}
	return false
}

// parseGroup: NAME "(" [value ("," value)*] ")" "{" statement* "}"
func (p *parser) parseGroup() (*ast.Group, error) {
	if p.cur.kind != tName {
		return nil, p.errorf("expected a group name")
	}
	name := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectRune("("); err != nil {
		return nil, err
	}
	var args []ast.Value
	if !p.isRune(")") {
		for {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			args = append(args, v)
			if p.isRune(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectRune(")"); err != nil {
		return nil, err
	}
	if err := p.expectRune("{"); err != nil {
		return nil, err
	}
	g := ast.NewGroup(name, args...)
	for !p.isRune("}") {
		if p.cur.kind == tEOF {
			return nil, p.errorf("unexpected end of input inside group %q", name)
		}
		if err := p.parseStatement(g); err != nil {
			if !p.handler.HandleError(err) {
				return nil, err
			}
			if err := p.recoverToStatementBoundary(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // consume "}"
		return nil, err
	}
	return g, nil
}

// recoverToStatementBoundary is called after a statement-level error has
// been routed through p.handler and the handler asked to keep going
// (Handler.Continue). It skips tokens until the next top-level ';' or the
// closing '}' of the group currently being parsed, so parsing can resume
// at the next statement instead of aborting. Only used by ParseLenient;
// Parse/ParseMulti never set Continue, so HandleError always returns
// false and this is never reached from them.
func (p *parser) recoverToStatementBoundary() error {
	depth := 0
	for {
		switch {
		case p.cur.kind == tEOF:
			return p.errorf("unexpected end of input while recovering from a parse error")
		case p.isRune("{"):
			depth++
		case p.isRune("}"):
			if depth == 0 {
				// Leave the closing brace for the enclosing loop to consume.
				return nil
			}
			depth--
		case p.isRune(";") && depth == 0:
			return p.advance()
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

// parseStatement dispatches on lookahead to a define, a nested group, or
// a simple/complex attribute. All three start with a NAME, so the
// decision is made on the token that follows the name.
func (p *parser) parseStatement(g *ast.Group) error {
	if p.cur.kind != tName {
		return p.errorf("expected a statement (attribute, group, or define)")
	}
	name := p.cur.text

	if name == "define" {
		return p.parseDefine(g)
	}

	if err := p.advance(); err != nil {
		return err
	}

	switch {
	case p.isRune(":"):
		return p.parseSimpleAttribute(g, name)
	case p.isRune("("):
		return p.parseParenStatement(g, name)
	default:
		return p.errorf("expected ':' or '(' after %q", name)
	}
}

// parseSimpleAttribute: NAME ":" value ";"?
func (p *parser) parseSimpleAttribute(g *ast.Group, name string) error {
	if err := p.advance(); err != nil { // consume ':'
		return err
	}
	v, err := p.parseValue()
	if err != nil {
		return err
	}
	g.Attributes = append(g.Attributes, ast.Attribute{Name: name, Value: v})
	p.consumeOptionalSemicolon()
	return nil
}

// parseParenStatement handles the shared prefix of complex attributes
// and groups, both of which look like `NAME "(" ... ")"` up to that
// point: `NAME "(" args ")" "{"` is a group, `NAME "(" args ")" ";"?` (no
// following "{") is a complex attribute.
func (p *parser) parseParenStatement(g *ast.Group, name string) error {
	if err := p.advance(); err != nil { // consume '('
		return err
	}
	var args []ast.Value
	if !p.isRune(")") {
		for {
			v, err := p.parseValue()
			if err != nil {
				return err
			}
			args = append(args, v)
			if p.isRune(",") {
				if err := p.advance(); err != nil {
					return err
				}
				continue
			}
			break
		}
	}
	if err := p.expectRune(")"); err != nil {
		return err
	}
	if p.isRune("{") {
		if err := p.advance(); err != nil {
			return err
		}
		child := ast.NewGroup(name, args...)
		for !p.isRune("}") {
			if p.cur.kind == tEOF {
				return p.errorf("unexpected end of input inside group %q", name)
			}
			if err := p.parseStatement(child); err != nil {
				if !p.handler.HandleError(err) {
					return err
				}
				if err := p.recoverToStatementBoundary(); err != nil {
					return err
				}
			}
		}
		if err := p.advance(); err != nil { // consume '}'
			return err
		}
		g.AddGroup(child)
		return nil
	}
	g.Attributes = append(g.Attributes, ast.Attribute{Name: name, Value: ast.List(args)})
	p.consumeOptionalSemicolon()
	return nil
}

// parseDefine: "define" "(" NAME "," NAME "," NAME ")" ";"?
func (p *parser) parseDefine(g *ast.Group) error {
	if err := p.advance(); err != nil { // consume "define"
		return err
	}
	if err := p.expectRune("("); err != nil {
		return err
	}
	attrName, err := p.parseDefineArg()
	if err != nil {
		return err
	}
	if err := p.expectRune(","); err != nil {
		return err
	}
	groupName, err := p.parseDefineArg()
	if err != nil {
		return err
	}
	if err := p.expectRune(","); err != nil {
		return err
	}
	attrType, err := p.parseDefineArg()
	if err != nil {
		return err
	}
	if err := p.expectRune(")"); err != nil {
		return err
	}
	p.consumeOptionalSemicolon()
	g.Defines = append(g.Defines, ast.Define{
		AttributeName: attrName,
		GroupName:     groupName,
		AttributeType: attrType,
	})
	return nil
}

// parseDefineArg accepts a bare NAME or a quoted string as a define
// argument. Liberty defines in practice only ever use plain identifiers
// (float, string, boolean, integer, ...), so the broader
// comma/colon/dash-tolerant unquoted word the original grammar allows
// here is intentionally not special-cased; see DESIGN.md.
func (p *parser) parseDefineArg() (string, error) {
	switch p.cur.kind {
	case tName:
		s := p.cur.text
		return s, p.advance()
	case tString:
		s := p.cur.text
		return s, p.advance()
	default:
		return "", p.errorf("expected a define argument")
	}
}

func (p *parser) consumeOptionalSemicolon() {
	if p.isRune(";") {
		_ = p.advance()
	}
}

// parseValue parses any of the value alternatives: name, version
// string, number, number-with-unit, vector, escaped string, bit
// selection, or arithmetic expression. The caller has already loaded the
// value's first token into p.cur. If that token is a '-' or '+' rune,
// the source is re-lexed from the sign with advanceSigned so that a
// signed literal such as `-1.5` reads as one number.
func (p *parser) parseValue() (ast.Value, error) {
	if p.isRune("-") || p.isRune("+") {
		p.lx.pos = p.cur.pos.Offset
		if err := p.advanceSigned(); err != nil {
			return nil, err
		}
	}
	return p.finishValue()
}

// finishValue consumes the token already loaded into p.cur (set up by
// the caller, see parseValue) and builds the corresponding ast.Value,
// continuing on to parse an arithmetic expression or bit selection if
// what follows demands it.
func (p *parser) finishValue() (ast.Value, error) {
	switch p.cur.kind {
	case tNumber:
		first := p.cur.num
		if err := p.advance(); err != nil {
			return nil, err
		}
		// versionstring: NUMBER NUMBER (two numbers separated by
		// whitespace with no operator), e.g. `3 0` as a library revision.
		if p.cur.kind == tNumber {
			second := p.cur.num
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ast.EscapedString(fmt.Sprintf("%s %s", formatPlain(first), formatPlain(second))), nil
		}
		if p.isArithOperator() {
			return p.continueArith(formatPlain(first))
		}
		return ast.Number(first), nil
	case tNumberUnit:
		v := ast.WithUnit{Value: p.cur.num, Unit: p.cur.text}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return v, nil
	case tString:
		content := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if vec, ok := tryParseVector(content); ok {
			return vec, nil
		}
		return ast.EscapedString(content), nil
	case tName:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.isRune("[") {
			return p.finishBitSelection(name)
		}
		if p.isArithOperator() {
			return p.continueArith(name)
		}
		return ast.Name(name), nil
	default:
		return nil, p.errorf("expected a value")
	}
}

// isArithOperator reports whether the current token is one of the
// binary arithmetic operators (+ - * /) appearing between two value
// tokens, which the grammar folds into a single opaque
// ArithExpression rather than a structured tree (spec.md 3, 4.B).
func (p *parser) isArithOperator() bool {
	if p.cur.kind != tRune {
		return false
	}
	switch p.cur.text {
	case "+", "-", "*", "/":
		return true
	default:
		return false
	}
}

// continueArith accumulates `first <op> operand <op> operand ...` into
// a single ArithExpression string, re-lexing operands with
// advanceSigned so a unary minus after an operator reads as part of the
// next number rather than as another operator.
func (p *parser) continueArith(first string) (ast.Value, error) {
	var b strings.Builder
	b.WriteString(first)
	for p.isArithOperator() {
		op := p.cur.text
		b.WriteString(" ")
		b.WriteString(op)
		b.WriteString(" ")
		if err := p.advanceSigned(); err != nil {
			return nil, err
		}
		operand, err := p.arithOperandText()
		if err != nil {
			return nil, err
		}
		b.WriteString(operand)
	}
	return ast.ArithExpression(b.String()), nil
}

// arithOperandText consumes the token already in p.cur (a NAME or
// NUMBER) and returns its textual form for splicing into an
// ArithExpression.
func (p *parser) arithOperandText() (string, error) {
	switch p.cur.kind {
	case tNumber:
		s := formatPlain(p.cur.num)
		return s, p.advance()
	case tNumberUnit:
		s := formatPlain(p.cur.num) + p.cur.text
		return s, p.advance()
	case tName:
		s := p.cur.text
		return s, p.advance()
	default:
		return "", p.errorf("expected an operand in arithmetic expression")
	}
}

// finishBitSelection parses the `[hi]` or `[hi:lo]` suffix after a bare
// name, e.g. `bus[3:0]`.
func (p *parser) finishBitSelection(name string) (ast.Value, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	if p.cur.kind != tNumber {
		return nil, p.errorf("expected a bit index")
	}
	hi := int64(p.cur.num)
	if err := p.advance(); err != nil {
		return nil, err
	}
	var lo *int64
	if p.isRune(":") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind != tNumber {
			return nil, p.errorf("expected a bit index")
		}
		v := int64(p.cur.num)
		lo = &v
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expectRune("]"); err != nil {
		return nil, err
	}
	return ast.NameBitSelection{Name: name, Hi: hi, Lo: lo}, nil
}

// formatPlain renders a float64 the same way ast's formatFloat does,
// for splicing numeric literals back into ArithExpression/versionstring
// text; kept local to avoid exporting formatFloat from ast just for
// this.
func formatPlain(f float64) string {
	return ast.Number(f).Format()
}
