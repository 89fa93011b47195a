package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the closed sum type for everything that can appear on the
// right-hand side of an attribute, as a group argument, or inside a
// vector/list. Every concrete variant implements isValue so the set of
// permissible types is checked at compile time, mirroring the closed
// ast.Node/ast.ValueNode interfaces the teacher grammar uses for its own
// expression nodes.
type Value interface {
	isValue()
	// Format renders the value the way it would appear in Liberty text.
	Format() string
}

// Number is any bare numeric literal, always stored at double precision
// regardless of whether the source text looked like an integer.
type Number float64

func (Number) isValue() {}

func (n Number) Format() string {
	return formatFloat(float64(n))
}

// WithUnit is a number immediately followed by a unit suffix, e.g. 1ns,
// 2.5e-1EV. The lexer is responsible for deciding that a trailing letter
// run is a unit and not exponent notation (see the parser package's
// readNumberOrUnit);
// by the time a WithUnit reaches this package that decision is final.
type WithUnit struct {
	Value float64
	Unit  string
}

func (WithUnit) isValue() {}

func (w WithUnit) Format() string {
	return formatFloat(w.Value) + w.Unit
}

// EscapedString is the unescaped inner text of a double-quoted literal:
// `\"` has been turned into `"` and any `\<newline>` line continuation
// has been removed.
type EscapedString string

func (EscapedString) isValue() {}

func (s EscapedString) Format() string {
	return `"` + strings.ReplaceAll(string(s), `"`, `\"`) + `"`
}

// Name is a bareword identifier: [A-Za-z_][A-Za-z0-9_.!]*
type Name string

func (Name) isValue() {}

func (n Name) Format() string {
	return string(n)
}

// ArithExpression is an unevaluated arithmetic expression over names and
// numbers, stored verbatim as a canonicalised, single-space-joined token
// sequence. It is intentionally opaque: this package never evaluates it.
type ArithExpression string

func (ArithExpression) isValue() {}

func (e ArithExpression) Format() string {
	return string(e)
}

// NameBitSelection is a bit-sliced identifier, e.g. A[25] (Lo is nil) or
// B[32:0] (Lo is non-nil).
type NameBitSelection struct {
	Name string
	Hi   int64
	Lo   *int64
}

func (NameBitSelection) isValue() {}

func (b NameBitSelection) Format() string {
	if b.Lo != nil {
		return fmt.Sprintf("%s[%d:%d]", b.Name, b.Hi, *b.Lo)
	}
	return fmt.Sprintf("%s[%d]", b.Name, b.Hi)
}

// Vector is a quoted, comma-separated run of numbers: "1, 2, 3".
type Vector []float64

func (Vector) isValue() {}

func (v Vector) Format() string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	return `"` + strings.Join(parts, ", ") + `"`
}

// List is the positional argument list of a complex attribute, e.g. the
// `(VDD, 1.0)` in `voltage_map(VDD, 1.0);`.
type List []Value

func (List) isValue() {}

func (l List) Format() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.Format()
	}
	return strings.Join(parts, ", ")
}

// formatFloat renders a float64 using the shortest decimal representation
// that reparses to the same value, so format(parse(x)) is stable under
// repeated round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
