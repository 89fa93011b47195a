// Package boolfunc implements the pin logic function sub-grammar used in
// Liberty `function` attributes: its own small precedence-climbing
// lexer/parser independent of the main Liberty grammar, ported from
// original_source/liberty/boolean_functions.py.
//
// Precedence, tightest to loosest: unary NOT (prefix ! or postfix ') >
// XOR (^) > AND (& or * or whitespace-juxtaposition) > OR (+ or |).
package boolfunc

import "strings"

// Expr is the closed sum type for a parsed boolean expression tree.
type Expr interface {
	isExpr()
	// Format renders the expression in Liberty pin-function syntax.
	Format() string
}

// Var is a named signal, e.g. a pin name.
type Var string

func (Var) isExpr() {}

func (v Var) Format() string { return string(v) }

// Not is a logical negation.
type Not struct{ X Expr }

func (Not) isExpr() {}

func (n Not) Format() string { return "!" + n.X.Format() }

// And is a conjunction of two or more operands, flattened so that
// `A & B & C` is one And{A, B, C} rather than nested pairs.
type And []Expr

func (And) isExpr() {}

func (a And) Format() string {
	parts := make([]string, len(a))
	for i, e := range a {
		parts[i] = e.Format()
	}
	return strings.Join(parts, " & ")
}

// Or is a disjunction of two or more operands.
type Or []Expr

func (Or) isExpr() {}

func (o Or) Format() string {
	parts := make([]string, len(o))
	for i, e := range o {
		parts[i] = e.Format()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// Xor is an exclusive-or of two or more operands.
type Xor []Expr

func (Xor) isExpr() {}

func (x Xor) Format() string {
	parts := make([]string, len(x))
	for i, e := range x {
		parts[i] = e.Format()
	}
	return "(" + strings.Join(parts, " ^ ") + ")"
}

// Format renders e wrapped in the outermost parens the original tool
// always emits around a whole pin function.
func Format(e Expr) string {
	return "(" + e.Format() + ")"
}
