// Package liberty is the public facade over the parser, ast, boolfunc,
// and ljson packages: Parse/ParseMulti a Liberty buffer into a Group
// tree, then query, mutate, format, or project it to JSON.
package liberty

import (
	"io"

	"github.com/qigel/liberty/ast"
	"github.com/qigel/liberty/ljson"
	"github.com/qigel/liberty/parser"
)

// Group is a parsed Liberty group: a library, a cell, a pin, a timing
// arc, or any other named, brace-delimited block. It is an alias for
// ast.Group so callers never need to import the ast package directly
// for the common case.
type Group = ast.Group

// Value is the closed sum type of everything that can appear as a
// group argument or an attribute's right-hand side.
type Value = ast.Value

// Parse parses a buffer holding exactly one top-level group (the usual
// case: a single `library (...) { ... }` block) into a Group tree.
func Parse(text string) (*Group, error) {
	return parser.Parse(text)
}

// ParseMulti parses a buffer holding any number of independent
// top-level groups, such as several concatenated `library` blocks.
func ParseMulti(text string) ([]*Group, error) {
	return parser.ParseMulti(text)
}

// ParseLenient parses text like Parse, but recovers from statement-level
// errors instead of aborting on the first one, returning a best-effort
// Group alongside every error it accumulated along the way.
func ParseLenient(text string) (*Group, []error) {
	return parser.ParseLenient(text)
}

// ToJSON projects g to the nested mapping described by spec.md 4.G and
// writes it to w, indented when pretty is true.
func ToJSON(g *Group, w io.Writer, pretty bool) error {
	return ljson.Encode(w, g, pretty)
}
