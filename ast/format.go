package ast

import (
	"strings"
)

const indentUnit = "  "

// Format renders the group as Liberty text: `name (args) { ... }` with
// two-space indentation per nesting level. Re-parsing the result
// reproduces a structurally equal tree (modulo whitespace), per the
// round-trip contract.
func (g *Group) Format() string {
	return strings.Join(g.formatLines(""), "\n")
}

// String satisfies fmt.Stringer so a *Group prints as Liberty text
// wherever %v/%s is used on it, the same convention the teacher's AST
// node types follow.
func (g *Group) String() string {
	return g.Format()
}

func (g *Group) formatLines(indent string) []string {
	childIndent := indent + indentUnit
	var lines []string
	lines = append(lines, indent+g.header())

	for _, d := range g.Defines {
		lines = append(lines, childIndent+formatDefine(d)+";")
	}
	for _, attr := range g.Attributes {
		lines = append(lines, formatAttributeLines(attr, childIndent)...)
	}
	for _, child := range g.Groups {
		lines = append(lines, child.formatLines(childIndent)...)
	}

	lines = append(lines, indent+"}")
	return lines
}

func (g *Group) header() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.Format()
	}
	return g.GroupName + " (" + strings.Join(parts, ", ") + ") {"
}

func formatDefine(d Define) string {
	return `define ("` + d.AttributeName + `", "` + d.GroupName + `", "` + d.AttributeType + `")`
}

// formatAttributeLines renders one Attribute as one or more output lines.
// A complex attribute (List value) whose elements include an
// EscapedString is split across lines with backslash continuations,
// matching the Python formatter's special-case for multi-line string
// tables (`values("0001, ...", \` style); any other complex attribute is
// rendered inline. A simple attribute is always a single `name: value;`
// line.
func formatAttributeLines(attr Attribute, indent string) []string {
	list, isComplex := attr.Value.(List)
	if !isComplex {
		return []string{indent + attr.Name + ": " + attr.Value.Format() + ";"}
	}

	hasEscapedString := false
	for _, v := range list {
		if _, ok := v.(EscapedString); ok {
			hasEscapedString = true
			break
		}
	}

	if !hasEscapedString {
		return []string{indent + attr.Name + " (" + list.Format() + ");"}
	}

	lines := []string{indent + attr.Name + " ("}
	for i, v := range list {
		suffix := ""
		if i < len(list)-1 {
			suffix = `, \`
		}
		lines = append(lines, indent+indentUnit+v.Format()+suffix)
	}
	lines = append(lines, indent+");")
	return lines
}
