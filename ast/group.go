package ast

// Attribute is a name/value pair under a Group. Simple attributes have a
// scalar Value; complex attributes have a List value. The Group that owns
// an Attribute keeps attributes in an order-preserving, duplicate-permitting
// slice rather than a map: Liberty constructs like repeated
// `fanout_length` entries would otherwise collapse into one.
type Attribute struct {
	Name  string
	Value Value
}

// Define is a user-declared attribute extension: `define(attr, group,
// type);`. Defines are stored separately from Attributes on a Group and
// are always emitted before them when formatting.
type Define struct {
	AttributeName string
	GroupName     string
	AttributeType string
}

// Group is a named, argument-bearing block: `name (args) { ... }`. It is
// the sole container type in the model; a parsed library is either a
// single root Group (Parse) or a slice of them (ParseMulti). The tree is
// arena-free and acyclic: a Group is exclusively owned by its parent, and
// selectors return borrowed references that are valid for as long as the
// caller keeps the root Group reachable.
type Group struct {
	GroupName  string
	Args       []Value
	Attributes []Attribute
	Defines    []Define
	Groups     []*Group

	// index is built lazily by indexChildren and caches Groups by
	// GroupName for sub-linear repeated lookups on libraries with many
	// same-named children (e.g. thousands of `cell` groups). It is
	// invalidated whenever Groups is mutated through AddGroup.
	index map[string][]*Group
}

// NewGroup constructs an empty Group with the given name. Args,
// Attributes, Defines and Groups can be appended directly, or built up via
// AddGroup/SetAttribute.
func NewGroup(groupName string, args ...Value) *Group {
	return &Group{GroupName: groupName, Args: args}
}

// AddGroup appends a child group and invalidates the lookup index.
func (g *Group) AddGroup(child *Group) {
	g.Groups = append(g.Groups, child)
	g.index = nil
}

// SetAttribute appends a new attribute. It never overwrites an existing
// one: use GetAttributes/Attributes slice manipulation directly if you
// need to replace rather than append.
func (g *Group) SetAttribute(name string, value Value) {
	g.Attributes = append(g.Attributes, Attribute{Name: name, Value: value})
}

// firstArg returns the string form of the group's first positional
// argument, or "" if it has none. Used by the cell/pin/timing selectors
// and the JSON projector, both of which key children by first argument.
func (g *Group) firstArg() (string, bool) {
	if len(g.Args) == 0 {
		return "", false
	}
	if n, ok := g.Args[0].(Name); ok {
		return string(n), true
	}
	if s, ok := g.Args[0].(EscapedString); ok {
		return string(s), true
	}
	return g.Args[0].Format(), true
}

// FirstArg is the exported form of firstArg, for packages outside ast
// (the JSON projector) that need to key on a group's first positional
// argument the same way the selectors in select.go do.
func (g *Group) FirstArg() (string, bool) {
	return g.firstArg()
}
