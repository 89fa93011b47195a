package ast

import (
	art "github.com/kralicky/go-adaptive-radix-tree"

	"github.com/qigel/liberty/reporter"
)

// indexChildren lazily builds a radix-tree index of Groups keyed by
// GroupName, the way the teacher's linker builds a symbol index over a
// file's declarations (linker/symbols.go) rather than re-scanning a slice
// on every lookup. Liberty libraries routinely carry many thousands of
// `cell` children; GetGroups/GetGroup would otherwise be O(n) per call.
func (g *Group) indexChildren() map[string][]*Group {
	if g.index != nil {
		return g.index
	}
	tree := art.New()
	order := make(map[string]int, len(g.Groups))
	for i, child := range g.Groups {
		key := art.Key(child.GroupName)
		if v, found := tree.Search(key); found {
			bucket := v.([]*Group)
			tree.Insert(key, append(bucket, child))
		} else {
			tree.Insert(key, []*Group{child})
		}
		order[child.GroupName] = i
	}
	idx := make(map[string][]*Group, tree.Size())
	tree.ForEach(func(node art.Node) bool {
		idx[string(node.Key())] = node.Value().([]*Group)
		return true
	})
	g.index = idx
	return idx
}

// GetGroups returns every child group named typeName, in declaration
// order. If argument is non-empty, results are further filtered to those
// whose first positional argument equals it.
func (g *Group) GetGroups(typeName string, argument ...string) []*Group {
	bucket := g.indexChildren()[typeName]
	if len(argument) == 0 || argument[0] == "" {
		out := make([]*Group, len(bucket))
		copy(out, bucket)
		return out
	}
	want := argument[0]
	var out []*Group
	for _, child := range bucket {
		if first, ok := child.firstArg(); ok && first == want {
			out = append(out, child)
		}
	}
	return out
}

// GetGroup returns the single child group matching typeName (and
// optionally argument). It is an error for zero or more than one to
// match: callers that want "zero is fine" should use GetGroups instead.
func (g *Group) GetGroup(typeName string, argument ...string) (*Group, error) {
	matches := g.GetGroups(typeName, argument...)
	if len(matches) != 1 {
		key := typeName
		if len(argument) > 0 && argument[0] != "" {
			key = typeName + "(" + argument[0] + ")"
		}
		return nil, &reporter.NotUniqueError{Key: key, Count: len(matches)}
	}
	return matches[0], nil
}

// GetAttributes returns the values of every attribute named key, in
// declaration order. An empty slice (not an error) means the attribute is
// simply absent.
func (g *Group) GetAttributes(key string) []Value {
	var out []Value
	for _, a := range g.Attributes {
		if a.Name == key {
			out = append(out, a.Value)
		}
	}
	return out
}

// GetAttribute returns the single value of the attribute named key. It is
// an error for more than one attribute with that name to exist; if none
// exists, ok is false and err is nil.
func (g *Group) GetAttribute(key string) (value Value, ok bool, err error) {
	values := g.GetAttributes(key)
	switch len(values) {
	case 0:
		return nil, false, nil
	case 1:
		return values[0], true, nil
	default:
		return nil, false, &reporter.NotUniqueError{Key: key, Count: len(values)}
	}
}

// GetAttributeOr is GetAttribute with a default substituted for the
// not-found case, mirroring the Python model's `get_attribute(key,
// default)`.
func (g *Group) GetAttributeOr(key string, fallback Value) (Value, error) {
	v, ok, err := g.GetAttribute(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

// Has reports whether at least one attribute named key exists.
func (g *Group) Has(key string) bool {
	for _, a := range g.Attributes {
		if a.Name == key {
			return true
		}
	}
	return false
}
