// Package ljson implements the JSON projector from spec.md 4.G: it
// flattens a Group tree into nested map[string]interface{} values and
// marshals them with json-iterator/go rather than encoding/json, since
// production Liberty libraries can run to hundreds of megabytes and the
// projected JSON scales proportionally (grounded in the json-iterator
// stack the pack's DataDog-datadog-agent example depends on).
//
// The projection is lossy by design (spec.md 4.G): positional arguments
// beyond the first collapse, and round-tripping Liberty -> JSON -> Liberty
// is explicitly not a goal.
package ljson

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/qigel/liberty/ast"
	"github.com/qigel/liberty/reporter"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Project flattens g into the nested mapping spec.md 4.G describes. It
// is applied uniformly at every depth: the root library group, every
// non-cell child, every cell, and every descendant of a cell, all
// follow the same five rules. This generalises the source tool's
// hand-unrolled, depth-limited version (which only special-cases
// library -> group -> cell -> pin -> timing -> table) to arbitrary
// nesting, per spec.md 4.G's instruction to pick and document the
// canonical strategy rather than reproduce the source verbatim.
func Project(g *ast.Group) (map[string]interface{}, error) {
	return projectGroup(g)
}

func projectGroup(g *ast.Group) (map[string]interface{}, error) {
	out := make(map[string]interface{})

	if err := projectAttributes(out, g.Attributes); err != nil {
		return nil, err
	}
	projectDefines(out, g.Defines)
	if err := projectChildren(out, g.Groups); err != nil {
		return nil, err
	}
	return out, nil
}

// projectAttributes implements rule 2: a singleton attribute name
// projects to a bare key; a repeated one collects every value, in
// declaration order, under "comp_attribute,<name>".
func projectAttributes(out map[string]interface{}, attrs []ast.Attribute) error {
	counts := make(map[string]int, len(attrs))
	for _, a := range attrs {
		counts[a.Name]++
	}
	order := make([]string, 0, len(attrs))
	values := make(map[string][]interface{}, len(attrs))
	for _, a := range attrs {
		encoded, err := encodeValue(a.Value)
		if err != nil {
			return err
		}
		if _, seen := values[a.Name]; !seen {
			order = append(order, a.Name)
		}
		values[a.Name] = append(values[a.Name], encoded)
	}
	for _, name := range order {
		vs := values[name]
		if counts[name] == 1 {
			out[name] = vs[0]
		} else {
			out["comp_attribute,"+name] = vs
		}
	}
	return nil
}

// projectDefines implements rule 3.
func projectDefines(out map[string]interface{}, defines []ast.Define) {
	if len(defines) == 0 {
		return
	}
	list := make([]interface{}, len(defines))
	for i, d := range defines {
		list[i] = map[string]interface{}{
			"attribute_name": d.AttributeName,
			"group_name":     d.GroupName,
			"attribute_type": d.AttributeType,
		}
	}
	out["define"] = list
}

// projectChildren implements rule 4: `cell` children collect under a
// single "cells" mapping keyed by first argument; other children with a
// first argument get the composite key "<group_name>,<first_arg>";
// children with no first argument recurse under their bare group name,
// becoming a list if more than one sibling shares that name.
func projectChildren(out map[string]interface{}, children []*ast.Group) error {
	var cells map[string]interface{}
	bareOrder := make([]string, 0)
	bareGroups := make(map[string][]*ast.Group)

	for _, child := range children {
		childProj, err := projectGroup(child)
		if err != nil {
			return err
		}
		if child.GroupName == "cell" {
			if cells == nil {
				cells = make(map[string]interface{})
			}
			key, _ := child.FirstArg()
			cells[key] = childProj
			continue
		}
		if first, ok := child.FirstArg(); ok {
			out[child.GroupName+","+first] = childProj
			continue
		}
		if _, seen := bareGroups[child.GroupName]; !seen {
			bareOrder = append(bareOrder, child.GroupName)
		}
		bareGroups[child.GroupName] = append(bareGroups[child.GroupName], child)
	}

	if cells != nil {
		out["cells"] = cells
	}

	for _, name := range bareOrder {
		group := bareGroups[name]
		if len(group) == 1 {
			proj, err := projectGroup(group[0])
			if err != nil {
				return err
			}
			out[name] = proj
			continue
		}
		list := make([]interface{}, len(group))
		for i, child := range group {
			proj, err := projectGroup(child)
			if err != nil {
				return err
			}
			list[i] = proj
		}
		out[name] = list
	}
	return nil
}

// encodeValue implements rule 5: every Value variant collapses to the
// JSON representation of its textual form, except Number (a JSON
// number) and Vector/List (JSON arrays of their encoded elements).
func encodeValue(v ast.Value) (interface{}, error) {
	switch vv := v.(type) {
	case ast.Number:
		return float64(vv), nil
	case ast.EscapedString:
		return string(vv), nil
	case ast.WithUnit:
		return vv.Format(), nil
	case ast.ArithExpression:
		return string(vv), nil
	case ast.NameBitSelection:
		return vv.Format(), nil
	case ast.Name:
		return string(vv), nil
	case ast.Vector:
		floats := make([]float64, len(vv))
		copy(floats, vv)
		return floats, nil
	case ast.List:
		list := make([]interface{}, len(vv))
		for i, elem := range vv {
			encoded, err := encodeValue(elem)
			if err != nil {
				return nil, err
			}
			list[i] = encoded
		}
		return list, nil
	default:
		return nil, &reporter.TypeError{ValueKind: fmt.Sprintf("%T", v)}
	}
}

// Encode projects g and writes it to w as JSON, indented when pretty is
// true.
func Encode(w io.Writer, g *ast.Group, pretty bool) error {
	projected, err := Project(g)
	if err != nil {
		return err
	}
	enc := api.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(projected)
}

// Marshal projects g and returns its JSON encoding as a byte slice.
func Marshal(g *ast.Group, pretty bool) ([]byte, error) {
	projected, err := Project(g)
	if err != nil {
		return nil, err
	}
	if pretty {
		return api.MarshalIndent(projected, "", "  ")
	}
	return api.Marshal(projected)
}
