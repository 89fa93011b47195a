package ast

import (
	"sort"

	"github.com/qigel/liberty/reporter"
)

// Cell selects a `cell` child group by name from a library Group, the
// way `original_source/liberty/types.py`'s select_cell does. On a miss,
// the error enumerates every cell name actually present so the caller
// knows what they could have asked for instead.
func (g *Group) Cell(name string) (*Group, error) {
	return g.selectByFirstArg("cell", name)
}

// Pin selects a `pin` child group by name from a cell Group.
func (g *Group) Pin(name string) (*Group, error) {
	return g.selectByFirstArg("pin", name)
}

func (g *Group) selectByFirstArg(groupName, name string) (*Group, error) {
	candidates := g.GetGroups(groupName)
	for _, c := range candidates {
		if first, ok := c.firstArg(); ok && first == name {
			return c, nil
		}
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if first, ok := c.firstArg(); ok {
			names = append(names, first)
		}
	}
	sort.Strings(names)
	return nil, &reporter.NotFoundError{Key: name, Available: names}
}

// Timing selects a `timing` child group of a pin Group by related_pin
// and, optionally, a `when` condition and `timing_type`. It reproduces
// select_timing_group from the original Python tool: each filter step
// narrows the candidate set and, on finding nothing, reports the distinct
// values that filter could have matched.
func (g *Group) Timing(relatedPin string, when, timingType string) (*Group, error) {
	timings := g.GetGroups("timing")

	related := filterByAttribute(timings, "related_pin", relatedPin)
	if len(related) == 0 {
		return nil, &reporter.NotFoundError{
			Key:       relatedPin,
			Available: distinctAttributeValues(timings, "related_pin"),
		}
	}

	if when != "" {
		matched := filterByAttribute(related, "when", when)
		if len(matched) == 0 {
			return nil, &reporter.NotFoundError{
				Key:       when,
				Available: distinctAttributeValues(related, "when"),
			}
		}
		related = matched
	}

	if timingType != "" {
		matched := filterByAttribute(related, "timing_type", timingType)
		if len(matched) == 0 {
			return nil, &reporter.NotFoundError{
				Key:       timingType,
				Available: distinctAttributeValues(related, "timing_type"),
			}
		}
		related = matched
	}

	return related[0], nil
}

// Table selects a named timing table (cell_rise, cell_fall,
// rise_transition, ...) from a timing Group.
func (g *Group) Table(name string) (*Group, error) {
	for _, child := range g.Groups {
		if child.GroupName == name {
			return child, nil
		}
	}
	names := make([]string, 0, len(g.Groups))
	seen := map[string]bool{}
	for _, child := range g.Groups {
		if !seen[child.GroupName] {
			seen[child.GroupName] = true
			names = append(names, child.GroupName)
		}
	}
	sort.Strings(names)
	return nil, &reporter.NotFoundError{Key: name, Available: names}
}

func filterByAttribute(groups []*Group, attrName, want string) []*Group {
	var out []*Group
	for _, g := range groups {
		v, ok, err := g.GetAttribute(attrName)
		if err != nil || !ok {
			continue
		}
		if valueString(v) == want {
			out = append(out, g)
		}
	}
	return out
}

func distinctAttributeValues(groups []*Group, attrName string) []string {
	seen := map[string]bool{}
	var out []string
	for _, g := range groups {
		v, ok, err := g.GetAttribute(attrName)
		if err != nil || !ok {
			continue
		}
		s := valueString(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// valueString extracts the comparable string form of a scalar attribute
// value for equality filtering (e.g. matching `related_pin` or `when`
// against a caller-supplied name).
func valueString(v Value) string {
	switch vv := v.(type) {
	case Name:
		return string(vv)
	case EscapedString:
		return string(vv)
	default:
		return v.Format()
	}
}
