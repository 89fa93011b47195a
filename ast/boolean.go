package ast

import (
	"github.com/qigel/liberty/boolfunc"
)

// GetBooleanFunction parses the escaped-string value of the attribute
// named key (typically "function") as a pin logic expression. It returns
// ok=false if the attribute is absent.
func (g *Group) GetBooleanFunction(key string) (expr boolfunc.Expr, ok bool, err error) {
	v, found, err := g.GetAttribute(key)
	if err != nil || !found {
		return nil, false, err
	}
	s, isString := v.(EscapedString)
	if !isString {
		s = EscapedString(v.Format())
	}
	parsed, err := boolfunc.Parse(string(s))
	if err != nil {
		return nil, false, err
	}
	return parsed, true, nil
}

// SetBooleanFunction formats expr and stores it as a quoted string
// attribute named key, replacing any previous values of the same name.
func (g *Group) SetBooleanFunction(key string, expr boolfunc.Expr) {
	formatted := boolfunc.Format(expr)
	filtered := g.Attributes[:0:0]
	for _, attr := range g.Attributes {
		if attr.Name != key {
			filtered = append(filtered, attr)
		}
	}
	g.Attributes = filtered
	g.SetAttribute(key, EscapedString(formatted))
}
