package ast

import (
	"github.com/qigel/liberty/reporter"
)

// Array is a rectangular 1-D or 2-D table decoded from a complex
// attribute whose values are quoted, comma-separated numeric vectors
// (e.g. `values("1, 2, 3", "4, 5, 6")`). Shape is len==1 for a 1-D array
// (Shape[0] == len of the single vector) or len==2 for a 2-D array
// (Shape == [rows, cols]). Data is always the row-major flattening.
type Array struct {
	Shape []int
	Data  []float64
}

// At returns the element at (row, col) of a 2-D array.
func (a Array) At(row, col int) float64 {
	return a.Data[row*a.Shape[1]+col]
}

// GetArray resolves the complex attribute named key into an Array. Every
// value under the attribute must be a Vector of the same length; a single
// Vector decodes to a 1-D array, more than one to a 2-D array with one row
// per vector.
func (g *Group) GetArray(key string) (Array, error) {
	values := g.GetAttributes(key)
	if len(values) == 0 {
		return Array{}, &reporter.NotFoundError{Key: key, Available: g.attributeNames()}
	}

	rows := make([]Vector, 0, len(values))
	for _, v := range values {
		switch vv := v.(type) {
		case Vector:
			rows = append(rows, vv)
		case List:
			// A complex attribute with a single quoted-vector argument
			// parses as List{Vector{...}}; unwrap it.
			for _, item := range vv {
				if vec, ok := item.(Vector); ok {
					rows = append(rows, vec)
				}
			}
		default:
			return Array{}, &reporter.ShapeMismatchError{Expected: -1, Actual: 0}
		}
	}

	if len(rows) == 0 {
		return Array{}, &reporter.NotFoundError{Key: key, Available: g.attributeNames()}
	}

	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) != width {
			return Array{}, &reporter.ShapeMismatchError{Expected: width, Actual: len(row)}
		}
	}

	data := make([]float64, 0, len(rows)*width)
	for _, row := range rows {
		data = append(data, row...)
	}

	if len(rows) == 1 {
		return Array{Shape: []int{width}, Data: data}, nil
	}
	return Array{Shape: []int{len(rows), width}, Data: data}, nil
}

// SetArray replaces the attribute named key with the inverse of
// GetArray: one quoted-vector complex-attribute value per row (or a
// single row for a 1-D array).
func (g *Group) SetArray(key string, a Array) {
	var rows [][]float64
	switch len(a.Shape) {
	case 1:
		rows = [][]float64{a.Data}
	case 2:
		cols := a.Shape[1]
		for r := 0; r < a.Shape[0]; r++ {
			rows = append(rows, a.Data[r*cols:(r+1)*cols])
		}
	default:
		panic("ast: Array must be 1-D or 2-D")
	}

	filtered := g.Attributes[:0:0]
	for _, attr := range g.Attributes {
		if attr.Name != key {
			filtered = append(filtered, attr)
		}
	}
	g.Attributes = filtered

	for _, row := range rows {
		vec := make(Vector, len(row))
		copy(vec, row)
		g.SetAttribute(key, List{vec})
	}
}

func (g *Group) attributeNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, a := range g.Attributes {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}
	return names
}
