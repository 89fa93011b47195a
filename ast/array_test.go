package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetArraySingleRow(t *testing.T) {
	g := NewGroup("table", Name("x"))
	g.SetAttribute("value", List{Vector{1, 2, 3}})

	arr, err := g.GetArray("value")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, arr.Shape)
	assert.Equal(t, []float64{1, 2, 3}, arr.Data)
}

func TestGetArrayMultipleRows(t *testing.T) {
	g := NewGroup("cell_rise", Name("t"))
	g.SetAttribute("values", List{Vector{1, 2}})
	g.SetAttribute("values", List{Vector{3, 4}})

	arr, err := g.GetArray("values")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, arr.Shape)
	assert.Equal(t, 3.0, arr.At(1, 0))
	assert.Equal(t, 4.0, arr.At(1, 1))
}

func TestGetArrayShapeMismatch(t *testing.T) {
	g := NewGroup("values", Name("t"))
	g.SetAttribute("row", List{Vector{1, 2, 3}})
	g.SetAttribute("row", List{Vector{1, 2}})

	_, err := g.GetArray("row")
	require.Error(t, err)
}

func TestSetArrayRoundTrips(t *testing.T) {
	g := NewGroup("table", Name("x"))
	g.SetArray("value", Array{Shape: []int{2, 2}, Data: []float64{1, 2, 3, 4}})

	arr, err := g.GetArray("value")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, arr.Shape)
	assert.Equal(t, []float64{1, 2, 3, 4}, arr.Data)
}
