package ljson_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qigel/liberty/ast"
	"github.com/qigel/liberty/ljson"
	"github.com/qigel/liberty/parser"
)

func TestProjectSingletonAndCompositeAttributes(t *testing.T) {
	g := ast.NewGroup("library", ast.Name("test"))
	g.SetAttribute("time_unit", ast.WithUnit{Value: 1, Unit: "ns"})
	g.SetAttribute("comment", ast.EscapedString("first"))
	g.SetAttribute("comment", ast.EscapedString("second"))

	out, err := ljson.Project(g)
	require.NoError(t, err)

	assert.Equal(t, "1ns", out["time_unit"])
	assert.Equal(t, []interface{}{"first", "second"}, out["comp_attribute,comment"])
	_, hasPlainComment := out["comment"]
	assert.False(t, hasPlainComment)
}

func TestProjectDefines(t *testing.T) {
	g := ast.NewGroup("library", ast.Name("test"))
	g.Defines = append(g.Defines, ast.Define{
		AttributeName: "default_cell_leakage_power",
		GroupName:     "technology",
		AttributeType: "float",
	})

	out, err := ljson.Project(g)
	require.NoError(t, err)

	defines, ok := out["define"].([]interface{})
	require.True(t, ok)
	require.Len(t, defines, 1)
	assert.Equal(t, map[string]interface{}{
		"attribute_name": "default_cell_leakage_power",
		"group_name":     "technology",
		"attribute_type": "float",
	}, defines[0])
}

func TestProjectCellsKeyedByFirstArg(t *testing.T) {
	lib := ast.NewGroup("library", ast.Name("test"))
	inv := ast.NewGroup("cell", ast.Name("INV"))
	inv.SetAttribute("area", ast.Number(1.5))
	lib.AddGroup(inv)

	out, err := ljson.Project(lib)
	require.NoError(t, err)

	cells, ok := out["cells"].(map[string]interface{})
	require.True(t, ok)
	invProj, ok := cells["INV"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1.5, invProj["area"])
}

func TestProjectNonCellChildUsesCompositeKey(t *testing.T) {
	lib := ast.NewGroup("library", ast.Name("test"))
	wl := ast.NewGroup("wire_load", ast.EscapedString("W"))
	wl.SetAttribute("resistance", ast.Number(0.2))
	lib.AddGroup(wl)

	out, err := ljson.Project(lib)
	require.NoError(t, err)

	proj, ok := out["wire_load,W"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.2, proj["resistance"])
}

func TestProjectRepeatedBareChildrenBecomeList(t *testing.T) {
	cell := ast.NewGroup("cell", ast.Name("INV"))
	leak1 := ast.NewGroup("leakage_power")
	leak1.SetAttribute("value", ast.Number(1))
	leak2 := ast.NewGroup("leakage_power")
	leak2.SetAttribute("value", ast.Number(2))
	cell.AddGroup(leak1)
	cell.AddGroup(leak2)

	out, err := ljson.Project(cell)
	require.NoError(t, err)

	list, ok := out["leakage_power"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)
}

func TestEncodeEndToEndIsValidJSON(t *testing.T) {
	g, err := parser.Parse(`library(test){
  time_unit: 1ns;
  cell(INV){
    area: 1.5;
    pin(A){ direction: input; }
  }
}`)
	require.NoError(t, err)

	data, err := ljson.Marshal(g, false)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "1ns", decoded["time_unit"])
}
