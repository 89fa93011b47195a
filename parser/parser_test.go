package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qigel/liberty/ast"
	"github.com/qigel/liberty/parser"
	"github.com/qigel/liberty/reporter"
)

var groupCmpOpts = cmp.Options{cmpopts.IgnoreUnexported(ast.Group{})}

// spec.md 8 scenario 1.
func TestParseSimpleAttributeWithUnit(t *testing.T) {
	g, err := parser.Parse(`library(test){ time_unit: 1ns; }`)
	require.NoError(t, err)
	assert.Equal(t, "library", g.GroupName)
	assert.Equal(t, []ast.Value{ast.Name("test")}, g.Args)
	require.Len(t, g.Attributes, 1)
	assert.Equal(t, "time_unit", g.Attributes[0].Name)
	assert.Equal(t, ast.WithUnit{Value: 1, Unit: "ns"}, g.Attributes[0].Value)
}

// spec.md 8 scenario 2.
func TestParseQuotedVectorWithLineContinuation(t *testing.T) {
	src := "table(x){ index_1(\"1, 2, 3\"); value(\"0001, 0002, \\\n 0003\"); }"
	g, err := parser.Parse(src)
	require.NoError(t, err)

	arr, err := g.GetArray("value")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, arr.Shape)
	assert.Equal(t, []float64{1, 2, 3}, arr.Data)
}

// spec.md 8 scenario 3.
func TestParseRepeatedComplexAttribute(t *testing.T) {
	g, err := parser.Parse(`wire_load("W"){ fanout_length(1, 1.32); fanout_length(2, 2.98); }`)
	require.NoError(t, err)

	values := g.GetAttributes("fanout_length")
	require.Len(t, values, 2)
	assert.Equal(t, ast.List{ast.Number(1), ast.Number(1.32)}, values[0])
	assert.Equal(t, ast.List{ast.Number(2), ast.Number(2.98)}, values[1])

	_, _, err = g.GetAttribute("fanout_length")
	var notUnique *reporter.NotUniqueError
	require.ErrorAs(t, err, &notUnique)
}

// spec.md 8 scenario 4: dots inside a bareword argument are accepted.
func TestParseArgumentWithDots(t *testing.T) {
	g, err := parser.Parse(`operating_conditions(ff28_1.05V_0.00V_0.00V_0.00V_125C_7y50kR){}`)
	require.NoError(t, err)
	require.Len(t, g.Args, 1)
	assert.Equal(t, ast.Name("ff28_1.05V_0.00V_0.00V_0.00V_125C_7y50kR"), g.Args[0])
}

// spec.md 8 scenario 5.
func TestParseArithmeticExpression(t *testing.T) {
	g, err := parser.Parse(`input_voltage(cmos){ vimax : VDD * 1.1 + 0.5 ; }`)
	require.NoError(t, err)
	require.Len(t, g.Attributes, 1)
	assert.Equal(t, ast.ArithExpression("VDD * 1.1 + 0.5"), g.Attributes[0].Value)
}

func TestUnitVersusExponentDisambiguation(t *testing.T) {
	cases := []struct {
		src  string
		want ast.Value
	}{
		{`x:1eV;`, ast.WithUnit{Value: 1, Unit: "eV"}},
		{`x:1e3;`, ast.Number(1000)},
		{`x:1ns;`, ast.WithUnit{Value: 1, Unit: "ns"}},
		{`x:1V;`, ast.WithUnit{Value: 1, Unit: "V"}},
		{`x:2.5e-1EV;`, ast.WithUnit{Value: 0.25, Unit: "EV"}},
		{`x:2.5e-1A;`, ast.WithUnit{Value: 0.25, Unit: "A"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			g, err := parser.Parse("lib(l){ " + c.src + " }")
			require.NoError(t, err)
			require.Len(t, g.Attributes, 1)
			assert.Equal(t, c.want, g.Attributes[0].Value)
		})
	}
}

func TestDefine(t *testing.T) {
	g, err := parser.Parse(`library(test){ define (default_cell_leakage_power, technology, float); }`)
	require.NoError(t, err)
	require.Len(t, g.Defines, 1)
	assert.Equal(t, ast.Define{
		AttributeName: "default_cell_leakage_power",
		GroupName:     "technology",
		AttributeType: "float",
	}, g.Defines[0])
}

func TestNestedGroups(t *testing.T) {
	g, err := parser.Parse(`library(test){
		cell(INV){
			pin(A){ direction: input; }
			pin(Y){ direction: output; }
		}
	}`)
	require.NoError(t, err)
	cell, err := g.Cell("INV")
	require.NoError(t, err)
	a, err := cell.Pin("A")
	require.NoError(t, err)
	v, ok, err := a.GetAttribute("direction")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ast.Name("input"), v)
}

func TestRoundTrip(t *testing.T) {
	src := `library(test){
  time_unit: 1ns;
  wire_load("W"){
    fanout_length(1, 1.32);
    fanout_length(2, 2.98);
  }
  cell(INV){
    area: 1.5;
    pin(A){
      direction: input;
    }
  }
}`
	g1, err := parser.Parse(src)
	require.NoError(t, err)

	formatted := g1.Format()
	g2, err := parser.Parse(formatted)
	require.NoError(t, err)

	if diff := cmp.Diff(g1, g2, groupCmpOpts); diff != "" {
		t.Fatalf("parse(format(L)) != L (-want +got):\n%s", diff)
	}

	// Idempotent formatting.
	assert.Equal(t, formatted, g2.Format())
}

func TestParseMulti(t *testing.T) {
	src := `library(a){ time_unit: 1ns; } library(b){ time_unit: 1ps; }`
	groups, err := parser.ParseMulti(src)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []ast.Value{ast.Name("a")}, groups[0].Args)
	assert.Equal(t, []ast.Value{ast.Name("b")}, groups[1].Args)
}

func TestParseRejectsMultipleTopLevelGroups(t *testing.T) {
	_, err := parser.Parse(`library(a){} library(b){}`)
	require.Error(t, err)
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := parser.Parse("library(test){\n  foo ;\n}")
	require.Error(t, err)
	var parseErr *reporter.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Pos.Line)
}

func TestParseLenientRecoversAtStatementBoundary(t *testing.T) {
	src := `library(test){
		time_unit: 1ns;
		foo ;
		area: 1.5;
	}`
	g, errs := parser.ParseLenient(src)
	require.NotNil(t, g)
	require.Len(t, errs, 1)

	var parseErr *reporter.ParseError
	require.ErrorAs(t, errs[0], &parseErr)
	assert.Equal(t, 3, parseErr.Pos.Line)

	v, ok, err := g.GetAttribute("time_unit")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ast.WithUnit{Value: 1, Unit: "ns"}, v)

	v, ok, err = g.GetAttribute("area")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ast.Number(1.5), v)
}

func TestCStyleCommentsAreSkipped(t *testing.T) {
	g, err := parser.Parse("library(test) /* a library */ { time_unit /* comment */: 1ns; }")
	require.NoError(t, err)
	require.Len(t, g.Attributes, 1)
	assert.Equal(t, ast.WithUnit{Value: 1, Unit: "ns"}, g.Attributes[0].Value)
}
