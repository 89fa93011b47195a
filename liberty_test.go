package liberty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qigel/liberty"
)

func TestParseAndToJSONEndToEnd(t *testing.T) {
	g, err := liberty.Parse(`library(test){
  time_unit: 1ns;
  cell(INV){
    area: 1.5;
  }
}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, liberty.ToJSON(g, &buf, true))
	assert.Contains(t, buf.String(), `"time_unit": "1ns"`)
	assert.Contains(t, buf.String(), `"cells"`)
}

func TestGroupFormatIsStringer(t *testing.T) {
	g, err := liberty.Parse(`library(test){ time_unit: 1ns; }`)
	require.NoError(t, err)
	assert.Equal(t, g.Format(), g.String())
}

func TestParseMultiEndToEnd(t *testing.T) {
	groups, err := liberty.ParseMulti(`library(a){} library(b){}`)
	require.NoError(t, err)
	require.Len(t, groups, 2)
}
