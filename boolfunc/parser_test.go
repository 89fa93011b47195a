package boolfunc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qigel/liberty/boolfunc"
)

// spec.md 8 scenario 6.
func TestParsePrecedenceScenario(t *testing.T) {
	got, err := boolfunc.Parse("A' + B + C & D + E ^ F * G | (H + I)")
	require.NoError(t, err)

	want := boolfunc.Or{
		boolfunc.Not{X: boolfunc.Var("A")},
		boolfunc.Var("B"),
		boolfunc.And{boolfunc.Var("C"), boolfunc.Var("D")},
		boolfunc.And{
			boolfunc.Xor{boolfunc.Var("E"), boolfunc.Var("F")},
			boolfunc.Var("G"),
		},
		boolfunc.Or{boolfunc.Var("H"), boolfunc.Var("I")},
	}
	assert.Equal(t, want, got)
}

func TestImplicitAndByJuxtaposition(t *testing.T) {
	got, err := boolfunc.Parse("A B")
	require.NoError(t, err)
	assert.Equal(t, boolfunc.And{boolfunc.Var("A"), boolfunc.Var("B")}, got)
}

func TestPostfixNegationRepeated(t *testing.T) {
	got, err := boolfunc.Parse("A''")
	require.NoError(t, err)
	assert.Equal(t, boolfunc.Not{X: boolfunc.Not{X: boolfunc.Var("A")}}, got)
}

func TestBooleanConstants(t *testing.T) {
	got, err := boolfunc.Parse("0 + 1")
	require.NoError(t, err)
	assert.Equal(t, boolfunc.Or{boolfunc.Var("0"), boolfunc.Var("1")}, got)
}

func TestFormatWrapsOutermostParens(t *testing.T) {
	expr, err := boolfunc.Parse("A & B")
	require.NoError(t, err)
	assert.Equal(t, "(A & B)", boolfunc.Format(expr))
}

func TestParseErrorOnUnbalancedParens(t *testing.T) {
	_, err := boolfunc.Parse("(A + B")
	require.Error(t, err)
}
