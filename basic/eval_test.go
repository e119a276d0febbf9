package basic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// evalString runs one expression through the evaluator inside the
// session's error boundary
//

func evalString(t *testing.T, ip *Interp, expr string) (float64, error) {

	t.Helper()

	var val float64

	err := ip.guard(func() {
		lx := newLexer(expr)
		val = ip.evalExpression(&lx, 0)
		runtimeCheck(lx.next().tok == EOL, ESYNTAXERROR)
	})

	return val, err
}

func mustEval(t *testing.T, ip *Interp, expr string) float64 {

	t.Helper()

	val, err := evalString(t, ip, expr)
	require.NoError(t, err, "expression %q", expr)

	return val
}

func TestEvalArithmetic(t *testing.T) {

	ip := New()

	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 2 - 3", 5},
		{"20 / 4 / 5", 1},
		{"-2 * 3", -6},
		{"-(2 + 3)", -5},
		{"+5", 5},
		{"2 * -3", -6},
		{"1.5 + 2.25", 3.75},
	}

	for _, tc := range tests {
		assert.InDelta(t, tc.want, mustEval(t, ip, tc.expr), 1e-9, tc.expr)
	}
}

func TestEvalRelational(t *testing.T) {

	ip := New()

	tests := []struct {
		expr string
		want float64
	}{
		{"1 < 2", 1},
		{"2 < 1", 0},
		{"2 <= 2", 1},
		{"2 >= 3", 0},
		{"2 = 2", 1},
		{"2 <> 2", 0},
		{"2 <> 3", 1},

		// relational operators sit in the additive tier and chain
		{"1 < 2 = 1", 1},
		{"5 > 4 > 0", 1},
		{"1 + 1 = 2", 1},
	}

	for _, tc := range tests {
		assert.InDelta(t, tc.want, mustEval(t, ip, tc.expr), 1e-9, tc.expr)
	}
}

func TestEvalDivisionByZero(t *testing.T) {

	ip := New()

	_, err := evalString(t, ip, "10 / 0")
	require.Error(t, err)
	assert.Equal(t, int16(5), ip.Err().Code)
	assert.Contains(t, ip.Err().Msg, "Division by 0")
}

func TestEvalUndefinedVariable(t *testing.T) {

	ip := New()

	_, err := evalString(t, ip, "Q + 1")
	require.Error(t, err)
	assert.Equal(t, int16(3), ip.Err().Code)
}

func TestEvalVariables(t *testing.T) {

	ip := New()

	require.NoError(t, ip.ExecuteLine("LET A = 10"))
	require.NoError(t, ip.ExecuteLine("LET COUNT = 4"))

	assert.InDelta(t, 14.0, mustEval(t, ip, "A + COUNT"), 1e-9)
}

func TestEvalMissingParen(t *testing.T) {

	ip := New()

	_, err := evalString(t, ip, "(1 + 2")
	require.Error(t, err)
	assert.Equal(t, int16(1), ip.Err().Code)
}

func TestEvalBooleanWordsRejected(t *testing.T) {

	ip := New()

	for _, expr := range []string{"1 AND 1", "NOT 0", "1 OR 0"} {
		_, err := evalString(t, ip, expr)
		require.Error(t, err, expr)
		assert.Equal(t, int16(1), ip.Err().Code, expr)
	}
}

func TestEvalBuiltins(t *testing.T) {

	ip := New()

	tests := []struct {
		expr string
		want float64
	}{
		{"ABS(-3)", 3},
		{"SQR(16)", 4},
		{"INT(3.9)", 3},
		{"INT(-3.1)", -4},
		{"SGN(-7)", -1},
		{"SGN(0)", 0},
		{"SGN(12)", 1},
		{"EXP(0)", 1},
		{"LOG(1)", 0},
		{"SIN(0)", 0},
		{"COS(0)", 1},
		{"TAN(0)", 0},
	}

	for _, tc := range tests {
		assert.InDelta(t, tc.want, mustEval(t, ip, tc.expr), 1e-9, tc.expr)
	}
}

func TestEvalBuiltinDomainErrors(t *testing.T) {

	ip := New()

	for _, expr := range []string{"SQR(-1)", "LOG(0)", "LOG(-5)"} {
		_, err := evalString(t, ip, expr)
		require.Error(t, err, expr)
		assert.Equal(t, int16(15), ip.Err().Code, expr)
	}
}

func TestEvalRndRange(t *testing.T) {

	ip := New()

	for i := 0; i < 50; i++ {
		v := mustEval(t, ip, "RND(10)")
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 10.0)
	}
}

func TestEvalUnknownFunction(t *testing.T) {

	ip := New()

	_, err := evalString(t, ip, "NOSUCH(1)")
	require.Error(t, err)
	assert.Equal(t, int16(1), ip.Err().Code)
}

func TestEvalDepthGuard(t *testing.T) {

	ip := New()

	expr := strings.Repeat("(", 70) + "1" + strings.Repeat(")", 70)

	_, err := evalString(t, ip, expr)
	require.Error(t, err)
	assert.Equal(t, int16(16), ip.Err().Code)
}

func TestEvalArrayElement(t *testing.T) {

	ip := New()

	require.NoError(t, ip.ExecuteLine("DIM ARR(5)"))
	require.NoError(t, ip.ExecuteLine("LET ARR(1) = 100"))

	assert.InDelta(t, 100.0, mustEval(t, ip, "ARR(1)"), 1e-9)

	_, err := evalString(t, ip, "ARR(6)")
	require.Error(t, err)
	assert.Equal(t, int16(6), ip.Err().Code)
}

func TestFormatNumber(t *testing.T) {

	assert.Equal(t, "3.000000", formatNumber(3))
	assert.Equal(t, "-0.500000", formatNumber(-0.5))
	assert.Equal(t, fmt.Sprintf("%.6f", 1.0/3.0), formatNumber(1.0/3.0))
}
