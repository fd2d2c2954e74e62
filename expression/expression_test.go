package expression

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAt(t *testing.T) {
	cases := []struct {
		formula string
		x       float64
		want    float64
	}{
		{"x+1", 1, 2},
		{"\U0001d465*2", 3, 6},
		{"2 + 3 * 4", 0, 14},
		{"(2 + 3) * 4", 0, 20},
		{"2 ** 3 ** 2", 0, 512},
		{"-2 ** 2", 0, -4},
		{"2 ** -1", 0, 0.5},
		{"7 // 2", 0, 3},
		{"-7 // 2", 0, -4},
		{"-1 % 7", 0, 6},
		{"7 % -3", 0, -2},
		{"x % 8", 10.5, 2.5},
		{"1 < x < 3", 2, 1},
		{"1 < x < 3", 3, 0},
		{"x == 2 or x == 4", 4, 1},
		{"0 or 5", 0, 5},
		{"3 and 0", 0, 0},
		{"not x", 0, 1},
		{"10 if x > 1 else 20", 2, 10},
		{"10 if x > 1 else 20", 0, 20},
		{"sin(pi / 2)", 0, 1},
		{"floor(x / 2)", 5, 2},
		{"max(1, x, 3)", 7, 7},
		{"min(4, x)", -1, -1},
		{"log(8, 2)", 0, 3},
		{"log2(x)", 16, 4},
		{"round(2.5)", 0, 2},
		{"round(3.5)", 0, 4},
		{"round(1.25, 1)", 0, 1.2},
		{"int(-2.7)", 0, -2},
		{"abs(-x)", 3, 3},
		{"factorial(5)", 0, 120},
		{"hypot(3, 4)", 0, 5},
		{"true", 0, 1},
		{"False", 0, 0},
		{".5e1", 0, 5},
		{"x", -0.25, -0.25},
	}

	b := NewBank()
	for _, c := range cases {
		name := fmt.Sprintf("%v at %v", c.formula, c.x)
		t.Run(name, func(t *testing.T) {
			got, err := b.EvaluateAt(c.formula, c.x)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestEvaluateWithoutX(t *testing.T) {
	assert := assert.New(t)
	b := NewBank()

	v, err := b.Evaluate("0")
	assert.NoError(err)
	assert.Equal(0.0, v)

	_, err = b.Evaluate("x + 1")
	assert.ErrorIs(err, ErrUnboundVariable)

	var evalErr *EvaluationError
	assert.True(errors.As(err, &evalErr))
	assert.False(evalErr.HasX)
	assert.Equal("x + 1", evalErr.Formula)
}

func TestEvaluationErrors(t *testing.T) {
	cases := []struct {
		formula string
		want    error
	}{
		{"x +", ErrSyntax},
		{"(x", ErrSyntax},
		{"x)", ErrSyntax},
		{"2x", ErrSyntax},
		{"x $ 2", ErrSyntax},
		{"1 if x", ErrSyntax},
		{"", ErrSyntax},
		{"and", ErrSyntax},
		{"y + 1", ErrUnknownIdentifier},
		{"__import__(1)", ErrUnknownIdentifier},
		{"x / 0", ErrDivisionByZero},
		{"x // 0", ErrDivisionByZero},
		{"x % 0", ErrDivisionByZero},
		{"0 ** -1", ErrDivisionByZero},
		{"sqrt(-1)", ErrDomain},
		{"log(0)", ErrDomain},
		{"acos(2)", ErrDomain},
		{"(-8) ** (1/3)", ErrDomain},
		{"factorial(2.5)", ErrDomain},
		{"exp(1000)", ErrRange},
		{"10.0 ** 400", ErrRange},
		{"sin()", ErrArity},
		{"atan2(1)", ErrArity},
		{"int(nan)", ErrDomain},
	}

	b := NewBank()
	for _, c := range cases {
		t.Run(c.formula, func(t *testing.T) {
			_, err := b.EvaluateAt(c.formula, 1.5)
			assert := assert.New(t)
			assert.ErrorIs(err, c.want)

			var evalErr *EvaluationError
			if assert.True(errors.As(err, &evalErr)) {
				assert.Equal(c.formula, evalErr.Formula)
				assert.Equal(1.5, evalErr.X)
				assert.True(evalErr.HasX)
				assert.Contains(evalErr.Error(), "x = 1.5")
			}
		})
	}
}

func TestNaNPassesThrough(t *testing.T) {
	b := NewBank()
	v, err := b.EvaluateAt("x + 1", math.NaN())
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = b.Evaluate("isnan(nan)")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestBankCalls(t *testing.T) {
	assert := assert.New(t)
	b := NewBank()

	assert.NoError(b.Store("A", "x * 2"))
	assert.NoError(b.Store("B", "A(x) + 1"))

	v, err := b.EvaluateAt("B(x) * 10", 3)
	assert.NoError(err)
	assert.Equal(70.0, v)

	v, err = b.Call("A", 4)
	assert.NoError(err)
	assert.Equal(8.0, v)

	_, err = b.EvaluateAt("A(1, 2)", 0)
	assert.ErrorIs(err, ErrArity)

	assert.Equal([]string{"A", "B"}, b.Names())
	assert.Equal(2, b.Len())

	assert.NoError(b.Store("A", "x * 3"))
	v, _ = b.Call("A", 1)
	assert.Equal(3.0, v)

	b.Clear()
	assert.Empty(b.Names())
	_, err = b.EvaluateAt("A(x)", 1)
	assert.ErrorIs(err, ErrUnknownIdentifier)

	_, err = b.Call("A", 1)
	assert.ErrorIs(err, ErrUnknownExpression)
}

func TestBankRecursionIsBounded(t *testing.T) {
	b := NewBank()
	assert.NoError(t, b.Store("A", "B(x)"))
	assert.NoError(t, b.Store("B", "A(x)"))

	_, err := b.Call("A", 1)
	assert.ErrorIs(t, err, ErrRecursion)
}

func TestBankFanOutIsBounded(t *testing.T) {
	b := NewBank()
	for c := 'A'; c < 'P'; c++ {
		require.NoError(t, b.Store(string(c), fmt.Sprintf("%c(x) + %c(x)", c+1, c+1)))
	}
	require.NoError(t, b.Store("P", "x"))

	_, err := b.EvaluateAt("A(x)", 1)
	assert.ErrorIs(t, err, ErrTooManyCalls)

	// each evaluation gets a fresh budget
	v, err := b.EvaluateAt("H(x)", 1)
	require.NoError(t, err)
	assert.Equal(t, 256.0, v)
	v, err = b.EvaluateAt("H(x)", 1)
	require.NoError(t, err)
	assert.Equal(t, 256.0, v)
}

func TestStoreRejectsBadNames(t *testing.T) {
	b := NewBank()
	for _, name := range []string{"", "a", "AB", "x", "1", "\U0001d465"} {
		assert.ErrorIs(t, b.Store(name, "x"), ErrInvalidName, name)
	}
}

func TestBanksAreIndependent(t *testing.T) {
	one := NewBank()
	two := NewBank()
	assert.NoError(t, one.Store("A", "1"))

	_, err := two.Evaluate("A(0)")
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestSample(t *testing.T) {
	assert := assert.New(t)
	b := NewBank()
	assert.NoError(b.Store("A", "x * x"))
	assert.NoError(b.Store("B", "1 / (x - 5)"))

	points, err := b.Sample("A", 0, 10, 11)
	assert.NoError(err)
	assert.Len(points, 11)
	assert.Equal(Point{X: 10, Y: 100}, points[10])

	points, err = b.Sample("B", 0, 10, 11)
	assert.ErrorIs(err, ErrDivisionByZero)
	assert.Len(points, 5)

	_, err = b.Sample("C", 0, 1, 2)
	assert.ErrorIs(err, ErrUnknownExpression)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("sin(x) * 10"))
	assert.ErrorIs(t, Check("sin(x"), ErrSyntax)
	// names are resolved on evaluation
	assert.NoError(t, Check("Q(x)"))
}
