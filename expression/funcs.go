package expression

import (
	"fmt"
	"math"
)

type builtin struct {
	minArgs int
	// maxArgs is -1 for variadic functions
	maxArgs int
	fn      func(args []float64) (float64, error)
}

func unary(f func(float64) float64) builtin {
	return builtin{1, 1, func(a []float64) (float64, error) { return f(a[0]), nil }}
}

func binary(f func(float64, float64) float64) builtin {
	return builtin{2, 2, func(a []float64) (float64, error) { return f(a[0], a[1]), nil }}
}

// positive wraps the log family, which is undefined at and below zero.
func positive(f func(float64) float64) builtin {
	return builtin{1, 1, func(a []float64) (float64, error) {
		if a[0] <= 0 {
			return 0, ErrDomain
		}
		return f(a[0]), nil
	}}
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"sin":   unary(math.Sin),
		"cos":   unary(math.Cos),
		"tan":   unary(math.Tan),
		"asin":  unary(math.Asin),
		"acos":  unary(math.Acos),
		"atan":  unary(math.Atan),
		"sinh":  unary(math.Sinh),
		"cosh":  unary(math.Cosh),
		"tanh":  unary(math.Tanh),
		"asinh": unary(math.Asinh),
		"acosh": unary(math.Acosh),
		"atanh": unary(math.Atanh),
		"exp":   unary(math.Exp),
		"expm1": unary(math.Expm1),
		"log2":  positive(math.Log2),
		"log10": positive(math.Log10),
		"log1p": builtin{1, 1, func(a []float64) (float64, error) {
			if a[0] <= -1 {
				return 0, ErrDomain
			}
			return math.Log1p(a[0]), nil
		}},
		"log":   {1, 2, logN},
		"sqrt":  unary(math.Sqrt),
		"floor": unary(math.Floor),
		"ceil":  unary(math.Ceil),
		"trunc": unary(math.Trunc),
		"fabs":  unary(math.Abs),
		"abs":   unary(math.Abs),
		"erf":   unary(math.Erf),
		"erfc":  unary(math.Erfc),
		"gamma": unary(math.Gamma),
		"lgamma": unary(func(v float64) float64 {
			res, _ := math.Lgamma(v)
			return res
		}),
		"degrees":  unary(func(v float64) float64 { return v * 180 / math.Pi }),
		"radians":  unary(func(v float64) float64 { return v * math.Pi / 180 }),
		"atan2":    binary(math.Atan2),
		"copysign": binary(math.Copysign),
		"fmod": {2, 2, func(a []float64) (float64, error) {
			if a[1] == 0 {
				return 0, ErrDomain
			}
			return math.Mod(a[0], a[1]), nil
		}},
		"remainder": {2, 2, func(a []float64) (float64, error) {
			if a[1] == 0 {
				return 0, ErrDomain
			}
			return math.Remainder(a[0], a[1]), nil
		}},
		"pow":       {2, 2, func(a []float64) (float64, error) { return power(a[0], a[1]) }},
		"hypot":     {0, -1, hypot},
		"min":       {1, -1, extreme(func(a, b float64) bool { return a < b })},
		"max":       {1, -1, extreme(func(a, b float64) bool { return a > b })},
		"factorial": {1, 1, factorial},
		"round":     {1, 2, round},
		"int":       {1, 1, toInt},
		"float":     unary(func(v float64) float64 { return v }),
		"bool":      unary(func(v float64) float64 { return fromBool(truthy(v)) }),
		"isnan":     unary(func(v float64) float64 { return fromBool(math.IsNaN(v)) }),
		"isinf":     unary(func(v float64) float64 { return fromBool(math.IsInf(v, 0)) }),
		"isfinite": unary(func(v float64) float64 {
			return fromBool(!math.IsNaN(v) && !math.IsInf(v, 0))
		}),
	}
}

func logN(a []float64) (float64, error) {
	if a[0] <= 0 {
		return 0, ErrDomain
	}
	if len(a) == 1 {
		return math.Log(a[0]), nil
	}
	if a[1] <= 0 {
		return 0, ErrDomain
	}
	if a[1] == 1 {
		return 0, ErrDivisionByZero
	}
	return math.Log(a[0]) / math.Log(a[1]), nil
}

func hypot(a []float64) (float64, error) {
	var res float64
	for _, v := range a {
		res = math.Hypot(res, v)
	}
	return res, nil
}

func extreme(better func(a, b float64) bool) func([]float64) (float64, error) {
	return func(a []float64) (float64, error) {
		res := a[0]
		for _, v := range a[1:] {
			if better(v, res) {
				res = v
			}
		}
		return res, nil
	}
}

func factorial(a []float64) (float64, error) {
	n := a[0]
	if n < 0 || n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: factorial of %v", ErrDomain, n)
	}
	if n > 170 {
		return 0, ErrRange
	}
	res := 1.0
	for i := 2.0; i <= n; i++ {
		res *= i
	}
	return res, nil
}

// round rounds half to even, optionally to a number of decimal digits.
func round(a []float64) (float64, error) {
	if len(a) == 1 {
		if math.IsNaN(a[0]) || math.IsInf(a[0], 0) {
			return 0, ErrDomain
		}
		return math.RoundToEven(a[0]), nil
	}
	scale := math.Pow(10, math.Trunc(a[1]))
	return math.RoundToEven(a[0]*scale) / scale, nil
}

func toInt(a []float64) (float64, error) {
	if math.IsNaN(a[0]) || math.IsInf(a[0], 0) {
		return 0, fmt.Errorf("%w: cannot convert %v to an integer", ErrDomain, a[0])
	}
	return math.Trunc(a[0]), nil
}
