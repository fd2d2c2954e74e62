package expression

import (
	"fmt"
	"math"
)

// maxDepth bounds how deeply bank expressions may call each other.
const maxDepth = 64

// maxCalls bounds the bank calls made by one top level evaluation, so
// formulas that fan out into each other cannot run for hours.
const maxCalls = 10000

type env struct {
	bank  *Bank
	x     float64
	hasX  bool
	depth int
	// calls counts bank calls, shared by every env of one evaluation
	calls *int
}

func truthy(v float64) bool {
	return v != 0
}

func fromBool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (n *numberNode) eval(env *env) (float64, error) {
	return n.value, nil
}

func (n *variableNode) eval(env *env) (float64, error) {
	if !env.hasX {
		return 0, ErrUnboundVariable
	}
	return env.x, nil
}

func (n *identNode) eval(env *env) (float64, error) {
	return 0, fmt.Errorf("%w: %q at position %v", ErrUnknownIdentifier, n.name, n.pos)
}

func (n *unaryNode) eval(env *env) (float64, error) {
	v, err := n.operand.eval(env)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case "-":
		return -v, nil
	case "not":
		return fromBool(!truthy(v)), nil
	}
	return v, nil
}

func (n *binaryNode) eval(env *env) (float64, error) {
	l, err := n.left.eval(env)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(env)
	if err != nil {
		return 0, err
	}
	return arith(n.op, l, r)
}

func arith(op string, l, r float64) (float64, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case "//":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Floor(l / r), nil
	case "%":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return floorMod(l, r), nil
	case "**":
		return power(l, r)
	}
	return 0, fmt.Errorf("%w: operator %q", ErrSyntax, op)
}

// floorMod takes the sign of the divisor, so -1 % 7 is 6.
func floorMod(l, r float64) float64 {
	m := math.Mod(l, r)
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return m
}

func power(base, exponent float64) (float64, error) {
	if base == 0 && exponent < 0 {
		return 0, ErrDivisionByZero
	}
	if base < 0 && !math.IsInf(base, 0) && exponent != math.Trunc(exponent) && !math.IsInf(exponent, 0) {
		return 0, ErrDomain
	}
	res := math.Pow(base, exponent)
	if math.IsInf(res, 0) && !math.IsInf(base, 0) && !math.IsInf(exponent, 0) {
		return 0, ErrRange
	}
	return res, nil
}

func compare(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "==":
		return l == r
	case "!=":
		return l != r
	}
	return false
}

func (n *compareNode) eval(env *env) (float64, error) {
	left, err := n.operands[0].eval(env)
	if err != nil {
		return 0, err
	}
	for i, op := range n.ops {
		right, err := n.operands[i+1].eval(env)
		if err != nil {
			return 0, err
		}
		if !compare(op, left, right) {
			return 0, nil
		}
		left = right
	}
	return 1, nil
}

// logicNode yields one of its operands, like the and/or of most scripting
// languages: 0 or 5 is 5.
func (n *logicNode) eval(env *env) (float64, error) {
	l, err := n.left.eval(env)
	if err != nil {
		return 0, err
	}
	if n.op == "and" && !truthy(l) {
		return l, nil
	}
	if n.op == "or" && truthy(l) {
		return l, nil
	}
	return n.right.eval(env)
}

func (n *conditionalNode) eval(env *env) (float64, error) {
	c, err := n.cond.eval(env)
	if err != nil {
		return 0, err
	}
	if truthy(c) {
		return n.then.eval(env)
	}
	return n.otherwise.eval(env)
}

func (n *callNode) eval(env *env) (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(env)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	if f, ok := builtins[n.name]; ok {
		if len(args) < f.minArgs || (f.maxArgs >= 0 && len(args) > f.maxArgs) {
			return 0, fmt.Errorf("%w: %v() got %v", ErrArity, n.name, len(args))
		}
		res, err := f.fn(args)
		if err != nil {
			return 0, fmt.Errorf("%v(): %w", n.name, err)
		}
		if err := checkResult(res, args); err != nil {
			return 0, fmt.Errorf("%v(): %w", n.name, err)
		}
		return res, nil
	}

	if env.bank != nil {
		if _, ok := env.bank.Formula(n.name); ok {
			if len(args) != 1 {
				return 0, fmt.Errorf("%w: %v() takes exactly one argument, got %v", ErrArity, n.name, len(args))
			}
			res, err := env.bank.call(n.name, args[0], env)
			if err != nil {
				return 0, fmt.Errorf("%v(%v): %w", n.name, args[0], err)
			}
			return res, nil
		}
	}

	return 0, fmt.Errorf("%w: %q at position %v", ErrUnknownIdentifier, n.name, n.pos)
}

// checkResult turns the NaN and Inf a math function produced from ordinary
// arguments into errors.
func checkResult(res float64, args []float64) error {
	for _, a := range args {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return nil
		}
	}
	if math.IsNaN(res) {
		return ErrDomain
	}
	if math.IsInf(res, 0) {
		return ErrRange
	}
	return nil
}
