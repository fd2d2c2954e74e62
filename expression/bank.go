// Package expression evaluates short user formulas in one free variable.
//
// Formulas are written the way the melody creator has always accepted them:
// arithmetic with + - * / // % **, comparisons, and/or/not, conditional
// "a if cond else b", and a fixed set of math functions. The free variable is
// written x or 𝑥. Formulas stored in a Bank under a letter can be called
// from other formulas as one-argument functions, e.g. "A(x) * 2".
//
// Nothing outside that grammar is ever executed.
package expression

import (
	"fmt"
	"sort"
)

// Bank holds the named formulas of one melody session. It is not safe for
// concurrent use; every session owns its own bank.
type Bank struct {
	formulas map[string]string
	parsed   map[string]node
}

func NewBank() *Bank {
	return &Bank{
		formulas: make(map[string]string),
		parsed:   make(map[string]node),
	}
}

// ValidName reports whether name can be stored in a bank.
func ValidName(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}

// Store registers formula under name, replacing any previous formula. The
// formula is not checked until it is evaluated.
func (b *Bank) Store(name, formula string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	b.formulas[name] = formula
	return nil
}

func (b *Bank) Formula(name string) (string, bool) {
	f, ok := b.formulas[name]
	return f, ok
}

// Names lists the stored names alphabetically.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.formulas))
	for name := range b.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Bank) Len() int {
	return len(b.formulas)
}

// Clear removes every stored name. Parsed formulas stay cached.
func (b *Bank) Clear() {
	b.formulas = make(map[string]string)
}

func (b *Bank) compile(formula string) (node, error) {
	if n, ok := b.parsed[formula]; ok {
		return n, nil
	}
	n, err := parse(formula)
	if err != nil {
		return nil, err
	}
	b.parsed[formula] = n
	return n, nil
}

func (b *Bank) run(formula string, e *env) (float64, error) {
	n, err := b.compile(formula)
	if err != nil {
		return 0, err
	}
	return n.eval(e)
}

// Evaluate evaluates a formula that does not use x.
func (b *Bank) Evaluate(formula string) (float64, error) {
	res, err := b.run(formula, &env{bank: b, calls: new(int)})
	if err != nil {
		return 0, &EvaluationError{Formula: formula, Err: err}
	}
	return res, nil
}

// EvaluateAt evaluates formula with x bound to the given value.
func (b *Bank) EvaluateAt(formula string, x float64) (float64, error) {
	res, err := b.run(formula, &env{bank: b, x: x, hasX: true, calls: new(int)})
	if err != nil {
		return 0, &EvaluationError{Formula: formula, X: x, HasX: true, Err: err}
	}
	return res, nil
}

// Call evaluates the formula stored under name at x.
func (b *Bank) Call(name string, x float64) (float64, error) {
	formula, ok := b.formulas[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownExpression, name)
	}
	return b.EvaluateAt(formula, x)
}

func (b *Bank) call(name string, x float64, parent *env) (float64, error) {
	depth := parent.depth + 1
	if depth > maxDepth {
		return 0, ErrRecursion
	}
	calls := parent.calls
	if calls == nil {
		calls = new(int)
	}
	if *calls++; *calls > maxCalls {
		return 0, fmt.Errorf("%w: more than %v calls", ErrTooManyCalls, maxCalls)
	}
	return b.run(b.formulas[name], &env{bank: b, x: x, hasX: true, depth: depth, calls: calls})
}

// Check parses formula without evaluating it.
func Check(formula string) error {
	_, err := parse(formula)
	if err != nil {
		return &EvaluationError{Formula: formula, Err: err}
	}
	return nil
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sample evaluates the formula stored under name at n evenly spaced points
// from..to inclusive. On failure the points evaluated so far are returned
// along with the error.
func (b *Bank) Sample(name string, from, to float64, n int) ([]Point, error) {
	formula, ok := b.formulas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExpression, name)
	}
	if n <= 0 {
		return nil, nil
	}
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x := from
		if n > 1 {
			x = from + (to-from)*float64(i)/float64(n-1)
		}
		y, err := b.EvaluateAt(formula, x)
		if err != nil {
			return points, err
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
