// Package circ does modular arithmetic over an integer range [min, max).
package circ

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var ErrInvalidRange = errors.New("invalid range")

// Add returns lhs+rhs wrapped into [rMin, rMax).
func Add[A constraints.Signed](lhs, rhs, rMin, rMax A) (A, error) {
	return wrap(int64(lhs)+int64(rhs), rMin, rMax)
}

// Sub returns lhs-rhs wrapped into [rMin, rMax).
func Sub[A constraints.Signed](lhs, rhs, rMin, rMax A) (A, error) {
	return wrap(int64(lhs)-int64(rhs), rMin, rMax)
}

// MustAdd is Add for ranges known to be valid. It panics otherwise.
func MustAdd[A constraints.Signed](lhs, rhs, rMin, rMax A) A {
	res, err := Add(lhs, rhs, rMin, rMax)
	if err != nil {
		panic(err)
	}
	return res
}

// MustSub is Sub for ranges known to be valid. It panics otherwise.
func MustSub[A constraints.Signed](lhs, rhs, rMin, rMax A) A {
	res, err := Sub(lhs, rhs, rMin, rMax)
	if err != nil {
		panic(err)
	}
	return res
}

// Mod12 wraps n into the pitch-class range [0, 12).
func Mod12(n int) int {
	return MustAdd(n, 0, 0, 12)
}

// wrap works in int64 so sums of narrow types do not overflow before reduction.
func wrap[A constraints.Signed](value int64, rMin, rMax A) (A, error) {
	if rMax <= rMin {
		return 0, fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, rMin, rMax)
	}
	lo := int64(rMin)
	width := int64(rMax) - lo
	// the remainder truncates toward zero, so negative offsets need one more width
	offset := (value - lo) % width
	if offset < 0 {
		offset += width
	}
	return A(offset + lo), nil
}
