package expression

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax            = errors.New("syntax error")
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrUnboundVariable   = errors.New("x has no value")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrDomain            = errors.New("math domain error")
	ErrRange             = errors.New("math range error")
	ErrArity             = errors.New("wrong number of arguments")
	ErrRecursion         = errors.New("expressions call each other too deeply")
	ErrTooManyCalls      = errors.New("expressions call each other too often")
	ErrInvalidName       = errors.New("expression names are single letters A-Z")
	ErrUnknownExpression = errors.New("unknown expression")
)

// EvaluationError reports the formula and x value that failed.
type EvaluationError struct {
	Formula string
	X       float64
	HasX    bool
	Err     error
}

func (e *EvaluationError) Error() string {
	if e.HasX {
		return fmt.Sprintf("%q failed to evaluate at x = %v: %v", e.Formula, e.X, e.Err)
	}
	return fmt.Sprintf("%q failed to evaluate: %v", e.Formula, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
