package melody

import (
	"errors"
	"fmt"
)

// Field names the formula a generation step failed on.
type Field string

const (
	FieldInitialX Field = "Initial X"
	FieldNewX     Field = "New X"
	FieldPitch    Field = "Pitch"
	FieldDuration Field = "Duration"
	FieldRest     Field = "Rest"
	FieldVelocity Field = "Velocity"
)

var (
	ErrInitialX = errors.New("initial x failed to evaluate")
	ErrNewX     = errors.New("new x failed to evaluate")
	ErrPitch    = errors.New("pitch failed to evaluate")
	ErrDuration = errors.New("duration failed to evaluate")
	ErrRest     = errors.New("rest failed to evaluate")
	ErrVelocity = errors.New("velocity failed to evaluate")

	ErrGenerationTimeout = errors.New("generation did not finish")
)

var fieldErrors = map[Field]error{
	FieldInitialX: ErrInitialX,
	FieldNewX:     ErrNewX,
	FieldPitch:    ErrPitch,
	FieldDuration: ErrDuration,
	FieldRest:     ErrRest,
	FieldVelocity: ErrVelocity,
}

// FieldError says which formula failed and at which x. It matches the
// sentinel of its field with errors.Is, and the underlying evaluation error
// with errors.As.
type FieldError struct {
	Field Field
	X     float64
	HasX  bool
	Err   error
}

func (e *FieldError) Error() string {
	if e.HasX {
		return fmt.Sprintf("%v failed to evaluate at x = %v: %v", e.Field, e.X, e.Err)
	}
	return fmt.Sprintf("%v failed to evaluate: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (e *FieldError) Is(target error) bool {
	return fieldErrors[e.Field] == target
}
