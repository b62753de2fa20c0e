package common

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when a caller passes a value the builder
	// cannot accept. The call has no effect.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConsistencyViolation signals an internal defect found by the optional
	// verification pass. It is never returned when verification is off.
	ErrConsistencyViolation = errors.New("consistency violation")
)

// ArgumentError names the offending parameter of a rejected call.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Param, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument returns an *ArgumentError with a stack attached.
func InvalidArgument(param string, format string, args ...any) error {
	return errors.WithStack(&ArgumentError{Param: param, Reason: fmt.Sprintf(format, args...)})
}

// Inconsistent returns an error wrapping ErrConsistencyViolation.
func Inconsistent(format string, args ...any) error {
	return errors.Wrapf(ErrConsistencyViolation, format, args...)
}
