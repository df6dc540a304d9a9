package bocop

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile     = errors.New("bocop: missing export file")
	ErrUnknownVariable = errors.New("bocop: unknown variable")
	ErrShape           = errors.New("bocop: shape mismatch")
	ErrNoPhaseSpace    = errors.New("bocop: no phase space for controls")
)

// ParseError locates a token that is not a number.
type ParseError struct {
	File  string
	Token int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bocop: %s: token %d: %v", e.File, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
