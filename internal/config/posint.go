package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ZeroError is returned when a positive integer argument parses but is zero.
type ZeroError struct{}

func (ZeroError) Error() string {
	return "integer cannot be zero"
}

// ErrZero is the ZeroError value returned by ParsePositive.
var ErrZero error = ZeroError{}

// ParseError wraps the strconv diagnostic for text that is not an unsigned 32-bit integer.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	var numErr *strconv.NumError
	if errors.As(e.Err, &numErr) {
		switch {
		case errors.Is(numErr.Err, strconv.ErrRange):
			return fmt.Sprintf("%q is out of range for an unsigned 32-bit integer", e.Input)
		case errors.Is(numErr.Err, strconv.ErrSyntax):
			return fmt.Sprintf("%q is not a valid unsigned integer", e.Input)
		}
	}
	return fmt.Sprintf("invalid integer %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParsePositive parses s as a strictly positive uint32.
func ParsePositive(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &ParseError{Input: s, Err: err}
	}
	if v == 0 {
		return 0, ErrZero
	}
	return uint32(v), nil
}

// PositiveUint32 is a pflag.Value accepting only nonzero uint32 values.
type PositiveUint32 uint32

func (p *PositiveUint32) String() string {
	return strconv.FormatUint(uint64(*p), 10)
}

func (p *PositiveUint32) Set(s string) error {
	v, err := ParsePositive(s)
	if err != nil {
		return err
	}
	*p = PositiveUint32(v)
	return nil
}

func (p *PositiveUint32) Type() string {
	return "uint32"
}
