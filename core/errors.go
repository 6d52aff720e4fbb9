package core

import (
	"errors"
	"fmt"
)

// Kind classifies why a decode failed.
type Kind int

const (
	KindUnknown Kind = iota
	InvalidFormat
	IOError
	OutOfMemory
	InvalidArgument
)

var (
	ErrInvalidFormat   = errors.New("invalid image format")
	ErrIO              = errors.New("i/o error")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrInvalidArgument = errors.New("invalid argument")
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case IOError:
		return "i/o error"
	case OutOfMemory:
		return "out of memory"
	case InvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidFormat:
		return ErrInvalidFormat
	case IOError:
		return ErrIO
	case OutOfMemory:
		return ErrOutOfMemory
	case InvalidArgument:
		return ErrInvalidArgument
	default:
		return nil
	}
}

// DecodeError is returned by every decoder operation. It matches the Err*
// sentinel for its Kind with errors.Is and unwraps to the underlying cause.
type DecodeError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newError(kind Kind, op string, err error) *DecodeError {
	return &DecodeError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind carried by err, or KindUnknown if err is not a DecodeError.
func KindOf(err error) Kind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
