package demo

import (
	"errors"
	"fmt"
)

// Kind is the category of a demo construction failure.
type Kind uint8

const (
	KindIO Kind = iota + 1
	KindInvalidFormat
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalidFormat:
		return "invalid format"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ErrInvalidDemo matches, through errors.Is, every error returned when the
// data does not start with the magic bytes. Constructors never return it
// directly, so changing it cannot alter their results.
var ErrInvalidDemo error = &Error{Kind: KindInvalidFormat}

// Error is returned by every Demo constructor.
// Err is only set for KindIO and holds the underlying read error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindInvalidFormat:
		return "invalid demo: missing source 2 magic bytes"
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidDemo && e.Kind == KindInvalidFormat
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

func invalidFormat() error {
	return &Error{Kind: KindInvalidFormat}
}

func ioError(op string, err error) error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}
