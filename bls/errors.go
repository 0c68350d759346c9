package bls

import (
	"errors"
	"fmt"
)

// Kind is a stable category for decode failures.
// Callers should branch on Kind (or the sentinel errors) rather than
// matching error strings.
type Kind string

const (
	// KindLength means the input was not exactly the canonical length.
	KindLength Kind = "Length"
	// KindPoint means the input had the right length but did not decode to a
	// valid subgroup point.
	KindPoint Kind = "Point"
	// KindHex means a textual input was missing its 0x prefix or was not hex.
	KindHex Kind = "Hex"
)

var (
	// ErrInvalidLength matches every decode error of KindLength.
	ErrInvalidLength = errors.New("bls: invalid encoding length")
	// ErrInvalidPoint matches every decode error of KindPoint.
	ErrInvalidPoint = errors.New("bls: invalid point")
	// ErrInvalidHex matches every decode error of KindHex.
	ErrInvalidHex = errors.New("bls: invalid hex string")
)

// DecodeError is returned by every decode path in this package.
//
// Use errors.Is with ErrInvalidLength, ErrInvalidPoint or ErrInvalidHex, or
// errors.As to extract the Kind and lengths.
type DecodeError struct {
	Kind Kind
	// Want and Got are byte lengths; they are set for KindLength only.
	Want int
	Got  int
	// Err is the underlying backend or hex error, if any.
	Err error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindLength:
		return fmt.Sprintf("bls: invalid encoding length: want %d bytes, got %d", e.Want, e.Got)
	case KindPoint:
		if e.Err != nil {
			return fmt.Sprintf("bls: invalid point: %v", e.Err)
		}
		return "bls: invalid point"
	case KindHex:
		if e.Err != nil {
			return fmt.Sprintf("bls: invalid hex string: %v", e.Err)
		}
		return "bls: invalid hex string"
	}
	return "bls: decode error"
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is maps the error onto the sentinel for its Kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrInvalidLength:
		return e.Kind == KindLength
	case ErrInvalidPoint:
		return e.Kind == KindPoint
	case ErrInvalidHex:
		return e.Kind == KindHex
	}
	return false
}

// IsKind reports whether err is (or wraps) a *DecodeError with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *DecodeError
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

func lengthError(want, got int) error {
	return &DecodeError{Kind: KindLength, Want: want, Got: got}
}

func pointError(cause error) error {
	return &DecodeError{Kind: KindPoint, Err: cause}
}

func hexError(cause error) error {
	return &DecodeError{Kind: KindHex, Err: cause}
}
