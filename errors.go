package octaindex

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable is returned when a caller pins an execution
	// strategy that the current hardware cannot provide.
	ErrBackendUnavailable = errors.New("execution backend unavailable")

	// ErrNoParent is returned when asking for the parent of a cell that
	// is already at the coarsest level of detail.
	ErrNoParent = errors.New("no parent: already at coarsest level of detail")

	// ErrNoChildren is returned when asking for the children of a cell
	// that is already at the finest level of detail.
	ErrNoChildren = errors.New("no children: already at finest level of detail")
)

// ParityError indicates that a coordinate triple is not a BCC lattice
// point: the components do not share a single parity (all even or all odd).
type ParityError struct {
	X, Y, Z int32
}

func (e *ParityError) Error() string {
	return fmt.Sprintf("invalid parity: coordinates (%d, %d, %d) must be all even or all odd", e.X, e.Y, e.Z)
}

// RangeError indicates that a coordinate component does not fit the bit
// width of the target identifier at the requested level of detail.
type RangeError struct {
	Axis     string
	Value    int64
	Min, Max int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("coordinate out of range: %s=%d not in [%d, %d]", e.Axis, e.Value, e.Min, e.Max)
}

// LODError indicates a level of detail outside the supported range of the
// target identifier type.
type LODError struct {
	LOD uint8
	Max uint8
}

func (e *LODError) Error() string {
	return fmt.Sprintf("invalid level of detail: %d (must be 0-%d)", e.LOD, e.Max)
}

// TierError indicates a scale tier outside the 2-bit field range.
type TierError struct {
	Tier uint8
}

func (e *TierError) Error() string {
	return fmt.Sprintf("invalid scale tier: %d (must be 0-3)", e.Tier)
}

// DecodeError indicates that a raw integer does not carry the header tag
// (or another fixed header field) of the identifier type it was decoded
// as. This defends against cross-type misuse, e.g. treating a Route64
// value as an Index64 value.
type DecodeError struct {
	Kind string
	Want uint8
	Got  uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: want %02b, got %02b", e.Kind, e.Want, e.Got)
}

// TextError indicates a malformed Bech32m text encoding.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type TextError struct {
	Reason string
	cause  error
}

func (e *TextError) Error() string {
	return fmt.Sprintf("invalid text encoding: %s", e.Reason)
}

func (e *TextError) Unwrap() error { return e.cause }

// BufferSizeError indicates that an input/output buffer length is
// inconsistent with the declared batch size.
type BufferSizeError struct {
	Want int
	Got  int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("buffer size mismatch: want %d, got %d", e.Want, e.Got)
}
