package bits

import (
	"errors"
	"fmt"

	"github.com/danderson/bits/fragments"
)

var (
	// ErrOutOfBounds is returned when a read goes past the end of
	// the available bits.
	ErrOutOfBounds = fragments.ErrOutOfBounds
	// ErrTruncated is returned when the input ends before a packet
	// field.
	ErrTruncated = errors.New("truncated packet")
	// ErrFraming is returned when an operator's declared bit length
	// does not end exactly on a child packet boundary.
	ErrFraming = errors.New("sub-packets do not match declared length")
	// ErrInvalidArity is returned when an operator has the wrong
	// number of children for its operation.
	ErrInvalidArity = errors.New("wrong number of operands")
	// ErrInvalidPacketType is returned for packet types that have no
	// defined meaning.
	ErrInvalidPacketType = errors.New("invalid packet type")
	// ErrInvalidEncoding is returned for malformed hex input.
	ErrInvalidEncoding = errors.New("invalid hex encoding")
	// ErrOverflow is returned when a literal or computed value does
	// not fit in 64 bits.
	ErrOverflow = errors.New("value overflows 64 bits")
	// ErrTooDeep is returned when packets nest deeper than
	// [MaxDepth].
	ErrTooDeep = errors.New("packets nested too deeply")
	// ErrTooLong is returned when an operator's children cannot be
	// described by its length field.
	ErrTooLong = errors.New("too long for length field")
)

// DecodeError is the error returned when a transmission cannot be
// decoded.
type DecodeError struct {
	// Offset is the bit offset in the transmission at which decoding
	// failed.
	Offset int
	// Field is the packet field being decoded.
	Field string
	// Reason is the underlying error. It wraps one of the package's
	// sentinel errors.
	Reason error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("decoding %s at bit %d: %s", e.Field, e.Offset, e.Reason)
}

func (e DecodeError) Unwrap() error {
	return e.Reason
}

// EvalError is the error returned when an operator packet cannot be
// evaluated.
type EvalError struct {
	// Type is the operator's packet type.
	Type Type
	// Children is the operator's number of children.
	Children int
	// Reason is the underlying error.
	Reason error
}

func (e EvalError) Error() string {
	return fmt.Sprintf("evaluating %s with %d operands: %s", e.Type, e.Children, e.Reason)
}

func (e EvalError) Unwrap() error {
	return e.Reason
}

// EncodeError is the error returned when a packet cannot be encoded.
type EncodeError struct {
	// Field is the packet field being encoded.
	Field string
	// Reason is the underlying error.
	Reason error
}

func (e EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %s", e.Field, e.Reason)
}

func (e EncodeError) Unwrap() error {
	return e.Reason
}

func decodeErr(d *fragments.Decoder, field string, reason error) error {
	return DecodeError{d.Offset(), field, reason}
}
