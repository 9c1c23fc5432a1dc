package bits

import (
	"encoding/hex"
	"errors"
	"fmt"
	mbits "math/bits"
	"strings"

	"github.com/danderson/bits/fragments"
)

// Marshal returns the wire encoding of p, padded with zero bits to a
// whole number of bytes.
//
// Literals are encoded with the fewest groups that can hold their
// value. Operators are encoded with their [Operator.LengthType]
// framing. Decoding the result produces a tree equal to p.
func Marshal(p Packet) ([]byte, error) {
	var e fragments.Encoder
	if err := encodePacket(&e, p); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// MarshalHex is like [Marshal], but returns upper case hex.
func MarshalHex(p Packet) (string, error) {
	bs, err := Marshal(p)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(bs)), nil
}

func encodePacket(e *fragments.Encoder, p Packet) error {
	switch p := p.(type) {
	case *Literal:
		if err := encodeHeader(e, p.Header()); err != nil {
			return err
		}
		return encodeLiteral(e, p.Value)
	case *Operator:
		if p.Type == TypeLiteral || p.Type > TypeEqual {
			return EncodeError{"type", fmt.Errorf("%w: %s is not an operator", ErrInvalidPacketType, p.Type)}
		}
		if err := encodeHeader(e, p.Header()); err != nil {
			return err
		}
		return encodeChildren(e, p)
	case nil:
		return EncodeError{"packet", fmt.Errorf("%w: nil packet", ErrInvalidPacketType)}
	default:
		return EncodeError{"packet", fmt.Errorf("%w: unknown packet %T", ErrInvalidPacketType, p)}
	}
}

func encodeHeader(e *fragments.Encoder, h Header) error {
	if err := e.Bits(uint64(h.Version), 3); err != nil {
		return EncodeError{"version", err}
	}
	if err := e.Bits(uint64(h.Type), 3); err != nil {
		return EncodeError{"type", err}
	}
	return nil
}

func encodeLiteral(e *fragments.Encoder, v uint64) error {
	groups := max(1, (mbits.Len64(v)+3)/4)
	for i := groups - 1; i >= 0; i-- {
		e.Bit(i > 0)
		if err := e.Bits(v>>(4*i)&0xf, 4); err != nil {
			return EncodeError{"literal group", err}
		}
	}
	return nil
}

func encodeChildren(e *fragments.Encoder, o *Operator) error {
	switch o.LengthType {
	case LengthBits:
		var body fragments.Encoder
		for _, c := range o.Children {
			if err := encodePacket(&body, c); err != nil {
				return err
			}
		}
		if body.Len() > maxTotalLength {
			return EncodeError{"total length", fmt.Errorf("%w: %d bits of sub-packets", ErrTooLong, body.Len())}
		}
		e.Bit(false)
		if err := e.Bits(uint64(body.Len()), totalLenBits); err != nil {
			return EncodeError{"total length", err}
		}
		e.Append(&body)
	case LengthCount:
		if len(o.Children) > maxCount {
			return EncodeError{"packet count", fmt.Errorf("%w: %d sub-packets", ErrTooLong, len(o.Children))}
		}
		e.Bit(true)
		if err := e.Bits(uint64(len(o.Children)), countBits); err != nil {
			return EncodeError{"packet count", err}
		}
		for _, c := range o.Children {
			if err := encodePacket(e, c); err != nil {
				return err
			}
		}
	default:
		return EncodeError{"length type", errors.New("unknown length type " + o.LengthType.String())}
	}
	return nil
}
