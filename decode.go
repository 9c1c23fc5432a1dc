package bits

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/danderson/bits/fragments"
)

// MaxDepth is the deepest packet nesting that the decoder accepts.
// The root packet is at depth 0.
const MaxDepth = 512

const (
	headerBits     = 6
	literalBits    = 5
	totalLenBits   = 15
	countBits      = 11
	maxTotalLength = 1<<totalLenBits - 1
	maxCount       = 1<<countBits - 1
)

// Decode decodes the packet at the start of bs.
//
// Bits following the packet are ignored, since transmissions are
// padded out to a whole number of bytes.
func Decode(bs []byte) (Packet, error) {
	return DecodePacket(fragments.NewDecoder(bs))
}

// DecodeHex decodes a hex-encoded transmission. Hex digits may be
// upper or lower case.
//
// If s is not valid hex, including if it contains any whitespace,
// DecodeHex returns an error wrapping [ErrInvalidEncoding].
func DecodeHex(s string) (Packet, error) {
	bs, err := parseHex(s)
	if err != nil {
		return nil, err
	}
	return Decode(bs)
}

func parseHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of hex digits (%d)", ErrInvalidEncoding, len(s))
	}
	bs, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return bs, nil
}

// DecodePacket decodes one packet from d, including all its
// descendants.
//
// On success, d is left positioned immediately after the packet. On
// failure, DecodePacket returns a [DecodeError] and no packet.
func DecodePacket(d *fragments.Decoder) (Packet, error) {
	return decodePacket(d, 0)
}

var debugDecoders atomic.Bool

// SetDebug turns decoder debug logging on or off.
func SetDebug(on bool) {
	debugDecoders.Store(on)
}

func debugDecoder(msg string, args ...any) {
	if !debugDecoders.Load() {
		return
	}
	log.Printf(msg, args...)
}

func decodePacket(d *fragments.Decoder, depth int) (Packet, error) {
	if depth > MaxDepth {
		return nil, decodeErr(d, "packet", fmt.Errorf("%w: depth %d", ErrTooDeep, depth))
	}
	if rem := d.Remaining(); rem < headerBits {
		return nil, decodeErr(d, "header", fmt.Errorf("%w: need %d bits, have %d", ErrTruncated, headerBits, rem))
	}
	start := d.Offset()
	version, err := readField(d, "version", 3)
	if err != nil {
		return nil, err
	}
	typ, err := readField(d, "type", 3)
	if err != nil {
		return nil, err
	}
	debugDecoder("%*spacket at bit %d: version=%d type=%s", 2*depth, "", start, version, Type(typ))

	if Type(typ) == TypeLiteral {
		return decodeLiteral(d, uint8(version))
	}
	return decodeOperator(d, uint8(version), Type(typ), depth)
}

func decodeLiteral(d *fragments.Decoder, version uint8) (Packet, error) {
	var v uint64
	for {
		group, err := readField(d, "literal group", literalBits)
		if err != nil {
			return nil, err
		}
		if v>>60 != 0 {
			return nil, decodeErr(d, "literal group", fmt.Errorf("%w: more than 16 significant groups", ErrOverflow))
		}
		v = v<<4 | group&0xf
		if group&0x10 == 0 {
			break
		}
	}
	return &Literal{Version: version, Value: v}, nil
}

func decodeOperator(d *fragments.Decoder, version uint8, typ Type, depth int) (Packet, error) {
	lt, err := readField(d, "length type", 1)
	if err != nil {
		return nil, err
	}
	ret := &Operator{
		Version:    version,
		Type:       typ,
		LengthType: LengthType(lt),
	}

	switch ret.LengthType {
	case LengthBits:
		n, err := readField(d, "total length", totalLenBits)
		if err != nil {
			return nil, err
		}
		sub, err := d.Sub(int(n))
		if err != nil {
			return nil, decodeErr(d, "sub-packets", fmt.Errorf("%w: %w", ErrTruncated, err))
		}
		debugDecoder("%*s%d bits of sub-packets", 2*depth+2, "", n)
		for sub.Remaining() > 0 {
			child, err := decodePacket(sub, depth+1)
			if err != nil {
				// The sub-view's bits all exist in the input, so
				// running out of them means the declared length
				// cut a child short.
				if errors.Is(err, ErrTruncated) && !errors.Is(err, ErrFraming) {
					err = decodeErr(sub, "sub-packets", fmt.Errorf("%w: %d-bit length ends inside a packet: %w", ErrFraming, n, err))
				}
				return nil, err
			}
			ret.Children = append(ret.Children, child)
		}
	case LengthCount:
		n, err := readField(d, "packet count", countBits)
		if err != nil {
			return nil, err
		}
		debugDecoder("%*s%d sub-packets", 2*depth+2, "", n)
		for range n {
			child, err := decodePacket(d, depth+1)
			if err != nil {
				return nil, err
			}
			ret.Children = append(ret.Children, child)
		}
	}

	return ret, nil
}

// readField reads a fixed-width field, reporting a lack of input as
// [ErrTruncated].
func readField(d *fragments.Decoder, field string, width int) (uint64, error) {
	v, err := d.Bits(width)
	if err != nil {
		return 0, decodeErr(d, field, fmt.Errorf("%w: %w", ErrTruncated, err))
	}
	return v, nil
}
