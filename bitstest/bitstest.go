// Package bitstest provides helpers to build BITS packet trees and
// raw transmissions in tests.
package bitstest

import (
	"strings"
	"testing"

	"github.com/danderson/bits"
	"github.com/danderson/bits/fragments"
)

// Lit returns a literal packet.
func Lit(version uint8, value uint64) *bits.Literal {
	return &bits.Literal{Version: version, Value: value}
}

// Op returns an operator packet whose children are framed by total
// length in bits.
func Op(version uint8, typ bits.Type, children ...bits.Packet) *bits.Operator {
	return &bits.Operator{
		Version:    version,
		Type:       typ,
		LengthType: bits.LengthBits,
		Children:   children,
	}
}

// OpCount returns an operator packet whose children are framed by
// count.
func OpCount(version uint8, typ bits.Type, children ...bits.Packet) *bits.Operator {
	ret := Op(version, typ, children...)
	ret.LengthType = bits.LengthCount
	return ret
}

// Nested returns depth operators of type typ, each wrapping the next
// with count framing, around leaf.
func Nested(depth int, typ bits.Type, leaf bits.Packet) bits.Packet {
	ret := leaf
	for range depth {
		ret = OpCount(0, typ, ret)
	}
	return ret
}

// Raw returns the transmission spelled out by s, a string of '0' and
// '1' characters. Spaces, underscores and newlines in s are ignored,
// so that fields can be visually separated. The output is padded with
// zero bits to a whole number of bytes.
//
// Raw calls t.Fatal if s contains any other character.
func Raw(t testing.TB, s string) []byte {
	t.Helper()
	var e fragments.Encoder
	for i, c := range s {
		switch c {
		case '0':
			e.Bit(false)
		case '1':
			e.Bit(true)
		case ' ', '_', '\n', '\t':
		default:
			t.Fatalf("bitstest.Raw: invalid character %q at index %d", c, i)
		}
	}
	return e.Bytes()
}

// MustMarshal returns the wire encoding of p, and calls t.Fatal if
// encoding fails.
func MustMarshal(t testing.TB, p bits.Packet) []byte {
	t.Helper()
	bs, err := bits.Marshal(p)
	if err != nil {
		t.Fatalf("marshaling %v: %v", p, err)
	}
	return bs
}

// Binary returns the bits of bs as a string of '0' and '1'
// characters, for use in test failure messages.
func Binary(bs []byte) string {
	var ret strings.Builder
	d := fragments.NewDecoder(bs)
	for d.Remaining() > 0 {
		b, _ := d.Bit()
		if b {
			ret.WriteByte('1')
		} else {
			ret.WriteByte('0')
		}
	}
	return ret.String()
}
