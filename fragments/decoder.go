package fragments

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a read would go past the end of the
// available bits.
var ErrOutOfBounds = errors.New("read past end of bit stream")

// A Decoder reads fixed-width unsigned integers from a bit stream,
// most significant bit first.
//
// A Decoder is a view over an immutable byte slice. Views created
// with [Decoder.Sub] share the underlying bytes but have their own
// read position.
type Decoder struct {
	in []byte
	// base is the absolute bit offset of the view's first bit in in.
	base int
	// len is the number of bits in the view.
	len int
	// pos is the number of bits consumed off the front of the view.
	pos int
}

// NewDecoder returns a Decoder that reads all the bits of bs, starting
// with the most significant bit of bs[0].
func NewDecoder(bs []byte) *Decoder {
	return &Decoder{
		in:  bs,
		len: 8 * len(bs),
	}
}

// Position returns the number of bits consumed from the view so far.
func (d *Decoder) Position() int { return d.pos }

// Remaining returns the number of unread bits in the view.
func (d *Decoder) Remaining() int { return d.len - d.pos }

// Offset returns the absolute bit offset of the read cursor within
// the original input, including the offset of any enclosing views.
func (d *Decoder) Offset() int { return d.base + d.pos }

// Bits reads width bits and returns them as an unsigned integer. width
// must be between 1 and 64.
//
// If fewer than width bits remain, Bits returns an error wrapping
// [ErrOutOfBounds] and does not advance the read cursor.
func (d *Decoder) Bits(width int) (uint64, error) {
	if width < 1 || width > 64 {
		return 0, fmt.Errorf("invalid read width %d, must be in [1,64]", width)
	}
	if err := d.check(width); err != nil {
		return 0, err
	}

	var ret uint64
	at := d.base + d.pos
	for left := width; left > 0; {
		b := d.in[at/8]
		// Bits still unread in the current byte.
		avail := 8 - at%8
		take := min(avail, left)
		shift := avail - take
		chunk := (b >> shift) & byte(1<<take-1)
		ret = ret<<take | uint64(chunk)
		at += take
		left -= take
	}
	d.pos += width
	return ret, nil
}

// Bit reads a single bit.
func (d *Decoder) Bit() (bool, error) {
	v, err := d.Bits(1)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// Sub returns a new Decoder over the next n bits, and advances d past
// them.
//
// The returned Decoder reads independently of d: consuming bits from
// one does not affect the other. If fewer than n bits remain, Sub
// returns an error wrapping [ErrOutOfBounds] and does not advance d.
func (d *Decoder) Sub(n int) (*Decoder, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid view length %d", n)
	}
	if err := d.check(n); err != nil {
		return nil, err
	}
	ret := &Decoder{
		in:   d.in,
		base: d.base + d.pos,
		len:  n,
	}
	d.pos += n
	return ret, nil
}

func (d *Decoder) check(n int) error {
	if rem := d.Remaining(); n > rem {
		return fmt.Errorf("reading %d bits at offset %d with %d remaining: %w", n, d.Offset(), rem, ErrOutOfBounds)
	}
	return nil
}
