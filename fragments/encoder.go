package fragments

import "fmt"

// An Encoder writes fixed-width unsigned integers to a bit stream,
// most significant bit first.
type Encoder struct {
	out []byte
	// n is the number of bits written to out.
	n int
}

// Len returns the number of bits written so far.
func (e *Encoder) Len() int { return e.n }

// Bits writes the low width bits of v. width must be between 1 and
// 64, and v must fit in width bits.
func (e *Encoder) Bits(v uint64, width int) error {
	if width < 1 || width > 64 {
		return fmt.Errorf("invalid write width %d, must be in [1,64]", width)
	}
	if width < 64 && v>>width != 0 {
		return fmt.Errorf("value %d does not fit in %d bits", v, width)
	}
	for i := width - 1; i >= 0; i-- {
		e.bit(v>>i&1 == 1)
	}
	return nil
}

// Bit writes a single bit.
func (e *Encoder) Bit(b bool) {
	e.bit(b)
}

func (e *Encoder) bit(b bool) {
	if e.n%8 == 0 {
		e.out = append(e.out, 0)
	}
	if b {
		e.out[e.n/8] |= 0x80 >> (e.n % 8)
	}
	e.n++
}

// Append writes all the bits of other to e.
func (e *Encoder) Append(other *Encoder) {
	for i := range other.n {
		e.bit(other.out[i/8]&(0x80>>(i%8)) != 0)
	}
}

// Bytes returns the encoded output. If the number of bits written is
// not a multiple of 8, the final byte is padded with zero bits.
func (e *Encoder) Bytes() []byte {
	return e.out
}
