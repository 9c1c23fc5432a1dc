package fragments_test

import (
	"errors"
	"testing"

	"github.com/danderson/bits/fragments"
)

type mustDecoder struct {
	t *testing.T
	*fragments.Decoder
}

func (d *mustDecoder) MustBits(width int, want uint64) {
	got, err := d.Bits(width)
	if err != nil {
		d.t.Fatalf("Bits(%d) got err: %v", width, err)
	}
	if got != want {
		d.t.Fatalf("Bits(%d) got %#x, want %#x", width, got, want)
	}
	if testing.Verbose() {
		d.t.Logf("Bits(%d) = %#x", width, got)
	}
}

func (d *mustDecoder) MustBit(want bool) {
	got, err := d.Bit()
	if err != nil {
		d.t.Fatalf("Bit() got err: %v", err)
	}
	if got != want {
		d.t.Fatalf("Bit() got %v, want %v", got, want)
	}
}

func (d *mustDecoder) MustSub(n int) *mustDecoder {
	before := d.Position()
	sub, err := d.Sub(n)
	if err != nil {
		d.t.Fatalf("Sub(%d) got err: %v", n, err)
	}
	if got, want := d.Position(), before+n; got != want {
		d.t.Fatalf("Sub(%d) left parent at position %d, want %d", n, got, want)
	}
	if got := sub.Remaining(); got != n {
		d.t.Fatalf("Sub(%d) view has %d bits, want %d", n, got, n)
	}
	return &mustDecoder{d.t, sub}
}

func TestDecoder(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		decode func(d *mustDecoder)
	}{
		{
			"bytes",
			[]byte{0xab, 0xcd},
			func(d *mustDecoder) {
				d.MustBits(8, 0xab)
				d.MustBits(8, 0xcd)
			},
		},

		{
			"unaligned fields",
			// 110 100 10111 11110 00101 000
			[]byte{0xd2, 0xfe, 0x28},
			func(d *mustDecoder) {
				d.MustBits(3, 6)
				d.MustBits(3, 4)
				d.MustBits(5, 0b10111)
				d.MustBits(5, 0b11110)
				d.MustBits(5, 0b00101)
				d.MustBits(3, 0)
			},
		},

		{
			"64 bits across 9 bytes",
			[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
			func(d *mustDecoder) {
				d.MustBits(4, 0)
				d.MustBits(64, 0x1020304050607080)
				d.MustBits(4, 9)
			},
		},

		{
			"single bits",
			[]byte{0xa0},
			func(d *mustDecoder) {
				d.MustBit(true)
				d.MustBit(false)
				d.MustBit(true)
				d.MustBit(false)
				d.MustBits(4, 0)
			},
		},

		{
			"sub view",
			[]byte{0xd2, 0xfe, 0x28},
			func(d *mustDecoder) {
				d.MustBits(6, 0b110100)
				sub := d.MustSub(15)
				d.MustBits(3, 0)

				sub.MustBits(5, 0b10111)
				sub.MustBits(5, 0b11110)
				sub.MustBits(5, 0b00101)
				if got := sub.Offset(); got != 21 {
					t.Fatalf("sub view offset got %d, want 21", got)
				}
				if remain := sub.Remaining(); remain != 0 {
					t.Fatalf("sub view has %d unread bits", remain)
				}
			},
		},

		{
			"nested sub views",
			[]byte{0x0f, 0xf0},
			func(d *mustDecoder) {
				d.MustBits(2, 0)
				outer := d.MustSub(12)
				outer.MustBits(2, 0)
				inner := outer.MustSub(8)
				outer.MustBits(2, 0)
				inner.MustBits(8, 0xff)
				d.MustBits(2, 0)
			},
		},

		{
			"empty sub view",
			[]byte{0xff},
			func(d *mustDecoder) {
				d.MustSub(0)
				d.MustBits(8, 0xff)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := mustDecoder{
				t:       t,
				Decoder: fragments.NewDecoder(tc.in),
			}
			tc.decode(&d)
			if remain := d.Remaining(); remain > 0 {
				t.Fatalf("decoder failed to consume %d trailing bits", remain)
			}
		})
	}
}

func TestDecoderErrors(t *testing.T) {
	t.Run("width", func(t *testing.T) {
		d := fragments.NewDecoder(make([]byte, 16))
		for _, w := range []int{-1, 0, 65} {
			if _, err := d.Bits(w); err == nil {
				t.Errorf("Bits(%d) did not error", w)
			}
		}
		if got := d.Position(); got != 0 {
			t.Errorf("failed reads advanced position to %d", got)
		}
	})

	t.Run("past end", func(t *testing.T) {
		d := fragments.NewDecoder([]byte{0xff})
		if _, err := d.Bits(9); !errors.Is(err, fragments.ErrOutOfBounds) {
			t.Fatalf("Bits(9) got err %v, want ErrOutOfBounds", err)
		}
		if _, err := d.Sub(9); !errors.Is(err, fragments.ErrOutOfBounds) {
			t.Fatalf("Sub(9) got err %v, want ErrOutOfBounds", err)
		}
		if got := d.Position(); got != 0 {
			t.Fatalf("failed reads advanced position to %d", got)
		}
		if got, err := d.Bits(8); err != nil || got != 0xff {
			t.Fatalf("Bits(8) after failed reads got (%#x, %v), want 0xff", got, err)
		}
	})

	t.Run("past end of sub view", func(t *testing.T) {
		d := fragments.NewDecoder([]byte{0xff, 0xff})
		sub, err := d.Sub(4)
		if err != nil {
			t.Fatalf("Sub(4) got err: %v", err)
		}
		if _, err := sub.Bits(5); !errors.Is(err, fragments.ErrOutOfBounds) {
			t.Fatalf("sub.Bits(5) got err %v, want ErrOutOfBounds", err)
		}
		if got := d.Remaining(); got != 12 {
			t.Fatalf("parent has %d bits remaining, want 12", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		d := fragments.NewDecoder(nil)
		if _, err := d.Bit(); !errors.Is(err, fragments.ErrOutOfBounds) {
			t.Fatalf("Bit() got err %v, want ErrOutOfBounds", err)
		}
	})
}
