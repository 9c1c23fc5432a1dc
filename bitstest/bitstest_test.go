package bitstest_test

import (
	"bytes"
	"testing"

	"github.com/danderson/bits"
	"github.com/danderson/bits/bitstest"
	"github.com/google/go-cmp/cmp"
)

func TestRaw(t *testing.T) {
	got := bitstest.Raw(t, "110 100 10111 11110 00101")
	want := []byte{0xd2, 0xfe, 0x28}
	if !bytes.Equal(got, want) {
		t.Fatalf("Raw() wrong output:\n  got: % x\n want: % x", got, want)
	}
	if got, want := bitstest.Binary(got), "110100101111111000101000"; got != want {
		t.Fatalf("Binary() got %s, want %s", got, want)
	}
}

func TestNested(t *testing.T) {
	got := bitstest.Nested(2, bits.TypeMaximum, bitstest.Lit(1, 5))
	want := &bits.Operator{
		Type:       bits.TypeMaximum,
		LengthType: bits.LengthCount,
		Children: []bits.Packet{
			&bits.Operator{
				Type:       bits.TypeMaximum,
				LengthType: bits.LengthCount,
				Children:   []bits.Packet{&bits.Literal{Version: 1, Value: 5}},
			},
		},
	}
	if diff := cmp.Diff(got, bits.Packet(want)); diff != "" {
		t.Fatalf("Nested() wrong tree (-got+want):\n%s", diff)
	}
}

func TestMustMarshal(t *testing.T) {
	got := bitstest.MustMarshal(t, bitstest.Lit(6, 2021))
	want := []byte{0xd2, 0xfe, 0x28}
	if !bytes.Equal(got, want) {
		t.Fatalf("MustMarshal() wrong output:\n  got: % x\n want: % x", got, want)
	}
}
