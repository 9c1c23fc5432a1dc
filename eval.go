package bits

import (
	"fmt"
	"iter"
	mbits "math/bits"
	"slices"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/queue"
	"github.com/creachadair/mds/value"
)

// comparisons is the set of operator types that compare exactly two
// operands.
var comparisons = mapset.New(TypeGreater, TypeLess, TypeEqual)

// Walk returns an iterator over p and all its descendants, in
// breadth-first order.
func Walk(p Packet) iter.Seq[Packet] {
	return func(yield func(Packet) bool) {
		q := queue.New[Packet]()
		q.Add(p)
		for {
			pkt, ok := q.Pop()
			if !ok {
				return
			}
			if pkt == nil {
				continue
			}
			if !yield(pkt) {
				return
			}
			if op, ok := pkt.(*Operator); ok {
				for _, c := range op.Children {
					q.Add(c)
				}
			}
		}
	}
}

// VersionSum returns the sum of the versions of p and all its
// descendants.
func VersionSum(p Packet) uint64 {
	var ret uint64
	for pkt := range Walk(p) {
		ret += uint64(pkt.Header().Version)
	}
	return ret
}

// Value evaluates p.
//
// Literals evaluate to their value. Operators apply their operation
// to the values of their children, in order:
//
//   - [TypeSum]: the sum of all operands, or 0 if there are none.
//   - [TypeProduct]: the product of one or more operands.
//   - [TypeMinimum], [TypeMaximum]: the smallest or largest of one or
//     more operands.
//   - [TypeGreater], [TypeLess], [TypeEqual]: 1 if the comparison of
//     exactly two operands (first child on the left) holds, else 0.
//
// Operators with the wrong number of children fail with an
// [EvalError] wrapping [ErrInvalidArity]. Sums and products that do
// not fit in a uint64 fail with [ErrOverflow].
func Value(p Packet) (uint64, error) {
	switch p := p.(type) {
	case *Literal:
		return p.Value, nil
	case *Operator:
		return evalOperator(p)
	case nil:
		return 0, fmt.Errorf("%w: nil packet", ErrInvalidPacketType)
	default:
		return 0, fmt.Errorf("%w: unknown packet %T", ErrInvalidPacketType, p)
	}
}

func evalOperator(op *Operator) (uint64, error) {
	fail := func(reason error) (uint64, error) {
		return 0, EvalError{op.Type, len(op.Children), reason}
	}
	if err := checkArity(op.Type, len(op.Children)); err != nil {
		return fail(err)
	}

	vals := make([]uint64, len(op.Children))
	for i, c := range op.Children {
		v, err := Value(c)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}

	switch op.Type {
	case TypeSum:
		var sum uint64
		for _, v := range vals {
			s, carry := mbits.Add64(sum, v, 0)
			if carry != 0 {
				return fail(ErrOverflow)
			}
			sum = s
		}
		return sum, nil
	case TypeProduct:
		if slices.Contains(vals, 0) {
			return 0, nil
		}
		prod := uint64(1)
		for _, v := range vals {
			hi, lo := mbits.Mul64(prod, v)
			if hi != 0 {
				return fail(ErrOverflow)
			}
			prod = lo
		}
		return prod, nil
	case TypeMinimum, TypeMaximum:
		var best value.Maybe[uint64]
		for _, v := range vals {
			b, ok := best.GetOK()
			if !ok || (op.Type == TypeMinimum && v < b) || (op.Type == TypeMaximum && v > b) {
				best = value.Just(v)
			}
		}
		// checkArity guarantees at least one value.
		ret, _ := best.GetOK()
		return ret, nil
	case TypeGreater:
		return boolValue(vals[0] > vals[1]), nil
	case TypeLess:
		return boolValue(vals[0] < vals[1]), nil
	default:
		// TypeEqual, the only type left after checkArity.
		return boolValue(vals[0] == vals[1]), nil
	}
}

func checkArity(t Type, n int) error {
	switch {
	case t == TypeSum:
		return nil
	case t == TypeProduct, t == TypeMinimum, t == TypeMaximum:
		if n < 1 {
			return fmt.Errorf("%w: need at least 1, got %d", ErrInvalidArity, n)
		}
		return nil
	case comparisons.Has(t):
		if n != 2 {
			return fmt.Errorf("%w: need exactly 2, got %d", ErrInvalidArity, n)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s is not an operator", ErrInvalidPacketType, t)
	}
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
