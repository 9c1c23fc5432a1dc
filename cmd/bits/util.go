package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danderson/bits"
)

type indenter struct {
	out        io.Writer
	prefix     string
	indentNext bool
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if i.indentNext {
			i.indentNext = false
			_, err := io.WriteString(i.out, i.prefix)
			if err != nil {
				return ret, err
			}
		}

		wr := bs
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.indentNext = true
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			bs = nil
		}

		n, err := i.out.Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
}

// printTree writes p and its descendants to out, one per line,
// indented by depth. Operators that evaluate successfully are
// annotated with their value.
func printTree(out *indenter, p bits.Packet) error {
	vals := map[*bits.Operator]result{}
	evalTree(p, vals)
	out.indentNext = true
	return printPacket(out, p, vals, 0)
}

type result struct {
	val uint64
	err error
}

// evalTree records the value of every operator under p in vals, visiting
// each packet once.
func evalTree(p bits.Packet, vals map[*bits.Operator]result) result {
	o, ok := p.(*bits.Operator)
	if !ok {
		v, err := bits.Value(p)
		return result{v, err}
	}

	// Evaluate o against literals holding its children's values, so that
	// bits.Value does not descend into the subtree again.
	var childErr error
	flat := &bits.Operator{Type: o.Type, Children: make([]bits.Packet, len(o.Children))}
	for i, c := range o.Children {
		r := evalTree(c, vals)
		if r.err != nil && childErr == nil {
			childErr = r.err
		}
		flat.Children[i] = &bits.Literal{Value: r.val}
	}
	v, err := bits.Value(flat)
	var ret result
	switch {
	case errors.Is(err, bits.ErrInvalidArity), errors.Is(err, bits.ErrInvalidPacketType):
		ret = result{err: err}
	case childErr != nil:
		ret = result{err: childErr}
	default:
		ret = result{v, err}
	}
	vals[o] = ret
	return ret
}

func printPacket(out *indenter, p bits.Packet, vals map[*bits.Operator]result, depth int) error {
	out.indent(depth)
	switch p := p.(type) {
	case *bits.Literal:
		out.f("%v", p)
	case *bits.Operator:
		if r := vals[p]; r.err == nil {
			out.f("%v = %d", p, r.val)
		} else {
			out.f("%v = error: %v", p, r.err)
		}
		for _, c := range p.Children {
			if err := printPacket(out, c, vals, depth+1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown packet %T", p)
	}
	return nil
}

// readTransmission returns the hex transmission to decode: the sole
// element of args if present, else the first line of the file at
// path, else the first line of stdin. Surrounding whitespace is
// removed.
func readTransmission(args []string, path string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	in := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}
	sc := bufio.NewScanner(in)
	// Transmissions are a single line, but can be long.
	sc.Buffer(nil, 1<<20)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", errors.New("no transmission in input")
	}
	return strings.TrimSpace(sc.Text()), nil
}
