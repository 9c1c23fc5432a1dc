package bits

import "fmt"

// Type is a packet type ID. It selects between literal packets and
// the operation an operator packet applies to its children.
type Type uint8

const (
	TypeSum     Type = 0
	TypeProduct Type = 1
	TypeMinimum Type = 2
	TypeMaximum Type = 3
	TypeLiteral Type = 4
	TypeGreater Type = 5
	TypeLess    Type = 6
	TypeEqual   Type = 7
)

var typeNames = [...]string{
	TypeSum:     "sum",
	TypeProduct: "product",
	TypeMinimum: "minimum",
	TypeMaximum: "maximum",
	TypeLiteral: "literal",
	TypeGreater: "greater",
	TypeLess:    "less",
	TypeEqual:   "equal",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// LengthType is the framing used for an operator packet's children.
type LengthType uint8

const (
	// LengthBits frames children by their total length in bits.
	LengthBits LengthType = 0
	// LengthCount frames children by their number.
	LengthCount LengthType = 1
)

func (l LengthType) String() string {
	switch l {
	case LengthBits:
		return "bits"
	case LengthCount:
		return "count"
	default:
		return fmt.Sprintf("LengthType(%d)", uint8(l))
	}
}

// Header is the header common to all packets.
type Header struct {
	Version uint8
	Type    Type
}

// Packet is a decoded packet: either a [*Literal] or an [*Operator].
type Packet interface {
	// Header returns the packet's header.
	Header() Header
	isPacket()
}

// Literal is a packet that carries a single unsigned integer.
type Literal struct {
	Version uint8
	Value   uint64
}

func (l *Literal) Header() Header { return Header{l.Version, TypeLiteral} }
func (*Literal) isPacket()        {}

func (l *Literal) String() string {
	return fmt.Sprintf("v%d literal(%d)", l.Version, l.Value)
}

// Operator is a packet that applies an operation to its children.
type Operator struct {
	Version uint8
	Type    Type
	// LengthType is the framing the children were decoded with, and
	// will be encoded with.
	LengthType LengthType
	// Children are the operands, in transmission order.
	Children []Packet
}

func (o *Operator) Header() Header { return Header{o.Version, o.Type} }
func (*Operator) isPacket()        {}

func (o *Operator) String() string {
	return fmt.Sprintf("v%d %s[%s](%d children)", o.Version, o.Type, o.LengthType, len(o.Children))
}
