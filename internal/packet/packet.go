package packet

import (
	"fmt"
	"math/big"
)

// Wire field widths.
const (
	VersionBits    = 3
	TypeIDBits     = 3
	LengthTypeBits = 1
	BitLengthBits  = 15
	CountBits      = 11
	GroupBits      = 5
	GroupValueBits = 4
	MaxVersion     = 1<<VersionBits - 1
	MaxBitLength   = 1<<BitLengthBits - 1
	MaxChildCount  = 1<<CountBits - 1
	LiteralTypeID  = 4
	groupContinue  = 1 << GroupValueBits
	groupValueMask = groupContinue - 1
)

// Packet is one node of a decoded transmission.
type Packet struct {
	Version uint8
	Body    Body
}

// Body is the variant part of a Packet: exactly one of *Literal or *Operator.
type Body interface {
	isBody()
}

// Literal carries an immediate value of unbounded width.
type Literal struct {
	Value *big.Int
}

// Operator applies Op to its children, which are kept in wire order.
type Operator struct {
	Op         OpCode
	LengthType LengthType
	Children   []*Packet
}

// Int returns the literal's value. A nil Value reads as zero.
func (l *Literal) Int() *big.Int {
	if l.Value == nil {
		return new(big.Int)
	}
	return l.Value
}

func (*Literal) isBody()  {}
func (*Operator) isBody() {}

// LengthType records how an operator framed its sub-packets.
type LengthType uint8

const (
	// LengthInBits frames children by their total bit length (15-bit field).
	LengthInBits LengthType = 0
	// LengthInPackets frames children by their count (11-bit field).
	LengthInPackets LengthType = 1
)

func (lt LengthType) String() string {
	switch lt {
	case LengthInBits:
		return "bits"
	case LengthInPackets:
		return "packets"
	default:
		return fmt.Sprintf("LengthType(%d)", uint8(lt))
	}
}

// OpCode is an operator's wire type id.
type OpCode uint8

const (
	OpSum         OpCode = 0
	OpProduct     OpCode = 1
	OpMin         OpCode = 2
	OpMax         OpCode = 3
	OpGreaterThan OpCode = 5
	OpLessThan    OpCode = 6
	OpEqual       OpCode = 7
)

var opNames = map[OpCode]string{
	OpSum:         "sum",
	OpProduct:     "product",
	OpMin:         "min",
	OpMax:         "max",
	OpGreaterThan: "greater_than",
	OpLessThan:    "less_than",
	OpEqual:       "equal",
}

func (op OpCode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", uint8(op))
}

// Valid reports whether op names a known operator.
func (op OpCode) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// IsComparison reports whether op takes exactly two operands.
func (op OpCode) IsComparison() bool {
	return op == OpGreaterThan || op == OpLessThan || op == OpEqual
}

// ParseOpCode maps an operator name back to its OpCode.
func ParseOpCode(name string) (OpCode, error) {
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (op OpCode) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("invalid operator %d", uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *OpCode) UnmarshalText(text []byte) error {
	parsed, err := ParseOpCode(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// NewLiteral builds a literal packet.
func NewLiteral(version uint8, value *big.Int) *Packet {
	return &Packet{Version: version, Body: &Literal{Value: value}}
}

// NewOperator builds an operator packet framed by bit length.
func NewOperator(version uint8, op OpCode, children ...*Packet) *Packet {
	return &Packet{Version: version, Body: &Operator{Op: op, Children: children}}
}

// IsLiteral reports whether p is a literal packet.
func (p *Packet) IsLiteral() bool {
	_, ok := p.Body.(*Literal)
	return ok
}

// Children returns the sub-packets of an operator, or nil for a literal.
func (p *Packet) Children() []*Packet {
	if op, ok := p.Body.(*Operator); ok {
		return op.Children
	}
	return nil
}

// Equal reports whether two trees have identical versions, bodies and
// child order. Operator framing is part of the comparison.
func (p *Packet) Equal(other *Packet) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Version != other.Version {
		return false
	}
	switch a := p.Body.(type) {
	case *Literal:
		b, ok := other.Body.(*Literal)
		return ok && a.Int().Cmp(b.Int()) == 0
	case *Operator:
		b, ok := other.Body.(*Operator)
		if !ok || a.Op != b.Op || a.LengthType != b.LengthType || len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !a.Children[i].Equal(b.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
