package packet

import (
	"math/big"
	"strings"
)

// DefaultMaxDepth bounds operator nesting when no ParseOption overrides it.
const DefaultMaxDepth = 256

// ParseOption configures Parse and Decode.
type ParseOption func(*parser)

// WithMaxDepth limits how deeply packets may nest. The top-level packet is
// depth 1 and a literal counts as a level, so C200B40A82 (a sum of two
// literals) needs a limit of 2. Values below 1 are ignored.
func WithMaxDepth(depth int) ParseOption {
	return func(p *parser) {
		if depth >= 1 {
			p.maxDepth = depth
		}
	}
}

type parser struct {
	maxDepth int
}

// Decode expands a trimmed hex transmission and parses its single top-level
// packet. Bits left after that packet are padding and are ignored.
func Decode(hex string, opts ...ParseOption) (*Packet, error) {
	bits, err := DecodeHex(strings.TrimSpace(hex))
	if err != nil {
		return nil, err
	}
	return Parse(NewCursor(bits), opts...)
}

// Parse reads exactly one packet from c. It does not check what follows the
// packet; callers parsing a bounded body must check c.Exhausted themselves.
func Parse(c *Cursor, opts ...ParseOption) (*Packet, error) {
	p := &parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p.packet(c, 1)
}

func (p *parser) packet(c *Cursor, depth int) (*Packet, error) {
	if depth > p.maxDepth {
		return nil, newError(ErrCodeDepthExceeded, c.Pos(), "nesting depth exceeds %d", p.maxDepth)
	}
	version, err := c.Take(VersionBits)
	if err != nil {
		return nil, err
	}
	typeID, err := c.Take(TypeIDBits)
	if err != nil {
		return nil, err
	}
	if typeID == LiteralTypeID {
		value, err := p.literal(c)
		if err != nil {
			return nil, err
		}
		return &Packet{Version: uint8(version), Body: &Literal{Value: value}}, nil
	}
	start := c.Pos()
	op, err := p.operator(c, OpCode(typeID), depth)
	if err != nil {
		return nil, err
	}
	if err := checkArity(op, start); err != nil {
		return nil, err
	}
	return &Packet{Version: uint8(version), Body: op}, nil
}

// literal reads 5-bit groups until one has a clear continuation bit. The
// value is the big-endian concatenation of every group's nibble.
func (p *parser) literal(c *Cursor) (*big.Int, error) {
	value := new(big.Int)
	nibble := new(big.Int)
	for {
		group, err := c.Take(GroupBits)
		if err != nil {
			return nil, err
		}
		value.Lsh(value, GroupValueBits)
		value.Or(value, nibble.SetUint64(group&groupValueMask))
		if group&groupContinue == 0 {
			return value, nil
		}
	}
}

func (p *parser) operator(c *Cursor, code OpCode, depth int) (*Operator, error) {
	lengthType, err := c.Take(LengthTypeBits)
	if err != nil {
		return nil, err
	}
	op := &Operator{Op: code, LengthType: LengthType(lengthType)}

	if op.LengthType == LengthInBits {
		bitLen, err := c.Take(BitLengthBits)
		if err != nil {
			return nil, err
		}
		sub, err := c.TakeSub(int(bitLen))
		if err != nil {
			return nil, err
		}
		for !sub.Exhausted() {
			child, err := p.packet(sub, depth+1)
			if err != nil {
				return nil, err
			}
			op.Children = append(op.Children, child)
		}
		return op, nil
	}

	count, err := c.Take(CountBits)
	if err != nil {
		return nil, err
	}
	op.Children = make([]*Packet, 0, count)
	for i := uint64(0); i < count; i++ {
		child, err := p.packet(c, depth+1)
		if err != nil {
			return nil, err
		}
		op.Children = append(op.Children, child)
	}
	return op, nil
}

// checkArity enforces that operators have children and that comparisons have
// exactly two. offset is reported when non-negative.
func checkArity(op *Operator, offset int) error {
	n := len(op.Children)
	switch {
	case op.Op.IsComparison() && n != 2:
		return newError(ErrCodeInvalidArity, offset, "%s needs 2 sub-packets, got %d", op.Op, n)
	case n == 0:
		return newError(ErrCodeInvalidArity, offset, "%s has no sub-packets", op.Op)
	}
	for i, child := range op.Children {
		if child == nil {
			return newError(ErrCodeInvalidArity, offset, "%s sub-packet %d is nil", op.Op, i)
		}
	}
	return nil
}
