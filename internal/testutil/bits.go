package testutil

import (
	"math/big"
	"strings"

	"github.com/roach88/bits/internal/packet"
)

// BitString builds a transmission field by field, for inputs no encoder
// would produce (truncated payloads, bad arity, oversized counts).
type BitString struct {
	sb strings.Builder
}

// Field appends v as an n-bit big-endian field.
func (b *BitString) Field(v uint64, n int) *BitString {
	for i := n - 1; i >= 0; i-- {
		if v>>uint(i)&1 == 1 {
			b.sb.WriteByte('1')
		} else {
			b.sb.WriteByte('0')
		}
	}
	return b
}

// Header appends a version and type id.
func (b *BitString) Header(version, typeID uint64) *BitString {
	return b.Field(version, packet.VersionBits).Field(typeID, packet.TypeIDBits)
}

// Raw appends a string of '0' and '1' characters.
func (b *BitString) Raw(bits string) *BitString {
	b.sb.WriteString(bits)
	return b
}

// Len returns the number of bits written so far.
func (b *BitString) Len() int { return b.sb.Len() }

// String returns the bits as '0'/'1' text.
func (b *BitString) String() string { return b.sb.String() }

// Hex returns the transmission, zero-padded to a whole hex digit.
func (b *BitString) Hex() string {
	bits := make([]byte, 0, b.sb.Len()+packet.BitsPerHexDigit)
	for _, c := range b.sb.String() {
		bits = append(bits, byte(c-'0'))
	}
	return packet.EncodeHex(bits)
}

// Lit builds a literal packet.
func Lit(version uint8, value int64) *packet.Packet {
	return packet.NewLiteral(version, big.NewInt(value))
}

// Op builds an operator packet framed by bit length.
func Op(version uint8, op packet.OpCode, children ...*packet.Packet) *packet.Packet {
	return packet.NewOperator(version, op, children...)
}

// OpCount builds an operator packet framed by child count.
func OpCount(version uint8, op packet.OpCode, children ...*packet.Packet) *packet.Packet {
	p := packet.NewOperator(version, op, children...)
	p.Body.(*packet.Operator).LengthType = packet.LengthInPackets
	return p
}
