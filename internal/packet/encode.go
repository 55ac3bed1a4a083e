package packet

import (
	"fmt"
	"math/big"
)

// Writer accumulates a bit sequence, the inverse of Cursor.
type Writer struct {
	bits []byte
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int { return len(w.bits) }

// Bits returns the written bit sequence. The slice is shared with w.
func (w *Writer) Bits() []byte { return w.bits }

// Put appends the low n bits of v, most-significant first. It fails with
// FIELD_OVERFLOW if v does not fit in n bits.
func (w *Writer) Put(v uint64, n int) error {
	if n < 0 || n > 64 || (n < 64 && v>>uint(n) != 0) {
		return newError(ErrCodeFieldOverflow, len(w.bits), "value %d does not fit in %d bits", v, n)
	}
	for shift := n - 1; shift >= 0; shift-- {
		w.bits = append(w.bits, byte(v>>uint(shift))&1)
	}
	return nil
}

func (w *Writer) append(bits []byte) {
	w.bits = append(w.bits, bits...)
}

// Encode serializes p into a bit sequence. Operators keep the framing
// recorded in their LengthType, so Parse(Encode(p)) reproduces p.
func Encode(p *Packet) ([]byte, error) {
	w := &Writer{}
	if err := encodePacket(w, p); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// EncodeToHex serializes p and packs it into hex, zero-padding the tail.
func EncodeToHex(p *Packet) (string, error) {
	bits, err := Encode(p)
	if err != nil {
		return "", err
	}
	return EncodeHex(bits), nil
}

func encodePacket(w *Writer, p *Packet) error {
	if p == nil {
		return fmt.Errorf("encode: nil packet")
	}
	if p.Version > MaxVersion {
		return newError(ErrCodeFieldOverflow, -1, "version %d exceeds %d", p.Version, MaxVersion)
	}
	if err := w.Put(uint64(p.Version), VersionBits); err != nil {
		return err
	}
	switch body := p.Body.(type) {
	case *Literal:
		if err := w.Put(LiteralTypeID, TypeIDBits); err != nil {
			return err
		}
		return encodeLiteral(w, body.Int())
	case *Operator:
		if !body.Op.Valid() {
			return fmt.Errorf("encode: unknown operator %d", uint8(body.Op))
		}
		if err := checkArity(body, -1); err != nil {
			return err
		}
		if err := w.Put(uint64(body.Op), TypeIDBits); err != nil {
			return err
		}
		return encodeOperator(w, body)
	default:
		return fmt.Errorf("encode: unknown packet body %T", p.Body)
	}
}

// encodeLiteral writes the minimal group sequence for value; zero is a single
// terminal group.
func encodeLiteral(w *Writer, value *big.Int) error {
	if value.Sign() < 0 {
		return newError(ErrCodeFieldOverflow, -1, "literal %s is negative", value)
	}
	groups := (value.BitLen() + GroupValueBits - 1) / GroupValueBits
	if groups == 0 {
		groups = 1
	}
	for i := groups - 1; i >= 0; i-- {
		var nibble uint64
		for b := GroupValueBits - 1; b >= 0; b-- {
			nibble = nibble<<1 | uint64(value.Bit(i*GroupValueBits+b))
		}
		if i > 0 {
			nibble |= groupContinue
		}
		if err := w.Put(nibble, GroupBits); err != nil {
			return err
		}
	}
	return nil
}

func encodeOperator(w *Writer, op *Operator) error {
	children := &Writer{}
	for _, child := range op.Children {
		if err := encodePacket(children, child); err != nil {
			return err
		}
	}
	if err := w.Put(uint64(op.LengthType), LengthTypeBits); err != nil {
		return err
	}
	switch op.LengthType {
	case LengthInBits:
		if children.Len() > MaxBitLength {
			return newError(ErrCodeFieldOverflow, -1, "%s children span %d bits, max %d", op.Op, children.Len(), MaxBitLength)
		}
		if err := w.Put(uint64(children.Len()), BitLengthBits); err != nil {
			return err
		}
	case LengthInPackets:
		if len(op.Children) > MaxChildCount {
			return newError(ErrCodeFieldOverflow, -1, "%s has %d children, max %d", op.Op, len(op.Children), MaxChildCount)
		}
		if err := w.Put(uint64(len(op.Children)), CountBits); err != nil {
			return err
		}
	default:
		return fmt.Errorf("encode: unknown length type %d", uint8(op.LengthType))
	}
	w.append(children.Bits())
	return nil
}
