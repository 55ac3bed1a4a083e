package packet

// Cursor is a read position over an immutable bit sequence.
//
// A Cursor never copies the underlying bits: sub-views created by TakeSub
// share the buffer and only narrow the [pos, end) window, so offsets reported
// in errors stay absolute. A Cursor is not safe for concurrent use; it lives
// for the duration of one decode call.
type Cursor struct {
	bits []byte
	pos  int
	end  int
}

// NewCursor returns a cursor over the whole bit sequence.
func NewCursor(bits []byte) *Cursor {
	return &Cursor{bits: bits, end: len(bits)}
}

// Pos returns the absolute bit offset of the next read.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bits in this view.
func (c *Cursor) Remaining() int { return c.end - c.pos }

// Exhausted reports whether every bit of this view has been consumed.
func (c *Cursor) Exhausted() bool { return c.pos >= c.end }

// Take consumes the next n bits (n <= 64) and returns them as a big-endian
// unsigned integer. On TRUNCATED_BITSTREAM the cursor does not advance.
func (c *Cursor) Take(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, newError(ErrCodeFieldOverflow, c.pos, "field width %d out of range", n)
	}
	if c.Remaining() < n {
		return 0, newError(ErrCodeTruncated, c.pos, "need %d bits, have %d", n, c.Remaining())
	}
	var v uint64
	for _, b := range c.bits[c.pos : c.pos+n] {
		v = v<<1 | uint64(b&1)
	}
	c.pos += n
	return v, nil
}

// TakeSub carves the next n bits out as an independent bounded cursor and
// advances this cursor past them.
func (c *Cursor) TakeSub(n int) (*Cursor, error) {
	if n < 0 || c.Remaining() < n {
		return nil, newError(ErrCodeTruncated, c.pos, "sub-view of %d bits exceeds %d remaining", n, c.Remaining())
	}
	sub := &Cursor{bits: c.bits, pos: c.pos, end: c.pos + n}
	c.pos += n
	return sub, nil
}
