// internal/report/cursor.go
package report

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when the raw buffer runs out before the
// field sequence does.
var ErrTruncated = errors.New("report: truncated buffer")

// cursor is a checked sequential reader over one raw report.
// All multi-byte reads are big-endian.
//
// The cursor is sticky: the first underrun records the error and every
// later read returns zero without advancing. The caller checks err once
// after the full field sequence.
type cursor struct {
	buf []byte
	off int
	err error
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// take returns the next width bytes or nil on underrun.
func (c *cursor) take(width int) []byte {
	if c.err != nil {
		return nil
	}
	if len(c.buf)-c.off < width {
		c.err = errors.Wrapf(ErrTruncated,
			"need %d bytes at offset %d, have %d",
			width, c.off, len(c.buf)-c.off,
		)
		return nil
	}
	b := c.buf[c.off : c.off+width]
	c.off += width
	return b
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (c *cursor) i16() int16 {
	return int16(c.u16())
}

// skip advances over a reserved region. Underrun is still an error:
// reserved bytes are part of the fixed layout.
func (c *cursor) skip(n int) {
	c.take(n)
}
