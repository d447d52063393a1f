package extract

import (
	"fmt"

	"fortio.org/safecast"
)

// cursor is a byte-level position inside one file's content.
type cursor struct {
	src   []byte
	off   uint32
	limit uint32
}

func newCursor(content []byte) cursor {
	limit, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("file content length overflow: %w", err))
	}
	return cursor{src: content, limit: limit}
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek reads the current byte, or 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peekAt reads the byte n positions ahead, or 0 past EOF.
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.src[c.off+n]
}

// bump advances one byte and returns it, or 0 at EOF.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// text returns the source bytes in [start, end) as a string.
func (c *cursor) text(start, end uint32) string {
	return string(c.src[start:end])
}
