package render

import (
	"fmt"
	"strings"
)

// Blank is the glyph every cell holds until written
const Blank = ' '

// FrameBuffer is one rendered frame: a fixed-size, row-major grid of glyphs
type FrameBuffer struct {
	cells  []rune
	width  int
	height int
}

// NewFrameBuffer creates a buffer with every cell set to Blank
func NewFrameBuffer(width, height int) *FrameBuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("render: negative frame size %dx%d", width, height))
	}
	b := &FrameBuffer{
		cells:  make([]rune, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width in cells
func (b *FrameBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in cells
func (b *FrameBuffer) Height() int {
	return b.height
}

// Clear resets all cells to Blank using exponential copy
func (b *FrameBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Blank
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// InBounds reports whether (x, y) addresses a cell
func (b *FrameBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// index panics on out-of-range access; callers own keeping coordinates addressable
func (b *FrameBuffer) index(x, y int) int {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("render: cell (%d,%d) outside %dx%d frame", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// At returns the glyph at (x, y)
func (b *FrameBuffer) At(x, y int) rune {
	return b.cells[b.index(x, y)]
}

// Set writes glyph g at (x, y); a zero rune is stored as Blank
func (b *FrameBuffer) Set(x, y int, g rune) {
	if g == 0 {
		g = Blank
	}
	b.cells[b.index(x, y)] = g
}

// Row returns a copy of row y
func (b *FrameBuffer) Row(y int) []rune {
	start := b.index(0, y)
	row := make([]rune, b.width)
	copy(row, b.cells[start:start+b.width])
	return row
}

// Clone returns an independent copy
func (b *FrameBuffer) Clone() *FrameBuffer {
	c := &FrameBuffer{
		cells:  make([]rune, len(b.cells)),
		width:  b.width,
		height: b.height,
	}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether o has the same size and glyphs
func (b *FrameBuffer) Equal(o *FrameBuffer) bool {
	if o == nil || b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the frame as newline-separated rows, for logs and test failures
func (b *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow(len(b.cells) + b.height)
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range b.cells[y*b.width : (y+1)*b.width] {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
