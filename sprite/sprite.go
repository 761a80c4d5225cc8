// Package sprite holds labelled glyph patches and their placement in a frame
package sprite

import (
	"unicode/utf8"

	"github.com/lixenwraith/tictac/render"
)

// Sprite is a rectangular patch of glyphs with a translation, layer and visibility
// The patch size is fixed at load; placement and visibility change every tick
type Sprite struct {
	label   string
	rows    [][]rune
	width   int
	height  int
	x, y    int
	layer   int
	visible bool
}

// FromText builds a single-row sprite, one glyph per rune of text
func FromText(label, text string) *Sprite {
	row := make([]rune, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		row = append(row, r)
	}
	return &Sprite{
		label:   label,
		rows:    [][]rune{row},
		width:   len(row),
		height:  1,
		visible: true,
	}
}

// fromLines builds a sprite from text lines, right-padding short rows with blanks
func fromLines(label string, lines []string) *Sprite {
	if len(lines) == 0 {
		panic("sprite: empty resource for " + label)
	}

	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}

	rows := make([][]rune, len(lines))
	for i, l := range lines {
		row := make([]rune, width)
		n := 0
		for _, r := range l {
			row[n] = r
			n++
		}
		for ; n < width; n++ {
			row[n] = render.Blank
		}
		rows[i] = row
	}

	return &Sprite{
		label:   label,
		rows:    rows,
		width:   width,
		height:  len(rows),
		visible: true,
	}
}

func (s *Sprite) Label() string {
	return s.label
}

func (s *Sprite) Width() int {
	return s.width
}

func (s *Sprite) Height() int {
	return s.height
}

// Translation returns the top-left placement in frame coordinates
func (s *Sprite) Translation() (int, int) {
	return s.x, s.y
}

func (s *Sprite) SetTranslation(x, y int) {
	s.x, s.y = x, y
}

// Translate moves the sprite by (dx, dy)
func (s *Sprite) Translate(dx, dy int) {
	s.x += dx
	s.y += dy
}

func (s *Sprite) Layer() int {
	return s.layer
}

// SetLayer sets draw order; higher layers draw later and end up on top
func (s *Sprite) SetLayer(layer int) {
	s.layer = layer
}

func (s *Sprite) Visible() bool {
	return s.visible
}

func (s *Sprite) SetVisible(visible bool) {
	s.visible = visible
}

// GlyphAt returns the glyph at local (col, row) of the patch
func (s *Sprite) GlyphAt(col, row int) rune {
	return s.rows[row][col]
}

// Draw writes the patch into buf at the sprite's translation
// Cells outside buf panic; keeping sprites addressable is the caller's job
func (s *Sprite) Draw(buf *render.FrameBuffer) {
	if !s.visible {
		return
	}
	for row, glyphs := range s.rows {
		for col, g := range glyphs {
			buf.Set(s.x+col, s.y+row, g)
		}
	}
}
