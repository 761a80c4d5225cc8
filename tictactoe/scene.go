package tictactoe

import (
	"embed"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/lixenwraith/tictac/engine"
	"github.com/lixenwraith/tictac/sprite"
)

//go:embed assets/board.txt
var assets embed.FS

// Sprite labels
const (
	LabelBoard  = "board"
	LabelCursor = "cursor"
	LabelStatus = "status"
	LabelHelp   = "help"
)

// Draw order: grid, cursor brackets, marks, text
const (
	layerBoard  = 0
	layerCursor = 1
	layerMark   = 2
	layerText   = 3
)

const (
	cursorGlyphs = "[ ]"
	helpText     = "arrows/hjkl move  enter place  r restart  m mute  q quit"
	mutedSuffix  = "  [muted]"
)

// ErrFrameTooSmall is returned when the scene does not fit the engine frame
var ErrFrameTooSmall = errors.New("frame too small for board")

// MarkLabel names the sprite holding the mark at (x, y)
func MarkLabel(x, y int) string {
	return fmt.Sprintf("mark_%d_%d", x, y)
}

// Scene keeps the engine's sprites in step with the game
type Scene struct {
	originX int
	originY int
	sound   Sounder

	status string
	marks  [BoardSize][BoardSize]Player
}

// NewScene places the board's top-left corner at (x, y)
func NewScene(x, y int, sound Sounder) *Scene {
	if sound == nil {
		sound = silent{}
	}
	return &Scene{originX: x, originY: y, sound: sound}
}

// RequiredSize returns the smallest frame that holds the scene
func (s *Scene) RequiredSize() (int, int) {
	w := BoardWidth
	longest := len("X wins! r to restart" + mutedSuffix)
	for _, n := range []int{utf8.RuneCountInString(helpText), longest} {
		if n > w {
			w = n
		}
	}
	return s.originX + w, s.originY + BoardHeight + 3
}

// Install loads the static sprites into e
func (s *Scene) Install(e *engine.Engine[Game]) error {
	fw, fh := e.Size()
	if w, h := s.RequiredSize(); fw < w || fh < h {
		return fmt.Errorf("%w: need %dx%d, have %dx%d", ErrFrameTooSmall, w, h, fw, fh)
	}

	board, err := sprite.FromFS(assets, LabelBoard, "assets/board.txt")
	if err != nil {
		return err
	}
	board.SetTranslation(s.originX, s.originY)
	board.SetLayer(layerBoard)
	e.RegisterSprite(LabelBoard, board)

	cursor := sprite.FromText(LabelCursor, cursorGlyphs)
	cursor.SetLayer(layerCursor)
	e.RegisterSprite(LabelCursor, cursor)

	help := sprite.FromText(LabelHelp, helpText)
	help.SetTranslation(s.originX, s.originY+BoardHeight+2)
	help.SetLayer(layerText)
	e.RegisterSprite(LabelHelp, help)

	s.status = ""
	s.marks = [BoardSize][BoardSize]Player{}
	return nil
}

// Update implements engine.Logic; it runs after input so each frame shows this tick's moves
func (s *Scene) Update(e *engine.Engine[Game], g *Game) {
	s.syncCursor(e, g)
	s.syncMarks(e, g)
	s.syncStatus(e, g)
}

func (s *Scene) syncCursor(e *engine.Engine[Game], g *Game) {
	cursor, ok := e.Sprite(LabelCursor)
	if !ok {
		return
	}
	fx, fy := g.Cursor().ToFrame()
	cursor.SetTranslation(s.originX+fx-1, s.originY+fy)
	cursor.SetVisible(!g.IsGameOver())
}

// syncMarks registers a sprite per owned cell and drops sprites of cleared cells
func (s *Scene) syncMarks(e *engine.Engine[Game], g *Game) {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			owner := g.Cell(x, y)
			if owner == s.marks[x][y] {
				continue
			}
			s.marks[x][y] = owner

			label := MarkLabel(x, y)
			if owner == PlayerNone {
				e.RemoveSprite(label)
				continue
			}
			mark := sprite.FromText(label, string(owner.Glyph()))
			fx, fy := BoardCoordinates{X: x, Y: y}.ToFrame()
			mark.SetTranslation(s.originX+fx, s.originY+fy)
			mark.SetLayer(layerMark)
			e.RegisterSprite(label, mark)
		}
	}
}

// syncStatus replaces the status sprite when its text changes
func (s *Scene) syncStatus(e *engine.Engine[Game], g *Game) {
	text := StatusText(g)
	if s.sound.Muted() {
		text += mutedSuffix
	}
	if text == s.status {
		return
	}
	s.status = text

	status := sprite.FromText(LabelStatus, text)
	status.SetTranslation(s.originX, s.originY+BoardHeight+1)
	status.SetLayer(layerText)
	e.RegisterSprite(LabelStatus, status)
}

// StatusText describes whose turn it is or how the game ended
func StatusText(g *Game) string {
	switch {
	case g.Winner() != PlayerNone:
		return g.Winner().String() + " wins! r to restart"
	case g.IsGridFilled():
		return "Draw! r to restart"
	default:
		return g.Turn().String() + " to move"
	}
}
