package tictactoe

// BoardSize is the number of cells per side
const BoardSize = 3

// Board layout in frame cells
const (
	cellStrideX = 4
	cellStrideY = 2
	BoardWidth  = BoardSize*cellStrideX - 1
	BoardHeight = BoardSize*cellStrideY - 1
)

// BoardCoordinates addresses a cell; X is the column, Y the row, both 0..2
type BoardCoordinates struct {
	X, Y int
}

// ToFrame returns the frame offset of the cell's center relative to the board origin
func (c BoardCoordinates) ToFrame() (int, int) {
	return 1 + c.X*cellStrideX, c.Y * cellStrideY
}

// Direction is a cursor move
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)
