// Package tictactoe holds the game rules and the engine logic that draws them
package tictactoe

// Game is the board state; state is indexed [x][y]
type Game struct {
	state  [BoardSize][BoardSize]Player
	turn   Player
	winner Player
	cursor BoardCoordinates
}

// NewGame returns a fresh game with X to move and the cursor top-left
func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Reset clears the board
func (g *Game) Reset() {
	*g = Game{turn: PlayerOne}
}

func (g *Game) Turn() Player {
	return g.turn
}

func (g *Game) Winner() Player {
	return g.winner
}

func (g *Game) Cursor() BoardCoordinates {
	return g.cursor
}

// Cell returns the owner of (x, y)
func (g *Game) Cell(x, y int) Player {
	return g.state[x][y]
}

// IsGridFilled reports whether no empty cell remains
func (g *Game) IsGridFilled() bool {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if g.state[x][y] == PlayerNone {
				return false
			}
		}
	}
	return true
}

// IsGameOver reports a win or a full grid
func (g *Game) IsGameOver() bool {
	return g.winner != PlayerNone || g.IsGridFilled()
}

// MoveCursor moves to the nearest empty cell in dir, scanning the other
// lines when the cursor's own line has none; reports whether the cursor moved
func (g *Game) MoveCursor(dir Direction) bool {
	if pos, ok := g.nextAvailable(g.cursor, dir); ok {
		g.cursor = pos
		return true
	}

	for i := 0; i < BoardSize; i++ {
		from := BoardCoordinates{X: g.cursor.X, Y: i}
		if dir == DirUp || dir == DirDown {
			from = BoardCoordinates{X: i, Y: g.cursor.Y}
		}
		if pos, ok := g.nextAvailable(from, dir); ok {
			g.cursor = pos
			return true
		}
	}
	return false
}

// Play marks the cursor cell for the current player, passes the turn,
// jumps the cursor to the first empty cell and updates the winner
// Returns false when the game is over or the cell is taken
func (g *Game) Play() bool {
	if g.IsGameOver() || g.state[g.cursor.X][g.cursor.Y] != PlayerNone {
		return false
	}

	g.state[g.cursor.X][g.cursor.Y] = g.turn
	g.turn = g.turn.Next()
	if pos, ok := g.firstEmpty(); ok {
		g.cursor = pos
	}
	g.winner = g.computeWinner()
	return true
}

// firstEmpty scans columns left to right, each top to bottom
func (g *Game) firstEmpty() (BoardCoordinates, bool) {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if g.state[x][y] == PlayerNone {
				return BoardCoordinates{X: x, Y: y}, true
			}
		}
	}
	return BoardCoordinates{}, false
}

// nextAvailable finds the closest empty cell strictly past pos along dir
func (g *Game) nextAvailable(pos BoardCoordinates, dir Direction) (BoardCoordinates, bool) {
	switch dir {
	case DirUp:
		for y := pos.Y - 1; y >= 0; y-- {
			if g.state[pos.X][y] == PlayerNone {
				return BoardCoordinates{X: pos.X, Y: y}, true
			}
		}
	case DirDown:
		for y := pos.Y + 1; y < BoardSize; y++ {
			if g.state[pos.X][y] == PlayerNone {
				return BoardCoordinates{X: pos.X, Y: y}, true
			}
		}
	case DirLeft:
		for x := pos.X - 1; x >= 0; x-- {
			if g.state[x][pos.Y] == PlayerNone {
				return BoardCoordinates{X: x, Y: pos.Y}, true
			}
		}
	case DirRight:
		for x := pos.X + 1; x < BoardSize; x++ {
			if g.state[x][pos.Y] == PlayerNone {
				return BoardCoordinates{X: x, Y: pos.Y}, true
			}
		}
	}
	return BoardCoordinates{}, false
}

// lines lists every winning line as cell coordinates
var lines = func() [][BoardSize]BoardCoordinates {
	var out [][BoardSize]BoardCoordinates
	for i := 0; i < BoardSize; i++ {
		var col, row [BoardSize]BoardCoordinates
		for j := 0; j < BoardSize; j++ {
			col[j] = BoardCoordinates{X: i, Y: j}
			row[j] = BoardCoordinates{X: j, Y: i}
		}
		out = append(out, col, row)
	}
	var diag, anti [BoardSize]BoardCoordinates
	for i := 0; i < BoardSize; i++ {
		diag[i] = BoardCoordinates{X: i, Y: i}
		anti[i] = BoardCoordinates{X: i, Y: BoardSize - 1 - i}
	}
	return append(out, diag, anti)
}()

func (g *Game) computeWinner() Player {
	for _, line := range lines {
		first := g.state[line[0].X][line[0].Y]
		if first == PlayerNone {
			continue
		}
		won := true
		for _, c := range line[1:] {
			if g.state[c.X][c.Y] != first {
				won = false
				break
			}
		}
		if won {
			return first
		}
	}
	return PlayerNone
}
