package tictactoe

// Player owns a cell or the turn; PlayerNone marks an empty cell
type Player uint8

const (
	PlayerNone Player = iota
	PlayerOne
	PlayerTwo
)

// Glyph returns the mark drawn for the player
func (p Player) Glyph() rune {
	switch p {
	case PlayerOne:
		return 'X'
	case PlayerTwo:
		return 'O'
	default:
		return ' '
	}
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "X"
	case PlayerTwo:
		return "O"
	default:
		return "none"
	}
}

// Next returns the player whose turn follows p
func (p Player) Next() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}
