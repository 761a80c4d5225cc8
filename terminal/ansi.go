// @focus: #terminal { ansi }
package terminal

import (
	"bufio"
	"strconv"
)

// Control sequences written by the ANSI terminal
var (
	csiClear = []byte("\x1b[2J\x1b[H")
	csiSGR0  = []byte("\x1b[0m")
	csiRIS   = []byte("\x1bc") // Full reset, crash path only

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// With DECAWM off a write in the last column leaves the cursor there instead of scrolling
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")
)

// writeCursorPos emits CUP for the 0-indexed cell (x, y)
func writeCursorPos(w *bufio.Writer, x, y int) {
	var scratch [24]byte
	seq := append(scratch[:0], 0x1b, '[')
	seq = strconv.AppendInt(seq, int64(max(y, 0)+1), 10)
	seq = append(seq, ';')
	seq = strconv.AppendInt(seq, int64(max(x, 0)+1), 10)
	seq = append(seq, 'H')
	w.Write(seq)
}
