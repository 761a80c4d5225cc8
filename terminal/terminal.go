package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Terminal is the display and keyboard surface used by the game loop
// Glyph writes are buffered until Flush; only the renderer goroutine writes while running
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Events returns the channel fed by the input reader
	Events() <-chan Event

	// Clear blanks the whole screen
	Clear() error

	// SetGlyph moves the write cursor to (x, y) and emits r
	SetGlyph(x, y int, r rune) error

	// Flush pushes buffered output to the tty
	Flush() error
}

// ErrNotInitialized is returned by output calls before Init or after Fini
var ErrNotInitialized = errors.New("terminal not initialized")

// outputBufferSize is large enough to hold a full-screen redraw
const outputBufferSize = 64 * 1024

// termImpl implements Terminal with direct ANSI sequences over a Backend
type termImpl struct {
	backend Backend
	writer  *bufio.Writer
	input   *inputReader

	// Last known cursor position, lets adjacent glyph writes skip the CUP sequence
	cursorX     int
	cursorY     int
	cursorValid bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal bound to the process stdin/stdout
func New() Terminal {
	return NewWithBackend(newBackend())
}

// NewWithBackend creates a Terminal over an explicit backend
func NewWithBackend(b Backend) Terminal {
	return &termImpl{
		backend: b,
		writer:  bufio.NewWriterSize(backendWriter{b}, outputBufferSize),
		input:   newInputReader(b),
	}
}

// backendWriter adapts Backend to io.Writer for bufio
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}

	w := t.writer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	w.Write(csiSGR0)
	w.Write(csiClear)
	if err := w.Flush(); err != nil {
		t.backend.Fini()
		return fmt.Errorf("screen setup: %w", err)
	}
	t.cursorValid = false

	t.input.start()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.input.stop()

	w := t.writer
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alternate screen so the main buffer has it
	w.Write(csiAutoWrapOn)
	w.Write(csiSGR0)
	w.Flush()

	t.backend.Fini()

	t.finalized = true
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// Events returns the input event channel
func (t *termImpl) Events() <-chan Event {
	return t.input.events()
}

// Clear blanks the screen and homes the cursor
func (t *termImpl) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ready() {
		return ErrNotInitialized
	}

	t.writer.Write(csiClear)
	t.cursorX, t.cursorY, t.cursorValid = 0, 0, true
	return nil
}

// SetGlyph buffers a positioned glyph write
func (t *termImpl) SetGlyph(x, y int, r rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ready() {
		return ErrNotInitialized
	}

	w := t.writer
	if !t.cursorValid || x != t.cursorX || y != t.cursorY {
		writeCursorPos(w, x, y)
	}

	if r == 0 {
		r = ' '
	}
	if r < 0x80 {
		// Auto-wrap is off, an ASCII glyph advances the cursor one cell
		t.cursorX, t.cursorY, t.cursorValid = x+1, y, true
		return w.WriteByte(byte(r))
	}

	// Display width of non-ASCII runes varies by terminal, reposition before the next write
	t.cursorValid = false
	_, err := w.WriteRune(r)
	return err
}

// Flush writes buffered output to the tty
func (t *termImpl) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ready() {
		return ErrNotInitialized
	}
	return t.writer.Flush()
}

func (t *termImpl) ready() bool {
	return t.initialized && !t.finalized
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
