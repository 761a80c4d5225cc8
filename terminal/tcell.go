package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tictac/core"
)

// tcellTerm implements Terminal on a tcell.Screen
// tcell owns raw mode, the alternate screen and terminfo; glyph writes go through its cell buffer
type tcellTerm struct {
	screen  tcell.Screen
	eventCh chan Event
	doneCh  chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal backed by screen, or by a new tcell screen when screen is nil
func NewTcell(screen tcell.Screen) (Terminal, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tcell screen: %w", err)
		}
		screen = s
	}
	return &tcellTerm{
		screen:  screen,
		eventCh: make(chan Event, eventBufferSize),
		doneCh:  make(chan struct{}),
	}, nil
}

func (t *tcellTerm) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.screen.Show()

	core.Go(t.pollLoop)

	t.initialized = true
	return nil
}

// pollLoop forwards key events until Fini makes PollEvent return nil
func (t *tcellTerm) pollLoop() {
	defer close(t.doneCh)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		out := convertTcellKey(kev)
		if out.Key == KeyNone {
			continue
		}
		select {
		case t.eventCh <- out:
		default:
		}
	}
}

func (t *tcellTerm) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.ShowCursor(0, 0)
	t.screen.Fini()
	<-t.doneCh
	t.finalized = true
}

func (t *tcellTerm) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerm) Events() <-chan Event {
	return t.eventCh
}

func (t *tcellTerm) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotInitialized
	}
	t.screen.Clear()
	return nil
}

func (t *tcellTerm) SetGlyph(x, y int, r rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotInitialized
	}
	t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
	return nil
}

func (t *tcellTerm) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotInitialized
	}
	t.screen.Show()
	return nil
}

// tcellKeys maps tcell special keys that have a direct counterpart
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// convertTcellKey translates a tcell key event into the package's Event
func convertTcellKey(ev *tcell.EventKey) Event {
	var mod Modifier
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}

	k := ev.Key()
	if k == tcell.KeyRune {
		return Event{Type: EventKey, Key: KeyRune, Rune: ev.Rune(), Modifiers: mod}
	}
	if key, ok := tcellKeys[k]; ok {
		return Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	// Enter, Tab and Backspace share codes with Ctrl+M/I/H and were matched above
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(k-tcell.KeyCtrlA), Modifiers: mod | ModCtrl}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
