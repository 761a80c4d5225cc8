package terminal

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeBackend records output and replays scripted input chunks
type fakeBackend struct {
	mu       sync.Mutex
	out      bytes.Buffer
	input    chan []byte
	initErr  error
	inited   bool
	restored bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{input: make(chan []byte, 16)}
}

func (b *fakeBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.inited = true
	return nil
}

func (b *fakeBackend) Fini() { b.restored = true }

func (b *fakeBackend) Size() (int, int) { return 20, 10 }

func (b *fakeBackend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.Write(p)
}

func (b *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	case data := <-b.input:
		return data, nil
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (b *fakeBackend) output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

func TestInitEntersAltScreenAndHidesCursor(t *testing.T) {
	b := newFakeBackend()
	term := NewWithBackend(b)

	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()

	if !b.inited {
		t.Error("Expected backend raw mode init")
	}
	out := b.output()
	for _, seq := range [][]byte{csiAltScreenEnter, csiCursorHide, csiAutoWrapOff} {
		if !strings.Contains(out, string(seq)) {
			t.Errorf("Expected %q in init output", seq)
		}
	}
}

func TestFiniRestoresTerminal(t *testing.T) {
	b := newFakeBackend()
	term := NewWithBackend(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	term.Fini()
	term.Fini() // Second call is a no-op

	if !b.restored {
		t.Error("Expected backend restore")
	}
	out := b.output()
	if strings.Count(out, string(csiAltScreenExit)) != 1 {
		t.Errorf("Expected exactly one alt screen exit, got output %q", out)
	}
	if !strings.Contains(out, string(csiCursorShow)) {
		t.Error("Expected cursor show on Fini")
	}
}

func TestInitFailureLeavesScreenUntouched(t *testing.T) {
	b := newFakeBackend()
	b.initErr = errors.New("no tty")
	term := NewWithBackend(b)

	err := term.Init()
	if err == nil || !errors.Is(err, b.initErr) {
		t.Fatalf("Expected wrapped init error, got %v", err)
	}
	if b.output() != "" {
		t.Errorf("Expected no output after failed init, got %q", b.output())
	}
	if err := term.SetGlyph(0, 0, 'x'); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestSetGlyphCoalescesCursorMoves(t *testing.T) {
	b := newFakeBackend()
	term := NewWithBackend(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()
	before := len(b.output())

	term.SetGlyph(2, 3, 'a')
	term.SetGlyph(3, 3, 'b') // Adjacent, no move needed
	term.SetGlyph(0, 0, 'é')
	if err := term.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := b.output()[before:]
	want := "\x1b[4;3Hab\x1b[1;1Hé"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSetGlyphRepositionsAfterWideRune(t *testing.T) {
	b := newFakeBackend()
	term := NewWithBackend(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()
	before := len(b.output())

	// 漢 occupies two columns on most terminals
	term.SetGlyph(0, 1, '漢')
	term.SetGlyph(1, 1, 'x')
	term.SetGlyph(2, 1, 'y')
	if err := term.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := b.output()[before:]
	want := "\x1b[2;1H漢\x1b[2;2Hxy"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEventsDeliveredFromBackend(t *testing.T) {
	b := newFakeBackend()
	term := NewWithBackend(b)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Fini()

	b.input <- []byte("q\x1b[A")

	var got []Event
	timeout := time.After(time.Second)
	for len(got) < 2 {
		select {
		case ev := <-term.Events():
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("Timed out, got %d events", len(got))
		}
	}
	if got[0].Key != KeyRune || got[0].Rune != 'q' {
		t.Errorf("Expected rune q, got %+v", got[0])
	}
	if got[1].Key != KeyUp {
		t.Errorf("Expected KeyUp, got %+v", got[1])
	}
}

func TestEmergencyResetWritesRestoreSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	for _, seq := range [][]byte{csiCursorShow, csiAltScreenExit, csiAutoWrapOn} {
		if !strings.Contains(out, string(seq)) {
			t.Errorf("Expected %q in reset output", seq)
		}
	}
}
