package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/tictac/render"
	"github.com/lixenwraith/tictac/sprite"
	"github.com/lixenwraith/tictac/terminal"
)

// fakeTerminal records glyph writes into an in-memory screen
type fakeTerminal struct {
	mu        sync.Mutex
	initErr   error
	initCalls int
	finiCalls int
	writes    int
	screen    map[[2]int]rune
	events    chan terminal.Event
	width     int
	height    int
}

func newFakeTerminal(w, h int) *fakeTerminal {
	return &fakeTerminal{
		screen: make(map[[2]int]rune),
		events: make(chan terminal.Event, 16),
		width:  w,
		height: h,
	}
}

func (f *fakeTerminal) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	return f.initErr
}

func (f *fakeTerminal) Fini() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finiCalls++
}

func (f *fakeTerminal) Size() (int, int) { return f.width, f.height }

func (f *fakeTerminal) Events() <-chan terminal.Event { return f.events }

func (f *fakeTerminal) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = make(map[[2]int]rune)
	return nil
}

func (f *fakeTerminal) SetGlyph(x, y int, r rune) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.screen[[2]int{x, y}] = r
	return nil
}

func (f *fakeTerminal) Flush() error { return nil }

func (f *fakeTerminal) glyph(x, y int) rune {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screen[[2]int{x, y}]
}

type testState struct {
	calls []string
	ticks int
}

func newTestEngine(term terminal.Terminal, w, h int) (*Engine[testState], *MockTimeProvider) {
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	e := New[testState](term, Config{
		Width:        w,
		Height:       h,
		FPS:          60,
		TimeProvider: clock,
		Sleep:        clock.Sleep,
	})
	return e, clock
}

// stopAfter registers a callback that stops the engine on its n-th tick
func stopAfter(e *Engine[testState], n int) {
	e.RegisterLogicFunc(func(e *Engine[testState], s *testState) {
		s.ticks++
		if s.ticks == n {
			e.Stop()
		}
	})
}

func TestEngineEndToEndSingleGlyph(t *testing.T) {
	term := newFakeTerminal(10, 10)
	clock := NewMockTimeProvider(time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := New[testState](term, Config{
		Width:        10,
		Height:       10,
		FPS:          60,
		TimeProvider: clock,
		// One tick, then the context ends the loop
		Sleep: func(time.Duration) { cancel() },
	})

	x := sprite.FromText("x", "X")
	x.SetTranslation(2, 3)
	e.RegisterSprite("x", x)

	if err := e.Run(ctx, &testState{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.Frame() != 1 {
		t.Fatalf("Expected 1 tick, got %d", e.Frame())
	}

	frame := e.LastFrame()
	for y := 0; y < 10; y++ {
		for xx := 0; xx < 10; xx++ {
			want := render.Blank
			if xx == 2 && y == 3 {
				want = 'X'
			}
			if got := frame.At(xx, y); got != want {
				t.Errorf("Frame (%d,%d): expected %q, got %q", xx, y, want, got)
			}
		}
	}
	if term.glyph(2, 3) != 'X' {
		t.Errorf("Expected 'X' on screen at (2,3), got %q", term.glyph(2, 3))
	}
	if term.finiCalls != 1 {
		t.Errorf("Expected terminal restored once, got %d", term.finiCalls)
	}
}

func TestEngineLayering(t *testing.T) {
	e, _ := newTestEngine(newFakeTerminal(5, 5), 5, 5)

	a := sprite.FromText("a", "AAA")
	a.SetTranslation(0, 1)
	b := sprite.FromText("b", "B")
	b.SetTranslation(1, 1)
	b.SetLayer(1)

	// Registration order must not matter
	e.RegisterSprite("b", b)
	e.RegisterSprite("a", a)

	frame := render.NewFrameBuffer(5, 5)
	e.compose(frame)
	if got := string(frame.Row(1)); got != "ABA  " {
		t.Errorf("Expected higher layer on top, got row %q", got)
	}

	// Flip the layers
	a.SetLayer(2)
	frame = render.NewFrameBuffer(5, 5)
	e.compose(frame)
	if got := string(frame.Row(1)); got != "AAA  " {
		t.Errorf("Expected A on top after relayer, got row %q", got)
	}
}

func TestEngineEqualLayersDeterministic(t *testing.T) {
	e, _ := newTestEngine(newFakeTerminal(1, 1), 1, 1)
	e.RegisterSprite("m", sprite.FromText("m", "M"))
	e.RegisterSprite("z", sprite.FromText("z", "Z"))
	e.RegisterSprite("a", sprite.FromText("a", "A"))

	for i := 0; i < 20; i++ {
		frame := render.NewFrameBuffer(1, 1)
		e.compose(frame)
		if frame.At(0, 0) != 'Z' {
			t.Fatalf("Expected last label to win ties, got %q", frame.At(0, 0))
		}
	}
}

func TestEngineRegistryReplaceAndRemove(t *testing.T) {
	e, _ := newTestEngine(newFakeTerminal(3, 1), 3, 1)
	e.RegisterSprite("s", sprite.FromText("s", "old"))
	e.RegisterSprite("s", sprite.FromText("s", "new"))
	if e.SpriteCount() != 1 {
		t.Fatalf("Expected 1 sprite after overwrite, got %d", e.SpriteCount())
	}

	frame := render.NewFrameBuffer(3, 1)
	e.compose(frame)
	if frame.String() != "new" {
		t.Errorf("Expected replaced sprite drawn, got %q", frame.String())
	}

	e.RemoveSprite("s")
	e.RemoveSprite("missing")
	if _, ok := e.Sprite("s"); ok {
		t.Error("Expected sprite removed")
	}
	frame = render.NewFrameBuffer(3, 1)
	e.compose(frame)
	if frame.String() != "   " {
		t.Errorf("Expected blank frame, got %q", frame.String())
	}
}

func TestEngineStopEndsBeforeNextTick(t *testing.T) {
	term := newFakeTerminal(4, 4)
	e, _ := newTestEngine(term, 4, 4)
	stopAfter(e, 3)

	after := 0
	e.RegisterLogicFunc(func(*Engine[testState], *testState) { after++ })

	state := &testState{}
	if err := e.Run(context.Background(), state); err != nil {
		t.Fatal(err)
	}
	if state.ticks != 3 || e.Frame() != 3 {
		t.Errorf("Expected 3 ticks, got %d (frame counter %d)", state.ticks, e.Frame())
	}
	// The stopping tick still runs to completion
	if after != 3 {
		t.Errorf("Expected later callbacks to run on the stopping tick, got %d calls", after)
	}
	if e.Running() {
		t.Error("Expected engine stopped after Run")
	}
	if e.RenderStats().Frames != 3 {
		t.Errorf("Expected renderer to drain 3 frames, got %d", e.RenderStats().Frames)
	}
}

func TestEngineLogicOrder(t *testing.T) {
	e, _ := newTestEngine(newFakeTerminal(1, 1), 1, 1)
	e.RegisterLogicFunc(func(_ *Engine[testState], s *testState) { s.calls = append(s.calls, "first") })
	e.RegisterLogicFunc(func(_ *Engine[testState], s *testState) { s.calls = append(s.calls, "second") })
	stopAfter(e, 2)

	state := &testState{}
	if err := e.Run(context.Background(), state); err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "first", "second"}
	if len(state.calls) != len(want) {
		t.Fatalf("Expected %v, got %v", want, state.calls)
	}
	for i := range want {
		if state.calls[i] != want[i] {
			t.Errorf("Call %d: expected %s, got %s", i, want[i], state.calls[i])
		}
	}
}

func TestEngineKeyBatchPerTick(t *testing.T) {
	term := newFakeTerminal(1, 1)
	term.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'a'}
	term.events <- terminal.Event{Type: terminal.EventError, Err: errors.New("eof")}
	term.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyUp}

	e, _ := newTestEngine(term, 1, 1)
	var batches [][]terminal.Event
	e.RegisterLogicFunc(func(e *Engine[testState], _ *testState) {
		batches = append(batches, e.Keys())
	})
	stopAfter(e, 2)

	if err := e.Run(context.Background(), &testState{}); err != nil {
		t.Fatal(err)
	}
	if len(batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(batches))
	}
	first := batches[0]
	if len(first) != 2 || first[0].Rune != 'a' || first[1].Key != terminal.KeyUp {
		t.Errorf("Expected [a, Up] in first batch, got %+v", first)
	}
	if len(batches[1]) != 0 {
		t.Errorf("Expected empty second batch, got %+v", batches[1])
	}
}

func TestEngineTerminalSetupFailure(t *testing.T) {
	term := newFakeTerminal(2, 2)
	term.initErr = errors.New("not a tty")

	e, _ := newTestEngine(term, 2, 2)
	ran := false
	e.RegisterLogicFunc(func(*Engine[testState], *testState) { ran = true })

	err := e.Run(context.Background(), &testState{})
	if !errors.Is(err, ErrTerminalSetup) {
		t.Fatalf("Expected ErrTerminalSetup, got %v", err)
	}
	if !errors.Is(err, term.initErr) {
		t.Errorf("Expected cause to be wrapped, got %v", err)
	}
	if ran {
		t.Error("Logic must not run when setup fails")
	}
	if term.writes != 0 {
		t.Errorf("Expected no display writes, got %d", term.writes)
	}
}

func TestEnginePanicRestoresTerminal(t *testing.T) {
	term := newFakeTerminal(2, 2)
	e, _ := newTestEngine(term, 2, 2)
	e.RegisterLogicFunc(func(*Engine[testState], *testState) { panic("boom") })

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		e.Run(context.Background(), &testState{})
	}()

	if term.finiCalls != 1 {
		t.Errorf("Expected terminal restored on panic, got %d Fini calls", term.finiCalls)
	}
}

func TestEngineOutOfBoundsSpritePanics(t *testing.T) {
	e, _ := newTestEngine(newFakeTerminal(2, 2), 2, 2)
	s := sprite.FromText("wide", "abc")
	e.RegisterSprite("wide", s)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic composing a sprite past the frame edge")
		}
	}()
	e.compose(render.NewFrameBuffer(2, 2))
}

func TestEngineSleepsRemainingBudget(t *testing.T) {
	e, clock := newTestEngine(newFakeTerminal(1, 1), 1, 1)
	var deltas []time.Duration
	e.RegisterLogicFunc(func(e *Engine[testState], _ *testState) {
		deltas = append(deltas, e.Delta())
		clock.Advance(5 * time.Millisecond)
	})
	stopAfter(e, 5)

	if err := e.Run(context.Background(), &testState{}); err != nil {
		t.Fatal(err)
	}

	period := time.Second / 60
	// Delta spans the previous tick's work and sleep, so a tick that slept
	// the remaining budget is followed by one measuring a full period
	wantDeltas := []time.Duration{
		0,
		5*time.Millisecond + period,
		5 * time.Millisecond,
		period,
		5 * time.Millisecond,
	}
	if len(deltas) != len(wantDeltas) {
		t.Fatalf("Expected %d ticks, got %v", len(wantDeltas), deltas)
	}
	for i := range wantDeltas {
		if deltas[i] != wantDeltas[i] {
			t.Errorf("Tick %d: expected delta %v, got %v", i+1, wantDeltas[i], deltas[i])
		}
	}

	wantSleeps := []time.Duration{period, period - 5*time.Millisecond, period - 5*time.Millisecond}
	slept := clock.Slept()
	if len(slept) != len(wantSleeps) {
		t.Fatalf("Expected sleeps %v, got %v", wantSleeps, slept)
	}
	for i := range wantSleeps {
		if slept[i] != wantSleeps[i] {
			t.Errorf("Sleep %d: expected %v, got %v", i, wantSleeps[i], slept[i])
		}
	}
}

func TestEngineSlowTickDoesNotSleep(t *testing.T) {
	e, clock := newTestEngine(newFakeTerminal(1, 1), 1, 1)
	e.RegisterLogicFunc(func(*Engine[testState], *testState) { clock.Advance(40 * time.Millisecond) })
	stopAfter(e, 3)

	if err := e.Run(context.Background(), &testState{}); err != nil {
		t.Fatal(err)
	}
	// Only the first tick, measured from Run start, has a delta under one period
	slept := clock.Slept()
	if len(slept) != 1 || slept[0] != time.Second/60 {
		t.Errorf("Expected a single full-period sleep, got %v", slept)
	}
	if e.Delta() != 40*time.Millisecond {
		t.Errorf("Expected last delta of 40ms, got %v", e.Delta())
	}
}

func TestEngineRejectsReentrantRun(t *testing.T) {
	e, _ := newTestEngine(newFakeTerminal(1, 1), 1, 1)
	var inner error
	e.RegisterLogicFunc(func(e *Engine[testState], s *testState) {
		inner = e.Run(context.Background(), s)
		e.Stop()
	})
	if err := e.Run(context.Background(), &testState{}); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", inner)
	}
}
