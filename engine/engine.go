// Package engine runs the fixed-rate loop that composes sprites into frames
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tictac/render"
	"github.com/lixenwraith/tictac/sprite"
	"github.com/lixenwraith/tictac/terminal"
)

var (
	// ErrTerminalSetup wraps a terminal Init failure; the loop never started
	ErrTerminalSetup = errors.New("terminal setup")

	// ErrAlreadyRunning is returned by Run on an engine that is running
	ErrAlreadyRunning = errors.New("engine already running")
)

// DefaultFPS is used when Config.FPS is zero
const DefaultFPS = 60

// Config sizes the frame and paces the loop
type Config struct {
	Width  int
	Height int
	FPS    int // Negative runs uncapped

	Logger       logrus.FieldLogger
	TimeProvider TimeProvider
	Sleep        func(time.Duration)
}

// Logic is a per-tick callback; callbacks run in registration order
type Logic[S any] interface {
	Update(e *Engine[S], state *S)
}

// LogicFunc adapts a function to Logic
type LogicFunc[S any] func(e *Engine[S], state *S)

func (f LogicFunc[S]) Update(e *Engine[S], state *S) {
	f(e, state)
}

// Engine owns the sprite registry and logic list and drives the tick loop
// Stop is safe from any goroutine; everything else belongs to the one calling Run
type Engine[S any] struct {
	term   terminal.Terminal
	width  int
	height int
	fps    int
	log    logrus.FieldLogger
	clock  TimeProvider
	sleep  func(time.Duration)

	sprites map[string]*sprite.Sprite
	order   []string // Labels in draw order, reused across ticks
	logic   []Logic[S]

	poller   *Poller
	keys     []terminal.Event
	renderer *render.Renderer

	running   bool
	stop      atomic.Bool
	lastTick  time.Time
	delta     time.Duration
	frame     uint64
	lastFrame *render.FrameBuffer
}

// New creates a stopped engine drawing to term
func New[S any](term terminal.Terminal, cfg Config) *Engine[S] {
	if cfg.Width < 0 || cfg.Height < 0 {
		panic(fmt.Sprintf("engine: negative frame size %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	if cfg.TimeProvider == nil {
		cfg.TimeProvider = NewMonotonicTimeProvider()
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}

	return &Engine[S]{
		term:    term,
		width:   cfg.Width,
		height:  cfg.Height,
		fps:     cfg.FPS,
		log:     cfg.Logger.WithField("component", "engine"),
		clock:   cfg.TimeProvider,
		sleep:   cfg.Sleep,
		sprites: make(map[string]*sprite.Sprite),
	}
}

// RegisterSprite adds s under label, replacing any sprite already there
func (e *Engine[S]) RegisterSprite(label string, s *sprite.Sprite) {
	e.sprites[label] = s
}

// RemoveSprite drops the sprite under label, if any
func (e *Engine[S]) RemoveSprite(label string) {
	delete(e.sprites, label)
}

// Sprite returns the sprite registered under label
func (e *Engine[S]) Sprite(label string) (*sprite.Sprite, bool) {
	s, ok := e.sprites[label]
	return s, ok
}

// SpriteCount returns the number of registered sprites
func (e *Engine[S]) SpriteCount() int {
	return len(e.sprites)
}

// RegisterLogic appends l to the per-tick callbacks
func (e *Engine[S]) RegisterLogic(l Logic[S]) {
	e.logic = append(e.logic, l)
}

// RegisterLogicFunc appends fn to the per-tick callbacks
func (e *Engine[S]) RegisterLogicFunc(fn func(e *Engine[S], state *S)) {
	e.RegisterLogic(LogicFunc[S](fn))
}

// Keys returns the key events drained at the start of the current tick
func (e *Engine[S]) Keys() []terminal.Event {
	return e.keys
}

// Stop requests the loop to end before the next tick begins
func (e *Engine[S]) Stop() {
	e.stop.Store(true)
}

// Running reports whether Run is inside the loop
func (e *Engine[S]) Running() bool {
	return e.running
}

// Delta returns the time between the starts of the previous and current tick
func (e *Engine[S]) Delta() time.Duration {
	return e.delta
}

// Frame returns the number of ticks completed in the current run
func (e *Engine[S]) Frame() uint64 {
	return e.frame
}

// Size returns the frame dimensions
func (e *Engine[S]) Size() (int, int) {
	return e.width, e.height
}

// LastFrame returns the most recently submitted frame
func (e *Engine[S]) LastFrame() *render.FrameBuffer {
	return e.lastFrame
}

// RenderStats returns renderer counters for the current or most recent run
func (e *Engine[S]) RenderStats() render.Stats {
	if e.renderer == nil {
		return render.Stats{}
	}
	return e.renderer.Stats()
}

// Run sets up the terminal, runs ticks until Stop or ctx is done, then
// drains the renderer and restores the terminal on every return path
func (e *Engine[S]) Run(ctx context.Context, state *S) (err error) {
	if e.running {
		return ErrAlreadyRunning
	}

	if err := e.term.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalSetup, err)
	}
	defer e.term.Fini()

	if tw, th := e.term.Size(); tw < e.width || th < e.height {
		e.log.WithFields(logrus.Fields{
			"terminal": fmt.Sprintf("%dx%d", tw, th),
			"frame":    fmt.Sprintf("%dx%d", e.width, e.height),
		}).Warn("terminal smaller than frame")
	}

	e.poller = NewPoller(e.term.Events())
	e.renderer = render.NewRenderer(e.term, e.width, e.height, e.log)
	e.renderer.Start()
	defer func() {
		if stopErr := e.renderer.Stop(); stopErr != nil && err == nil {
			err = fmt.Errorf("render: %w", stopErr)
		}
		st := e.renderer.Stats()
		e.log.WithFields(logrus.Fields{
			"ticks":  e.frame,
			"frames": st.Frames,
			"cells":  st.CellsWritten,
		}).Info("engine stopped")
	}()

	e.running = true
	defer func() { e.running = false }()
	e.stop.Store(false)
	e.frame = 0
	e.delta = 0
	e.lastTick = e.clock.Now()

	e.log.WithFields(logrus.Fields{
		"width":  e.width,
		"height": e.height,
		"fps":    e.fps,
	}).Info("engine started")

	for !e.stopRequested(ctx) {
		if err := e.tick(state); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine[S]) stopRequested(ctx context.Context) bool {
	if e.stop.Load() {
		return true
	}
	select {
	case <-ctx.Done():
		e.log.WithError(ctx.Err()).Debug("context done")
		return true
	default:
		return false
	}
}

// tick runs one iteration: delta, fresh frame, input, logic, compose, submit, sleep
func (e *Engine[S]) tick(state *S) error {
	now := e.clock.Now()
	e.delta = now.Sub(e.lastTick)
	e.lastTick = now

	frame := render.NewFrameBuffer(e.width, e.height)

	e.keys = e.poller.Poll()
	if err := e.poller.Err(); err != nil {
		e.log.WithError(err).Warn("input reader failed")
		e.poller.err = nil
	}

	for _, l := range e.logic {
		l.Update(e, state)
	}

	e.compose(frame)

	if err := e.renderer.Submit(frame); err != nil {
		return fmt.Errorf("submit frame %d: %w", e.frame, err)
	}
	e.lastFrame = frame
	e.frame++

	if d := SleepDuration(e.fps, e.delta); d > 0 {
		e.sleep(d)
	} else if e.fps > 0 {
		e.log.WithField("delta", e.delta).Debug("tick over budget")
	}
	return nil
}

// compose draws every registered sprite by ascending layer, label breaking ties
func (e *Engine[S]) compose(frame *render.FrameBuffer) {
	e.order = e.order[:0]
	for label := range e.sprites {
		e.order = append(e.order, label)
	}
	sort.Slice(e.order, func(i, j int) bool {
		a, b := e.sprites[e.order[i]], e.sprites[e.order[j]]
		if a.Layer() != b.Layer() {
			return a.Layer() < b.Layer()
		}
		return e.order[i] < e.order[j]
	})
	for _, label := range e.order {
		e.sprites[label].Draw(frame)
	}
}
