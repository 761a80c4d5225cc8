package render

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tictac/core"
)

// ErrRendererFailed wraps the display error that stopped the renderer
var ErrRendererFailed = errors.New("renderer failed")

// Display is the glyph sink a Renderer writes to; terminal.Terminal satisfies it
type Display interface {
	Clear() error
	SetGlyph(x, y int, r rune) error
	Flush() error
}

// Stats is a snapshot of renderer counters
type Stats struct {
	Frames       uint64 // Frames diff-rendered, the forced initial pass excluded
	CellsWritten uint64 // Glyph writes including the forced pass
	LastWritten  uint64 // Glyph writes of the most recent pass
	Pending      int    // Frames queued but not yet rendered
}

// Renderer diff-renders submitted frames to a Display on its own goroutine
// Frames are rendered strictly in submission order and none are dropped
type Renderer struct {
	display Display
	width   int
	height  int
	queue   *frameQueue
	log     logrus.FieldLogger

	// Owned by the worker goroutine; read by others only after Stop returns
	prev *FrameBuffer

	started  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}

	errMu sync.Mutex
	err   error

	frames       atomic.Uint64
	cellsWritten atomic.Uint64
	lastWritten  atomic.Uint64
}

// NewRenderer creates a renderer for frames of the given size
func NewRenderer(display Display, width, height int, log logrus.FieldLogger) *Renderer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Renderer{
		display: display,
		width:   width,
		height:  height,
		queue:   newFrameQueue(),
		log:     log.WithField("component", "renderer"),
		prev:    NewFrameBuffer(width, height),
		done:    make(chan struct{}),
	}
}

// Start launches the worker, which first forces a full render of a blank frame
func (r *Renderer) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	core.Go(r.loop)
}

// Submit queues a frame without blocking
func (r *Renderer) Submit(f *FrameBuffer) error {
	if err := r.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRendererFailed, err)
	}
	if f.width != r.width || f.height != r.height {
		return fmt.Errorf("render: frame %dx%d does not match renderer %dx%d", f.width, f.height, r.width, r.height)
	}
	return r.queue.push(f)
}

// Stop closes the queue, waits for every pending frame to render, and returns the first display error
func (r *Renderer) Stop() error {
	r.stopOnce.Do(func() {
		r.queue.close()
		if r.started.Load() {
			<-r.done
		}
		r.log.WithFields(logrus.Fields{
			"frames": r.frames.Load(),
			"cells":  r.cellsWritten.Load(),
		}).Debug("renderer stopped")
	})
	return r.Err()
}

// Err returns the display error that stopped the worker, if any
func (r *Renderer) Err() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return r.err
}

// Previous returns the last frame written to the display; valid after Stop
func (r *Renderer) Previous() *FrameBuffer {
	return r.prev
}

// Stats returns current counters
func (r *Renderer) Stats() Stats {
	return Stats{
		Frames:       r.frames.Load(),
		CellsWritten: r.cellsWritten.Load(),
		LastWritten:  r.lastWritten.Load(),
		Pending:      r.queue.len(),
	}
}

func (r *Renderer) loop() {
	defer close(r.done)

	// Synchronize the physical screen with the blank cache
	if err := r.render(r.prev, true); err != nil {
		r.fail(err)
		return
	}

	for {
		f, ok := r.queue.pop()
		if !ok {
			return
		}
		if err := r.render(f, false); err != nil {
			r.fail(err)
			return
		}
		r.prev = f
		r.frames.Add(1)
	}
}

// render writes every cell of next that differs from the cache, or every cell when forced
func (r *Renderer) render(next *FrameBuffer, force bool) error {
	if force {
		if err := r.display.Clear(); err != nil {
			return err
		}
	}

	var written uint64
	for y := 0; y < next.height; y++ {
		row := y * next.width
		for x := 0; x < next.width; x++ {
			g := next.cells[row+x]
			if !force && g == r.prev.cells[row+x] {
				continue
			}
			if err := r.display.SetGlyph(x, y, g); err != nil {
				return err
			}
			written++
		}
	}

	if err := r.display.Flush(); err != nil {
		return err
	}

	r.lastWritten.Store(written)
	r.cellsWritten.Add(written)
	return nil
}

func (r *Renderer) fail(err error) {
	r.errMu.Lock()
	r.err = err
	r.errMu.Unlock()
	r.log.WithError(err).Error("render pass failed")
}
