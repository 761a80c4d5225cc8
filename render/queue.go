package render

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned when submitting to a queue whose producer side was released
var ErrQueueClosed = errors.New("frame queue closed")

// frameQueue is an unbounded FIFO of frames between one producer and one consumer
// push never blocks; pop blocks until a frame arrives or the queue is closed and drained
type frameQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []*FrameBuffer
	head   int
	closed bool
}

func newFrameQueue() *frameQueue {
	q := &frameQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends a frame, fails only after close
func (q *frameQueue) push(f *FrameBuffer) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, f)
	q.cond.Signal()
	return nil
}

// pop returns the oldest frame, or false once closed and empty
func (q *frameQueue) pop() (*FrameBuffer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) && !q.closed {
		q.cond.Wait()
	}
	if q.head == len(q.items) {
		return nil, false
	}

	f := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once the queue drains
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return f, true
}

// close releases the producer side; pending frames remain poppable
func (q *frameQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// len returns the number of frames waiting
func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
