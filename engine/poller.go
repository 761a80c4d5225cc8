package engine

import "github.com/lixenwraith/tictac/terminal"

// Poller drains pending key events from a terminal without blocking
type Poller struct {
	events <-chan terminal.Event
	err    error
}

// NewPoller creates a poller over an event channel
func NewPoller(events <-chan terminal.Event) *Poller {
	return &Poller{events: events}
}

// Poll returns the key events pending right now, in arrival order
// Returns immediately when nothing is pending; events are never held across calls
// A drain reads at most one channel capacity so a flooding source cannot stall the tick
func (p *Poller) Poll() []terminal.Event {
	var batch []terminal.Event
	limit := max(cap(p.events), 1)
	for range limit {
		select {
		case ev, ok := <-p.events:
			if !ok {
				p.events = nil
				return batch
			}
			switch ev.Type {
			case terminal.EventKey:
				batch = append(batch, ev)
			case terminal.EventError:
				p.err = ev.Err
			}
		default:
			return batch
		}
	}
	return batch
}

// Err returns the last read error reported by the input source
func (p *Poller) Err() error {
	return p.err
}
