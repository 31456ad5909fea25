package view

import (
	"sync"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
)

// Controller owns the two mutually exclusive views, the feedback line and the
// product on display. Presentation surfaces read it through Snapshot or
// Subscribe; it never renders anything itself.
type Controller struct {
	mu      sync.Mutex
	state   model.ViewState
	subs    map[int]chan model.ViewState
	nextSub int
}

func NewController() *Controller {
	return &Controller{
		state: model.ViewState{Active: model.ScanView, Feedback: model.Feedback{Severity: model.SeverityInfo}},
		subs:  make(map[int]chan model.ViewState),
	}
}

// ShowScan activates the scan view. The last displayed product is kept so a
// surface can still show it greyed out, but it is no longer active.
func (c *Controller) ShowScan() {
	c.update(func(s *model.ViewState) {
		s.Active = model.ScanView
	})
}

// ShowDetails replaces the displayed product and activates the details view.
func (c *Controller) ShowDetails(d model.DisplayState) {
	c.update(func(s *model.ViewState) {
		s.Display = &d
		s.Active = model.DetailsView
	})
}

// Back always returns to the scan view; there is no history.
func (c *Controller) Back() {
	c.ShowScan()
}

func (c *Controller) SetFeedback(message string, severity model.Severity) {
	c.update(func(s *model.ViewState) {
		s.Feedback = model.Feedback{Message: message, Severity: severity}
	})
}

func (c *Controller) Active() model.ViewID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Active
}

func (c *Controller) Snapshot() model.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked()
}

// Subscribe returns a channel receiving a snapshot after every change. Slow
// subscribers only ever miss intermediate states: when the buffer is full the
// oldest pending snapshot is discarded. cancel closes the channel.
func (c *Controller) Subscribe(buffer int) (<-chan model.ViewState, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan model.ViewState, buffer)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Controller) update(fn func(*model.ViewState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.state.Version++

	snap := c.copyLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (c *Controller) copyLocked() model.ViewState {
	snap := c.state
	if c.state.Display != nil {
		d := *c.state.Display
		snap.Display = &d
	}
	return snap
}
