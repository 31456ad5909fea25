package source

import (
	"context"
	"errors"
	"sync"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
)

// ErrQueueClosed is returned by Enqueue after Close.
var ErrQueueClosed = errors.New("decode queue closed")

// Queue is the bounded inbound channel of decode events shared by all sources.
type Queue struct {
	mu     sync.RWMutex
	ch     chan model.DecodeEvent
	closed bool
}

func NewQueue(buf int) *Queue {
	if buf < 1 {
		buf = 1
	}
	return &Queue{ch: make(chan model.DecodeEvent, buf)}
}

// Enqueue blocks until the event is accepted, ctx ends or the queue closes.
func (q *Queue) Enqueue(ctx context.Context, ev model.DecodeEvent) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events is the consumer side of the queue.
func (q *Queue) Events() <-chan model.DecodeEvent { return q.ch }

func (q *Queue) Len() int { return len(q.ch) }

// Close stops accepting events. Buffered events remain readable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
