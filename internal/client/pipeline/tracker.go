package pipeline

import (
	"context"
	"sync"
)

// Ticket identifies one issued load.
type Ticket uint64

// Tracker remembers the latest issued load. Beginning a new load cancels
// the previous one, and only the latest ticket may commit its result.
type Tracker struct {
	mu     sync.Mutex
	seq    Ticket
	cancel context.CancelFunc
}

// Begin issues a new ticket and a context that is cancelled when a newer
// load begins or the ticket is finished.
func (t *Tracker) Begin(ctx context.Context) (Ticket, context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	lctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	return t.seq, lctx
}

// Current reports whether tk is the latest issued ticket.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk == t.seq
}

// Commit runs apply only if tk is still the latest ticket, atomically with
// respect to Begin.
func (t *Tracker) Commit(tk Ticket, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk != t.seq {
		return false
	}
	apply()
	return true
}

// Finish releases the context of tk if it is still the latest.
func (t *Tracker) Finish(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk == t.seq && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Invalidate makes every issued ticket stale and cancels its load.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.seq++
}
