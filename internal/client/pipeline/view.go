package pipeline

import (
	"context"
	"sync"

	"golang.org/x/text/language"
)

// Fetch loads the raw list for a view.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// View binds a raw list to its schema, state and tracker.
type View[T any] struct {
	schema   Schema[T]
	pageSize int
	locale   language.Tag
	tracker  Tracker

	mu     sync.Mutex
	items  []T
	state  State
	loaded bool
}

func NewView[T any](schema Schema[T], pageSize int, locale language.Tag) *View[T] {
	return &View[T]{
		schema:   schema,
		pageSize: pageSize,
		locale:   locale,
		state:    NewState(),
	}
}

// Load fetches the raw list and replaces the current one. If another Load
// started meanwhile the result is dropped and ErrStale returned. A failed
// fetch keeps the previous list.
func (v *View[T]) Load(ctx context.Context, fetch Fetch[T]) error {

	tk, lctx := v.tracker.Begin(ctx)
	defer v.tracker.Finish(tk)

	items, err := fetch(lctx)

	if !v.tracker.Current(tk) {
		return ErrStale
	}
	if err != nil {
		return err
	}

	committed := v.tracker.Commit(tk, func() {
		v.mu.Lock()
		v.items = items
		v.loaded = true
		v.mu.Unlock()
	})
	if !committed {
		return ErrStale
	}
	return nil
}

// Reset drops the list and state and makes in-flight loads stale.
func (v *View[T]) Reset() {
	v.tracker.Invalidate()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = nil
	v.loaded = false
	v.state = NewState()
}

// Render applies the current state to the current list.
func (v *View[T]) Render() (Page[T], error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Apply(v.items, v.schema, v.state.Query(v.pageSize, v.locale))
}

// Update applies change to the state and renders. An invalid resulting
// state is rejected and the previous state kept.
func (v *View[T]) Update(change func(State) State) (Page[T], error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := change(v.state)
	page, err := Apply(v.items, v.schema, next.Query(v.pageSize, v.locale))
	if err != nil {
		return Page[T]{}, err
	}
	v.state = next
	return page, nil
}

func (v *View[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func (v *View[T]) Schema() Schema[T] { return v.schema }
