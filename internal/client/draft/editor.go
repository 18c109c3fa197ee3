package draft

import "sync"

// Editor is the Closed/Open state machine shared by every draft kind.
type Editor[T any] struct {
	mu     sync.Mutex
	dialog *Dialog
	empty  func() T
	reset  func()

	open  bool
	draft T
}

func newEditor[T any](dialog *Dialog, empty func() T) *Editor[T] {
	if dialog == nil {
		dialog = NewDialog()
	}
	return &Editor[T]{dialog: dialog, empty: empty, draft: empty()}
}

// begin opens the editor on seed; init runs under the editor lock.
func (e *Editor[T]) begin(seed T, init func()) {
	e.dialog.acquire(e)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	e.open = true
	e.draft = seed
	if init != nil {
		init()
	}
}

func (e *Editor[T]) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Editor[T]) resetLocked() {
	e.open = false
	e.draft = e.empty()
	if e.reset != nil {
		e.reset()
	}
}

// Cancel discards the draft without touching persisted state.
func (e *Editor[T]) Cancel() {
	e.close()
	e.dialog.release(e)
}

func (e *Editor[T]) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Draft returns the working copy; ok is false when the editor is closed.
func (e *Editor[T]) Draft() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft, e.open
}

func (e *Editor[T]) update(fn func(d *T) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrDraftClosed
	}
	return fn(&e.draft)
}
