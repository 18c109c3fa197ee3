// Package draft holds the working copies behind the edit dialogs. A draft is
// independent of the persisted record until its owner commits it, and at
// most one draft is open in the whole process.
package draft

import (
	"sync"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

type closer interface {
	close()
}

// Dialog is the process-wide guard that keeps a single editor open.
type Dialog struct {
	mu     sync.Mutex
	active closer
}

func NewDialog() *Dialog {
	return &Dialog{}
}

// acquire makes c the open editor, closing any other.
func (d *Dialog) acquire(c closer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != nil && d.active != c {
		d.active.close()
	}
	d.active = c
}

func (d *Dialog) release(c closer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == c {
		d.active = nil
	}
}

// CloseAll discards whichever draft is open.
func (d *Dialog) CloseAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != nil {
		d.active.close()
		d.active = nil
	}
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active != nil
}

// IdentityChanged discards the open draft on logout. It matches
// session.Listener.
func (d *Dialog) IdentityChanged(id *models.Identity) {
	if id == nil {
		d.CloseAll()
	}
}
