package app

import (
	"sync"

	"github.com/idilsaglam/menu/internal/model"
)

// EditSession holds the record currently open for editing, if any.
// Idle when empty; Begin while editing replaces the target.
type EditSession struct {
	mu     sync.Mutex
	target *model.Record
}

func (e *EditSession) Begin(r model.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = &r
}

func (e *EditSession) Cancel() { e.clear() }

// Target returns a copy of the record being edited.
func (e *EditSession) Target() (model.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.target == nil {
		return model.Record{}, false
	}
	return *e.target, true
}

func (e *EditSession) Editing() bool {
	_, ok := e.Target()
	return ok
}

func (e *EditSession) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = nil
}
