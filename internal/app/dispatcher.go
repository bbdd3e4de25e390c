// Package app holds the client state: the cached list, the edit session and
// the operations that change them. Every mutation goes to the store and is
// followed by a full refresh; nothing is patched locally.
package app

import (
	"context"
	"io"
	"log"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

const (
	OpRefresh = "refresh"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpLike    = "like"
)

// App is the root state holder. Its cache and edit session are read by the
// views; only the methods below change them.
type App struct {
	remote store.Store
	cache  *Cache
	edit   *EditSession
	log    *log.Logger
}

// New returns an App over remote with an empty cache. Failures of remote
// calls are reported on logger; nil discards them.
func New(remote store.Store, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &App{
		remote: remote,
		cache:  NewCache(),
		edit:   &EditSession{},
		log:    logger,
	}
}

func (a *App) Cache() *Cache      { return a.cache }
func (a *App) Edit() *EditSession { return a.edit }

// Refresh replaces the cache with the store's list. On failure the cache
// keeps its previous contents.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.refresh(ctx); err != nil {
		return a.fail(&OpError{Op: OpRefresh, Err: err})
	}
	return nil
}

// Create adds a record named name (trimmed). Blank names are rejected
// before anything is sent. The create response is not used; the refresh
// that follows makes the new record visible.
func (a *App) Create(ctx context.Context, name string) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	if _, err := a.remote.Create(ctx, n); err != nil {
		return a.fail(&OpError{Op: OpCreate, Err: err})
	}
	return a.afterMutation(ctx, OpCreate, "")
}

// Update renames id. On success the edit session is closed before the
// refresh runs.
func (a *App) Update(ctx context.Context, id model.ID, name string) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	if err := a.remote.Update(ctx, id, n); err != nil {
		return a.fail(&OpError{Op: OpUpdate, ID: id, Err: err})
	}
	a.edit.clear()
	return a.afterMutation(ctx, OpUpdate, id)
}

// SubmitEdit updates the record in the edit session with name.
func (a *App) SubmitEdit(ctx context.Context, name string) error {
	target, ok := a.edit.Target()
	if !ok {
		return ErrNotEditing
	}
	return a.Update(ctx, target.ID, name)
}

func (a *App) Delete(ctx context.Context, id model.ID) error {
	if err := a.remote.Delete(ctx, id); err != nil {
		return a.fail(&OpError{Op: OpDelete, ID: id, Err: err})
	}
	return a.afterMutation(ctx, OpDelete, id)
}

// Like asks the store to count one more like for id. The new count shows up
// through the refresh.
func (a *App) Like(ctx context.Context, id model.ID) error {
	if err := a.remote.Like(ctx, id); err != nil {
		return a.fail(&OpError{Op: OpLike, ID: id, Err: err})
	}
	return a.afterMutation(ctx, OpLike, id)
}

func (a *App) refresh(ctx context.Context) error {
	recs, err := a.remote.List(ctx)
	if err != nil {
		return err
	}
	return a.cache.replace(recs)
}

func (a *App) afterMutation(ctx context.Context, op string, id model.ID) error {
	if err := a.refresh(ctx); err != nil {
		return a.fail(&OpError{Op: op, ID: id, Refresh: true, Err: err})
	}
	return nil
}

func (a *App) fail(err *OpError) error {
	a.log.Printf("%v", err)
	return err
}
