// Package store defines the contract of the remote list store and the
// errors shared by every implementation of it.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/menu/internal/model"
)

var (
	// ErrNotFound is returned by backends for an unknown id.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable marks transport and status failures talking to a store.
	ErrUnavailable = errors.New("store unavailable")
	// ErrMalformed marks a response that cannot be read as the expected shape.
	ErrMalformed = errors.New("malformed response")
)

// Store is the remote list store. The HTTP client and the server backends
// all implement it.
type Store interface {
	// List returns every record in store order.
	List(ctx context.Context) ([]model.Record, error)
	// Create adds a record with the given name. The returned record may be
	// zero when the store does not report it.
	Create(ctx context.Context, name string) (model.Record, error)
	// Update renames a record. Likes are never touched.
	Update(ctx context.Context, id model.ID, name string) error
	Delete(ctx context.Context, id model.ID) error
	// Like increments the record's likes counter.
	Like(ctx context.Context, id model.ID) error
}
