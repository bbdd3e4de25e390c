// Package sqlitestore keeps menu records in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL keeps readers unblocked while the server writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS menus (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0)
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) List(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, likes FROM menus ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query menus: %w", err)
	}
	defer rows.Close()

	recs := []model.Record{}
	for rows.Next() {
		var (
			r  model.Record
			id string
		)
		if err := rows.Scan(&id, &r.Name, &r.Likes); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		r.ID = model.ID(id)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func (s *Store) Create(ctx context.Context, name string) (model.Record, error) {
	r := model.Record{ID: model.ID(uuid.NewString()), Name: name}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO menus (id, name) VALUES (?, ?)`, string(r.ID), name); err != nil {
		return model.Record{}, fmt.Errorf("insert menu: %w", err)
	}
	return r, nil
}

func (s *Store) Update(ctx context.Context, id model.ID, name string) error {
	return s.exec(ctx, "update menu", `UPDATE menus SET name = ? WHERE id = ?`, name, string(id))
}

func (s *Store) Delete(ctx context.Context, id model.ID) error {
	return s.exec(ctx, "delete menu", `DELETE FROM menus WHERE id = ?`, string(id))
}

func (s *Store) Like(ctx context.Context, id model.ID) error {
	return s.exec(ctx, "like menu", `UPDATE menus SET likes = likes + 1 WHERE id = ?`, string(id))
}

// exec runs a single-row statement and maps "no row touched" to ErrNotFound.
func (s *Store) exec(ctx context.Context, what, q string, args ...any) error {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
