package cli

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/menu/internal/config"
	"github.com/idilsaglam/menu/internal/server"
	"github.com/idilsaglam/menu/internal/store"
	"github.com/idilsaglam/menu/internal/store/jsonstore"
	"github.com/idilsaglam/menu/internal/store/memstore"
	"github.com/idilsaglam/menu/internal/store/sqlitestore"
)

const (
	backendMemory = "memory"
	backendJSON   = "json"
	backendSQLite = "sqlite"
)

func newServeCmd(opt *Options) *cobra.Command {
	var addr, backend, data string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a menu list over HTTP",
		Long: `Serve a menu list over the same HTTP protocol the client speaks:
GET ?action=list and POST ?action=create|update|delete|like with a JSON body.

Backends:
  memory   lost on exit
  json     one JSON file (default ~/.menu/menus.json)
  sqlite   SQLite database (default ~/.menu/menus.db)`,
		Args: args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, closeFn, err := openBackend(cmd.Context(), backend, data)
			if err != nil {
				return err
			}
			defer closeFn()

			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			switch st := st.(type) {
			case *jsonstore.Store:
				logger.Printf("serving %s on %s", st.Path(), addr)
			default:
				logger.Printf("serving %s backend on %s", backend, addr)
			}
			return server.New(st, logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("MENU_ADDR", ":8080"), "listen address")
	cmd.Flags().StringVar(&backend, "backend", backendMemory, "storage backend: memory, json, sqlite")
	cmd.Flags().StringVar(&data, "data", "", "data file for the json and sqlite backends")
	return cmd
}

// openBackend returns the store named kind and a function releasing it.
func openBackend(ctx context.Context, kind, path string) (store.Store, func() error, error) {
	noop := func() error { return nil }
	dir := filepath.Dir(config.DefaultPath())
	switch strings.ToLower(kind) {
	case backendMemory:
		return memstore.New(), noop, nil
	case backendJSON:
		if path == "" {
			path = filepath.Join(dir, jsonstore.DefaultFileName)
		}
		st, err := jsonstore.New(path)
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case backendSQLite:
		if path == "" {
			path = filepath.Join(dir, "menus.db")
		}
		st, err := sqlitestore.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	}
	return nil, nil, usagef("unknown backend %q (want %s, %s or %s)", kind, backendMemory, backendJSON, backendSQLite)
}
