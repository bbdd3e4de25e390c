// Package server serves a store.Store over the action-based HTTP protocol
// the remote client speaks. It is the reference backend for local use.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/idilsaglam/menu/internal/remote"
	"github.com/idilsaglam/menu/internal/store"
)

// maxRequestBodyBytes limits request bodies to 1 MiB.
const maxRequestBodyBytes = 1 << 20

type Server struct {
	st  store.Store
	log *log.Logger
	srv *http.Server
}

// New returns a server for st. A nil logger discards request logs.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{st: st, log: logger}
}

// Handler returns the handler with recovery and request logging applied.
func (s *Server) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(s.route)
	h = s.loggingMiddleware(h)
	h = s.recoveryMiddleware(h)
	return h
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == remote.ActionList {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "list requires GET")
			return
		}
		s.handleList(w, r)
		return
	}

	handlers := map[string]http.HandlerFunc{
		remote.ActionCreate: s.handleCreate,
		remote.ActionUpdate: s.handleUpdate,
		remote.ActionDelete: s.handleDelete,
		remote.ActionLike:   s.handleLike,
	}
	h, ok := handlers[action]
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown action: "+action)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, action+" requires POST")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	h(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.st.List(r.Context())
	if err != nil {
		s.storeError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// The body is read as JSON whatever Content-Type says; older clients send
// JSON labelled as a form.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req remote.CreateRequest
	if !decode(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	rec, err := s.st.Create(r.Context(), name)
	if err != nil {
		s.storeError(w, "create", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req remote.UpdateRequest
	if !decode(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if req.ID == "" || name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required")
		return
	}
	if err := s.st.Update(r.Context(), req.ID, name); err != nil {
		s.storeError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req remote.IDRequest
	if !decode(w, r, &req) || !requireID(w, req) {
		return
	}
	if err := s.st.Delete(r.Context(), req.ID); err != nil {
		s.storeError(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	var req remote.IDRequest
	if !decode(w, r, &req) || !requireID(w, req) {
		return
	}
	if err := s.st.Like(r.Context(), req.ID); err != nil {
		s.storeError(w, "like", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.Printf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, op+" failed")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func requireID(w http.ResponseWriter, req remote.IDRequest) bool {
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return false
	}
	return true
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.log.Printf("%s %s action=%s %d %s", r.Method, r.URL.Path, r.URL.Query().Get("action"), rw.statusCode, time.Since(start))
	})
}

// recoveryMiddleware catches panics in downstream handlers and returns 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Printf("PANIC: %v\n%s", rec, debug.Stack())
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
