// Package web serves the session's list to a browser as plain HTML forms,
// plus a small JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/todolist"
)

//go:embed templates/*.html
var assetsFS embed.FS

type ServerConfig struct {
	Addr string
	// Token guards /api/ when non-empty.
	Token string
}

// Server owns the HTTP surface. Requests are served concurrently by
// net/http, so every controller interaction happens under mu.
type Server struct {
	mu   sync.Mutex
	cfg  ServerConfig
	ctl  *todolist.Controller
	tmpl *template.Template

	createSchema *jsonschema.Schema
	log          *log.Logger
}

func NewServer(ctl *todolist.Controller, cfg ServerConfig, logger *log.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	schema, err := compileCreateSchema()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		cfg:          cfg,
		ctl:          ctl,
		tmpl:         tmpl,
		createSchema: schema,
		log:          logger,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /todos", s.handleAdd)
	mux.HandleFunc("POST /todos/{id}/toggle", s.handleItem(s.toggle))
	mux.HandleFunc("POST /todos/{id}/delete", s.handleItem(s.remove))
	mux.HandleFunc("POST /todos/{id}/edit", s.handleItem(s.edit))
	mux.HandleFunc("POST /todos/{id}/update", s.handleItem(s.update))
	mux.HandleFunc("POST /todos/{id}/cancel", s.handleItem(s.cancel))

	api := http.NewServeMux()
	api.HandleFunc("GET /api/todos", s.apiList)
	api.HandleFunc("POST /api/todos", s.apiCreate)
	api.HandleFunc("DELETE /api/todos/{index}", s.apiDelete)
	mux.Handle("/api/", s.requireToken(api))

	return s.logRequests(mux)
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving", "addr", s.cfg.Addr, "api_auth", s.cfg.Token != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
