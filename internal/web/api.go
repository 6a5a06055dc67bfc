package web

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/auth"
	"github.com/idilsaglam/todolist/internal/model"
)

const maxBodyBytes = 1 << 20

const createSchemaURL = "https://todolist.local/todo-create.schema.json"

const createSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": "string"}
  },
  "required": ["title"],
  "additionalProperties": false
}`

func compileCreateSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(createSchemaURL, strings.NewReader(createSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(createSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token != "" {
			got := auth.BearerToken(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.Token)) != 1 {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func snapshots(items []*model.Item) []model.Snapshot {
	out := make([]model.Snapshot, 0, len(items))
	for _, it := range items {
		out = append(out, it.Snapshot())
	}
	return out
}

// GET /api/todos[?completed=true|false]
func (s *Server) apiList(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("completed")

	s.mu.Lock()
	defer s.mu.Unlock()

	if filter == "" {
		writeJSON(w, http.StatusOK, snapshots(s.ctl.List()))
		return
	}
	completed, err := strconv.ParseBool(filter)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "completed must be true or false"})
		return
	}
	writeJSON(w, http.StatusOK, snapshots(s.ctl.WithCompleted(completed)))
}

// POST /api/todos {"title": "..."}
func (s *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "read body: " + err.Error()})
		return
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json: " + err.Error()})
		return
	}
	if err := s.createSchema.Validate(doc); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json: " + err.Error()})
		return
	}

	s.mu.Lock()
	it, ok := s.ctl.Submit(req.Title)
	var snap model.Snapshot
	if ok {
		snap = it.Snapshot()
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "title is empty"})
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// DELETE /api/todos/{index}; out-of-range indexes are a no-op.
func (s *Server) apiDelete(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "index must be an integer"})
		return
	}
	s.mu.Lock()
	s.ctl.Remove(idx)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
