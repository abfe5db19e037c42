// Package fakeapi is an in-memory stand-in for the expenses REST API, used
// by tests. It behaves like a json-server instance: collections of JSON
// objects, ids assigned on create, full replacement on PUT.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// Collections served by the fake
const (
	Entries    = "entries"
	Categories = "categories"
)

// Request is one request the fake received
type Request struct {
	Method    string
	Path      string
	RequestID string
}

type failure struct {
	method string
	path   string
	status int
}

// Server is a running fake API
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string][]map[string]any
	nextID      int
	uuids       bool
	failures    []failure
	requests    []Request
}

// Option configures a Server
type Option func(*Server)

// WithUUIDs makes the fake assign uuid string ids instead of sequential numbers.
func WithUUIDs() Option {
	return func(s *Server) {
		s.uuids = true
	}
}

// New starts a fake API that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		collections: map[string][]map[string]any{
			Entries:    {},
			Categories: {},
		},
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.router(logger.Discard()))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router(log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(s.record)
	r.Use(s.injectFailures)

	for _, name := range []string{Entries, Categories} {
		collection := name
		r.Route("/"+collection, func(r chi.Router) {
			r.Get("/", s.list(collection))
			r.Post("/", s.create(collection))
			r.Get("/{id}", s.get(collection))
			r.Put("/{id}", s.update(collection))
			r.Delete("/{id}", s.delete(collection))
		})
	}
	return r
}

// Seed stores items (any JSON-encodable values) in a collection, assigning
// ids to items that have none. It returns the stored objects.
func (s *Server) Seed(collection string, items ...any) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj := toObject(item)
		if id, ok := obj["id"]; !ok || id == nil || id == "" {
			obj["id"] = s.assignID()
		}
		s.collections[collection] = append(s.collections[collection], obj)
		out = append(out, obj)
	}
	return out
}

// Items returns a copy of a collection's objects in insertion order.
func (s *Server) Items(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collections[collection]
	out := make([]map[string]any, len(items))
	copy(out, items)
	return out
}

// FailNext makes the next request matching method and path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// Requests returns every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests counts received requests with the given method and path
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) assignID() any {
	if s.uuids {
		return uuid.NewString()
	}
	id := s.nextID
	s.nextID++
	return id
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: chimiddleware.GetReqID(r.Context()),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := 0
		for i, f := range s.failures {
			if f.method == r.Method && f.path == r.URL.Path {
				status = f.status
				s.failures = append(s.failures[:i:i], s.failures[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			respondWithError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, s.Items(collection))
	}
}

func (s *Server) get(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		idx := s.indexOf(collection, chi.URLParam(r, "id"))
		var obj map[string]any
		if idx >= 0 {
			obj = s.collections[collection][idx]
		}
		s.mu.Unlock()

		if idx < 0 {
			respondWithError(w, http.StatusNotFound, "not found")
			return
		}
		respondWithJSON(w, http.StatusOK, obj)
	}
}

func (s *Server) create(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var obj map[string]any
		if err := json.NewDecoder(r.Body).Decode(&obj); err != nil || obj == nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s.mu.Lock()
		obj["id"] = s.assignID()
		s.collections[collection] = append(s.collections[collection], obj)
		s.mu.Unlock()

		respondWithJSON(w, http.StatusCreated, obj)
	}
}

func (s *Server) update(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var obj map[string]any
		if err := json.NewDecoder(r.Body).Decode(&obj); err != nil || obj == nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s.mu.Lock()
		idx := s.indexOf(collection, chi.URLParam(r, "id"))
		if idx >= 0 {
			obj["id"] = s.collections[collection][idx]["id"]
			s.collections[collection][idx] = obj
		}
		s.mu.Unlock()

		if idx < 0 {
			respondWithError(w, http.StatusNotFound, "not found")
			return
		}
		respondWithJSON(w, http.StatusOK, obj)
	}
}

func (s *Server) delete(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		idx := s.indexOf(collection, chi.URLParam(r, "id"))
		if idx >= 0 {
			items := s.collections[collection]
			s.collections[collection] = append(items[:idx:idx], items[idx+1:]...)
		}
		s.mu.Unlock()

		if idx < 0 {
			respondWithError(w, http.StatusNotFound, "not found")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]any{})
	}
}

// indexOf must be called with s.mu held
func (s *Server) indexOf(collection, id string) int {
	for i, obj := range s.collections[collection] {
		if idString(obj["id"]) == id {
			return i
		}
	}
	return -1
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case int:
		return strconv.Itoa(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}

func toObject(item any) map[string]any {
	data, err := json.Marshal(item)
	if err != nil {
		panic(fmt.Sprintf("fakeapi: cannot encode seed item: %v", err))
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		panic(fmt.Sprintf("fakeapi: seed item is not a JSON object: %v", err))
	}
	return obj
}
