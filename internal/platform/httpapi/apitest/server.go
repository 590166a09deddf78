// Package apitest provides a scriptable fake of the Life OS backend for
// adapter and usecase tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lifeos/internal/platform/config"
	"lifeos/internal/platform/httpapi"
)

type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

type Server struct {
	srv    *httptest.Server
	router *mux.Router

	mu    sync.Mutex
	calls []Call
}

func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{router: mux.NewRouter()}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
		Header: r.Header.Clone(),
	})
	s.mu.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(body))
	s.router.ServeHTTP(w, r)
}

// Handle registers fn for method + mux pattern, e.g. "/tasks/{id:[0-9]+}".
func (s *Server) Handle(method, pattern string, fn http.HandlerFunc) {
	s.router.HandleFunc(pattern, fn).Methods(method)
}

// JSON registers a handler that always answers with status and v.
func (s *Server) JSON(method, pattern string, status int, v any) {
	s.Handle(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		Write(w, status, v)
	})
}

// Fail registers a handler answering with a plain text error body.
func (s *Server) Fail(method, pattern string, status int, body string) {
	s.Handle(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (s *Server) URL() string { return s.srv.URL }

// Client returns an httpapi client aimed at the fake.
func (s *Server) Client() *httpapi.Client {
	return httpapi.New(config.APIConfig{
		BaseURL: s.srv.URL,
		Timeout: 5 * time.Second,
		Headers: map[string]string{"ngrok-skip-browser-warning": "true"},
	}, zap.NewNop())
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Count reports how many requests matched method and exact path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Var reads an integer path variable.
func Var(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return n
}
