// Package googletest serves canned Google API responses over HTTP and records
// the requests it receives, so handlers can run against the real generated
// Sheets and Drive clients.
package googletest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"

	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// JSON decodes the request body into v.
func (c Call) JSON(v any) error {
	return json.Unmarshal(c.Body, v)
}

type route struct {
	method string
	prefix string
	status int
	body   string
}

// Server is a fake endpoint for both APIs. Sheets requests arrive under
// /v4/spreadsheets, Drive requests under /files.
type Server struct {
	srv *httptest.Server

	mu     sync.Mutex
	routes []route
	calls  []Call
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the endpoint, with a trailing slash.
func (s *Server) URL() string { return s.srv.URL + "/" }

// Respond registers a canned response for requests whose method matches and
// whose path starts with pathPrefix. Later registrations take precedence.
func (s *Server) Respond(method, pathPrefix string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route{method: method, prefix: pathPrefix, status: status, body: body})
}

// Calls returns the recorded requests in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded requests matching method and path prefix.
func (s *Server) CallsTo(method, pathPrefix string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method && strings.HasPrefix(c.Path, pathPrefix) {
			out = append(out, c)
		}
	}
	return out
}

// Clients returns Sheets and Drive clients that talk to this server.
func (s *Server) Clients(t testing.TB) *services.Clients {
	t.Helper()
	c, err := services.NewClients(context.Background(),
		option.WithEndpoint(s.URL()),
		option.WithHTTPClient(s.srv.Client()),
	)
	if err != nil {
		t.Fatalf("creating test clients: %v", err)
	}
	return c
}

// ErrorBody renders a Google API error payload.
func ErrorBody(code int, message string) string {
	return fmt.Sprintf(`{"error":{"code":%d,"message":%q,"errors":[{"message":%q,"reason":"test"}]}}`, code, message, message)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})
	var match *route
	for i := len(s.routes) - 1; i >= 0; i-- {
		rt := s.routes[i]
		if rt.method == r.Method && strings.HasPrefix(r.URL.Path, rt.prefix) {
			match = &rt
			break
		}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if match == nil {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, ErrorBody(http.StatusNotFound, "no canned response for "+r.Method+" "+r.URL.Path))
		return
	}
	w.WriteHeader(match.status)
	io.WriteString(w, match.body)
}
