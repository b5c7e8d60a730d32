package sheets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/googletest"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/registry"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

type staticClients struct{ c *services.Clients }

func (s staticClients) Clients() *services.Clients { return s.c }

// newHarness returns a fake Google endpoint answering {} to everything and a
// dispatcher over the full catalog wired to it.
func newHarness(t *testing.T) (*googletest.Server, *registry.Dispatcher) {
	t.Helper()
	srv := googletest.New(t)
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		srv.Respond(m, "/", http.StatusOK, `{}`)
	}
	d, err := registry.NewDispatcher(Catalog(), staticClients{srv.Clients(t)}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return srv, d
}

// call dispatches name with JSON args and returns the result text.
func call(t *testing.T, d *registry.Dispatcher, name, args string) string {
	t.Helper()
	return response.TextOf(d.Dispatch(context.Background(), name, json.RawMessage(args)))
}

// mustSucceed dispatches and fails the test on a failure result.
func mustSucceed(t *testing.T, d *registry.Dispatcher, name, args string) string {
	t.Helper()
	text := call(t, d, name, args)
	if !strings.HasPrefix(text, response.SuccessPrefix) {
		t.Fatalf("%s(%s) = %q, want success", name, args, text)
	}
	return text
}

// only returns the single recorded call to method and prefix.
func only(t *testing.T, srv *googletest.Server, method, prefix string) googletest.Call {
	t.Helper()
	calls := srv.CallsTo(method, prefix)
	if len(calls) != 1 {
		t.Fatalf("got %d %s %s calls, want 1 (all calls: %+v)", len(calls), method, prefix, srv.Calls())
	}
	return calls[0]
}

// body decodes a call's JSON body.
func body(t *testing.T, c googletest.Call) map[string]any {
	t.Helper()
	var m map[string]any
	if err := c.JSON(&m); err != nil {
		t.Fatalf("decoding body of %s %s: %v (%s)", c.Method, c.Path, err, c.Body)
	}
	return m
}

// dig walks a decoded JSON value by object keys and array indexes.
func dig(t *testing.T, v any, path ...any) any {
	t.Helper()
	for _, p := range path {
		switch k := p.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				t.Fatalf("dig %v: %v is not an object", path, v)
			}
			v = m[k]
		case int:
			a, ok := v.([]any)
			if !ok || k >= len(a) {
				t.Fatalf("dig %v: %v has no index %d", path, v, k)
			}
			v = a[k]
		}
	}
	return v
}

// firstRequest returns requests[0] of a spreadsheet batchUpdate body.
func firstRequest(t *testing.T, srv *googletest.Server, spreadsheetID string) map[string]any {
	t.Helper()
	c := only(t, srv, http.MethodPost, "/v4/spreadsheets/"+spreadsheetID+":batchUpdate")
	req, ok := dig(t, body(t, c), "requests", 0).(map[string]any)
	if !ok {
		t.Fatalf("requests[0] is not an object: %s", c.Body)
	}
	return req
}
