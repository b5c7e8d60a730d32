package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/googleapi"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

type fixedClients struct{ c *services.Clients }

func (f fixedClients) Clients() *services.Clients { return f.c }

type echoInput struct {
	Name  string `json:"name" jsonschema:"Who to greet"`
	Mode  string `json:"mode,omitempty" jsonschema:"Greeting style"`
	Count int    `json:"count,omitempty" jsonschema:"Repetitions"`
}

func echo(_ context.Context, _ *services.Clients, in echoInput) (string, error) {
	switch in.Name {
	case "fail":
		return "", errors.New("backend exploded")
	case "missing":
		return "", &googleapi.Error{Code: http.StatusNotFound, Message: "Requested entity was not found."}
	case "panic":
		panic("boom")
	}
	return fmt.Sprintf("✅ %s %s x%d", in.Mode, in.Name, in.Count), nil
}

func testTools() []*Tool {
	return []*Tool{
		Define("test_echo", "sheets", "Echo input", &mcp.ToolAnnotations{Title: "Echo", ReadOnlyHint: true}, echo,
			Default("mode", "hello"), Enum("mode", "hello", "bye"), Default("count", 1)),
		Define("test_write", "drive", "Write", &mcp.ToolAnnotations{Title: "Write"}, echo),
	}
}

func newTestDispatcher(t *testing.T, clients *services.Clients) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(testTools(), fixedClients{clients}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func dispatch(d *Dispatcher, name, args string) string {
	return response.TextOf(d.Dispatch(context.Background(), name, json.RawMessage(args)))
}

func TestDispatchNotInitialized(t *testing.T) {
	d := newTestDispatcher(t, nil)
	want := "❌ " + NotInitializedMessage
	for _, name := range []string{"test_echo", "test_write", "sheets_frobnicate", ""} {
		if got := dispatch(d, name, `{"name":"x"}`); got != want {
			t.Errorf("Dispatch(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDispatch(t *testing.T) {
	d := newTestDispatcher(t, &services.Clients{})

	tests := []struct {
		name string
		tool string
		args string
		want string
	}{
		{"defaults applied", "test_echo", `{"name":"bob"}`, "✅ hello bob x1"},
		{"explicit values win", "test_echo", `{"name":"bob","mode":"bye","count":3}`, "✅ bye bob x3"},
		{"null arguments", "test_echo", `null`, "❌ Error executing tool test_echo: invalid arguments"},
		{"missing required", "test_echo", `{}`, "❌ Error executing tool test_echo: invalid arguments"},
		{"enum violation", "test_echo", `{"name":"bob","mode":"yo"}`, "❌ Error executing tool test_echo: invalid arguments"},
		{"unknown property", "test_echo", `{"name":"bob","extra":1}`, "❌ Error executing tool test_echo: invalid arguments"},
		{"not an object", "test_echo", `[1,2]`, "❌ Error executing tool test_echo: arguments must be a JSON object"},
		{"handler error", "test_echo", `{"name":"fail"}`, "❌ Error executing tool test_echo: backend exploded"},
		{"google error", "test_echo", `{"name":"missing"}`, "❌ Error executing tool test_echo: not found: verify the spreadsheet ID"},
		{"panic", "test_echo", `{"name":"panic"}`, "❌ Error executing tool test_echo: internal error: boom"},
		{"unknown tool", "sheets_frobnicate", `{}`, "❌ Unknown tool: sheets_frobnicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dispatch(d, tt.tool, tt.args); !strings.HasPrefix(got, tt.want) {
				t.Errorf("Dispatch() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestDispatchSurvivesFailures(t *testing.T) {
	d := newTestDispatcher(t, &services.Clients{})
	for _, name := range []string{"fail", "panic", "missing"} {
		res := d.Dispatch(context.Background(), "test_echo", json.RawMessage(`{"name":"`+name+`"}`))
		if res.IsError {
			t.Errorf("%s: IsError set; failures are reported in text only", name)
		}
		if got := dispatch(d, "test_echo", `{"name":"ok"}`); got != "✅ hello ok x1" {
			t.Errorf("call after %s = %q", name, got)
		}
	}
}

func TestDispatchGoogleErrorKeepsDetail(t *testing.T) {
	d := newTestDispatcher(t, &services.Clients{})
	got := dispatch(d, "test_echo", `{"name":"missing"}`)
	if !strings.Contains(got, "Requested entity was not found.") {
		t.Errorf("Dispatch() = %q, want the remote message", got)
	}
}

func TestHandle(t *testing.T) {
	d := newTestDispatcher(t, &services.Clients{})
	res, err := d.Handle(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: "test_echo", Arguments: json.RawMessage(`{"name":"amy"}`)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := response.TextOf(res); got != "✅ hello amy x1" {
		t.Errorf("Handle() = %q", got)
	}
	if len(res.Content) != 1 {
		t.Errorf("got %d content blocks, want 1", len(res.Content))
	}
}

func TestNewDispatcherRejects(t *testing.T) {
	tools := testTools()
	tests := []struct {
		name  string
		tools []*Tool
		want  string
	}{
		{"duplicate", []*Tool{tools[0], tools[0]}, "duplicate tool name"},
		{"invalid name", []*Tool{Define("bad name", "sheets", "", nil, echo)}, "SEP-986"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDispatcher(tt.tools, fixedClients{}, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewDispatcher() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestOwnsAndLookup(t *testing.T) {
	d := newTestDispatcher(t, nil)
	if !d.Owns("test_echo") || d.Owns("sheets_frobnicate") {
		t.Error("Owns reports the wrong catalog membership")
	}
	if tool, ok := d.Lookup("test_write"); !ok || tool.Service != "drive" {
		t.Errorf("Lookup(test_write) = %v, %v", tool, ok)
	}
	if names := d.Tools(); len(names) != 2 || names[0].Name != "test_echo" {
		t.Errorf("Tools() order = %v", names)
	}
}
