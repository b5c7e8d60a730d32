package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/middleware"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/services"
)

// NotInitializedMessage is returned for every call made before the Google
// API clients are ready.
const NotInitializedMessage = "Google Sheets API not initialized. Please check your service account credentials."

// ClientSource provides the Google API clients, or nil while credentials are
// not yet initialized.
type ClientSource interface {
	Clients() *services.Clients
}

// Dispatcher routes tool invocations to handlers and turns every outcome,
// including panics, into a single-text-block result.
type Dispatcher struct {
	tools   map[string]*Tool
	order   []*Tool
	clients ClientSource
	logger  *slog.Logger
}

// NewDispatcher indexes tools by name. Names must be unique and valid.
func NewDispatcher(tools []*Tool, clients ClientSource, logger *slog.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		tools:   make(map[string]*Tool, len(tools)),
		clients: clients,
		logger:  logger,
	}
	for _, t := range tools {
		if err := ValidateToolName(t.Name); err != nil {
			return nil, err
		}
		if _, dup := d.tools[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", t.Name)
		}
		d.tools[t.Name] = t
		d.order = append(d.order, t)
	}
	return d, nil
}

// Tools returns the tools in catalog order.
func (d *Dispatcher) Tools() []*Tool {
	return append([]*Tool(nil), d.order...)
}

// Lookup returns the named tool.
func (d *Dispatcher) Lookup(name string) (*Tool, bool) {
	t, ok := d.tools[name]
	return t, ok
}

// Dispatch runs one tool invocation.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (res *mcp.CallToolResult) {
	logger := d.logger.With("tool", name, "call_id", uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "tool handler panicked", "panic", r, "stack", string(debug.Stack()))
			res = response.Failuref("Error executing tool %s: internal error: %v", name, r)
		}
	}()

	clients := d.clients.Clients()
	if clients == nil {
		logger.WarnContext(ctx, "tool called before initialization")
		return response.Failure(NotInitializedMessage)
	}

	tool, ok := d.tools[name]
	if !ok {
		logger.WarnContext(ctx, "unknown tool")
		return response.Failuref("Unknown tool: %s", name)
	}

	prepared, err := tool.Prepare(args)
	if err != nil {
		logger.WarnContext(ctx, "rejected tool arguments", "error", err)
		return response.Failuref("Error executing tool %s: %v", name, err)
	}

	text, err := tool.invoke(ctx, clients, prepared)
	if err != nil {
		msg := middleware.HandleGoogleAPIError(err)
		logger.ErrorContext(ctx, "tool call failed", "error", err)
		return response.Failuref("Error executing tool %s: %s", name, msg)
	}
	logger.DebugContext(ctx, "tool call succeeded")
	return response.Text(text)
}

// Handle adapts Dispatch to the SDK's raw tool handler signature.
func (d *Dispatcher) Handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		name string
		args json.RawMessage
	)
	if req != nil && req.Params != nil {
		name = req.Params.Name
		args = req.Params.Arguments
	}
	return d.Dispatch(ctx, name, args), nil
}

// Owns reports whether name is in the catalog. It lets protocol middleware
// send unknown names here instead of failing them at the protocol level.
func (d *Dispatcher) Owns(name string) bool {
	_, ok := d.tools[name]
	return ok
}
