//go:build integration

// Package integration drives a fully wired MCP server over in-memory
// transports against a fake Google endpoint, so no real credentials are needed.
package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/config"
	"github.com/evert/google-sheets-mcp-go/internal/middleware"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/googletest"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/registry"
	"github.com/evert/google-sheets-mcp-go/internal/services"
	"github.com/evert/google-sheets-mcp-go/internal/tools/sheets"
)

// connect wires a server the way cmd/server does and returns a client session.
func connect(t *testing.T, cfg *config.Config, session *services.Session) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tierMap, err := config.LoadTiers("")
	if err != nil {
		t.Fatal(err)
	}
	d, err := registry.NewDispatcher(registry.Filter(sheets.Catalog(), cfg, tierMap), session, logger)
	if err != nil {
		t.Fatal(err)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "google-sheets-mcp", Version: "test"}, nil)
	server.AddReceivingMiddleware(
		middleware.LoggingMiddleware(logger),
		middleware.UnknownToolMiddleware(d),
		middleware.AccessHintMiddleware(func() string { return session.Identity().Subject }),
	)
	registry.Register(server, d)

	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) protocol error: %v", name, err)
	}
	if res.IsError {
		t.Errorf("CallTool(%s) set IsError", name)
	}
	if len(res.Content) != 1 {
		t.Errorf("CallTool(%s) returned %d content blocks, want 1", name, len(res.Content))
	}
	return response.TextOf(res)
}

func TestDiscoveryByTier(t *testing.T) {
	tests := []struct {
		tier     string
		readOnly bool
		want     int
	}{
		{"core", false, 6},
		{"extended", false, 10},
		{"complete", false, 34},
		{"complete", true, 8},
	}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			cs := connect(t, &config.Config{ToolTier: tt.tier, ReadOnly: tt.readOnly}, services.NewSession())
			res, err := cs.ListTools(context.Background(), nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Tools) != tt.want {
				t.Errorf("ListTools() returned %d tools, want %d", len(res.Tools), tt.want)
			}
			for _, tool := range res.Tools {
				if tool.Description == "" || tool.InputSchema == nil {
					t.Errorf("%s is missing a description or schema", tool.Name)
				}
			}
		})
	}
}

func TestNotInitialized(t *testing.T) {
	cs := connect(t, &config.Config{ToolTier: "complete"}, services.NewSession())
	want := "❌ " + registry.NotInitializedMessage
	names := []string{"sheets_frobnicate"}
	for _, tool := range sheets.Catalog() {
		names = append(names, tool.Name)
	}
	for _, name := range names {
		if got := callText(t, cs, name, map[string]any{"spreadsheetId": "X"}); got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	srv := googletest.New(t)
	srv.Respond(http.MethodPut, "/v4/spreadsheets/X/values/", http.StatusOK,
		`{"updatedRange":"Sheet1!A1:B1","updatedCells":2}`)
	srv.Respond(http.MethodGet, "/v4/spreadsheets/locked", http.StatusForbidden,
		googletest.ErrorBody(http.StatusForbidden, "The caller does not have permission"))

	session := services.NewSession()
	session.Set(srv.Clients(t), services.Identity{Source: "inline-key", Subject: "bot@project.iam.gserviceaccount.com"})
	cs := connect(t, &config.Config{ToolTier: "complete"}, session)

	t.Run("update data", func(t *testing.T) {
		text := callText(t, cs, "sheets_update_data", map[string]any{
			"spreadsheetId": "X", "range": "A1:B2", "values": [][]string{{"1", "2"}},
		})
		if !strings.HasPrefix(text, "✅ Successfully updated data in A1:B2") {
			t.Errorf("text = %q", text)
		}
		calls := srv.CallsTo(http.MethodPut, "/v4/spreadsheets/X/values/")
		if len(calls) != 1 || calls[0].Query.Get("valueInputOption") != "RAW" {
			t.Errorf("update calls = %+v", calls)
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		if got := callText(t, cs, "sheets_frobnicate", nil); got != "❌ Unknown tool: sheets_frobnicate" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("permission hint", func(t *testing.T) {
		text := callText(t, cs, "sheets_get_metadata", map[string]any{"spreadsheetId": "locked"})
		for _, want := range []string{"❌ Error executing tool sheets_get_metadata", "The caller does not have permission", "bot@project.iam.gserviceaccount.com"} {
			if !strings.Contains(text, want) {
				t.Errorf("text %q does not contain %q", text, want)
			}
		}
	})
}
