package middleware

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolRouter answers tool calls by name.
type ToolRouter interface {
	Owns(name string) bool
	Dispatch(ctx context.Context, name string, args json.RawMessage) *mcp.CallToolResult
}

// UnknownToolMiddleware hands tools/call requests for names the server does
// not know to router, so they get a normal text result instead of a
// protocol-level error.
func UnknownToolMiddleware(router ToolRouter) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}
			params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
			if !ok || router.Owns(params.Name) {
				return next(ctx, method, req)
			}
			return router.Dispatch(ctx, params.Name, params.Arguments), nil
		}
	}
}
