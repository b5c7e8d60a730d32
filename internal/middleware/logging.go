package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns MCP SDK middleware that logs incoming requests
// and outgoing responses using structured logging. Tool calls also carry
// the tool name.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			attrs := []any{"method", method}
			if params, ok := req.GetParams().(*mcp.CallToolParamsRaw); ok && params != nil {
				attrs = append(attrs, "tool", params.Name)
			}
			logger.DebugContext(ctx, "handling request", attrs...)

			result, err := next(ctx, method, req)

			attrs = append(attrs, "duration", time.Since(start))
			if err != nil {
				logger.ErrorContext(ctx, "request failed", append(attrs, "error", err)...)
			} else {
				logger.InfoContext(ctx, "request completed", attrs...)
			}
			return result, err
		}
	}
}
