package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
)

// accessErrorMarkers identify failures that usually mean the spreadsheet is
// not shared with the server's identity.
var accessErrorMarkers = []string{
	"permission denied",
	"not found: verify the spreadsheet id",
}

// AccessHintMiddleware appends which account the server acts as to access
// failures, so the user knows whom to share the spreadsheet with. subject
// returns the current identity, or "" when unknown.
func AccessHintMiddleware(subject func() string) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			result, err := next(ctx, method, req)

			// Only enhance tools/call responses.
			if method != "tools/call" || err != nil {
				return result, err
			}

			toolResult, ok := result.(*mcp.CallToolResult)
			if !ok || !response.IsFailure(toolResult) || len(toolResult.Content) == 0 {
				return result, err
			}
			textContent, ok := toolResult.Content[0].(*mcp.TextContent)
			if !ok || !isAccessError(textContent.Text) {
				return result, err
			}

			who := subject()
			if !strings.Contains(who, "@") {
				return result, err
			}
			textContent.Text = fmt.Sprintf(
				"%s\n\nThis server acts as %s. Share the spreadsheet with that account and retry.",
				textContent.Text, who,
			)
			return result, err
		}
	}
}

// isAccessError returns true if the text contains any access-error marker.
func isAccessError(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range accessErrorMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
