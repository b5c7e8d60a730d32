package middleware

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// HandleGoogleAPIError translates Google API errors into agent-actionable
// messages. Every message keeps the remote detail so the caller sees what
// Google actually said. Other errors pass through unchanged.
func HandleGoogleAPIError(err error) error {
	if err == nil {
		return nil
	}

	var googleErr *googleapi.Error
	if !errors.As(err, &googleErr) {
		return err
	}

	detail := googleErr.Message
	if detail == "" {
		detail = strings.TrimSpace(googleErr.Body)
	}
	if detail == "" {
		detail = googleErr.Error()
	}

	switch code := googleErr.Code; {
	case code == 400:
		return fmt.Errorf("bad request: check the range notation and that all required parameters are valid. Detail: %s", detail)
	case code == 401:
		return fmt.Errorf("authentication failed: the configured Google credentials were rejected. Detail: %s", detail)
	case code == 403 && isSharingPolicy(detail):
		return fmt.Errorf("sharing blocked by Workspace policy: the domain does not allow this recipient. Detail: %s", detail)
	case code == 403:
		return fmt.Errorf("permission denied: share the spreadsheet with the service account or grant the missing scope. Detail: %s", detail)
	case code == 404:
		return fmt.Errorf("not found: verify the spreadsheet ID and that the credentials can access it. Detail: %s", detail)
	case code == 409:
		return fmt.Errorf("conflict: the resource was modified concurrently, retry with fresh data. Detail: %s", detail)
	case code == 429:
		return fmt.Errorf("rate limit exceeded: wait 30-60 seconds before retrying this tool call. Detail: %s", detail)
	case code >= 500 && code <= 599:
		return fmt.Errorf("Google API server error (%d): transient, retry after a few seconds. Detail: %s", code, detail)
	default:
		return fmt.Errorf("Google API error (%d): %s", code, detail)
	}
}

func isSharingPolicy(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "sharing outside") || strings.Contains(lower, "not allowed to share")
}
