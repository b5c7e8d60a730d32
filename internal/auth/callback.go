package auth

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
)

type callbackResult struct {
	code string
	err  error
}

// callbackHandler handles the OAuth redirect of the local consent flow. It
// checks state, then delivers the authorization code (or the failure) on
// results. Only the first delivery is kept.
func callbackHandler(state string, results chan<- callbackResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("state") != state {
			slog.Warn("OAuth callback with unexpected state")
			writePage(w, http.StatusBadRequest, "Authentication Failed", "The request did not match the pending sign-in. Restart the server to try again.")
			return
		}
		if msg := q.Get("error"); msg != "" {
			slog.Error("OAuth callback error", "error", msg)
			deliver(results, callbackResult{err: fmt.Errorf("authorization denied: %s", msg)})
			writePage(w, http.StatusBadRequest, "Authentication Failed", msg)
			return
		}
		code := q.Get("code")
		if code == "" {
			deliver(results, callbackResult{err: errors.New("no authorization code received")})
			writePage(w, http.StatusBadRequest, "Authentication Failed", "No authorization code received from Google.")
			return
		}

		deliver(results, callbackResult{code: code})
		writePage(w, http.StatusOK, "Authentication Successful", "Google Sheets access is connected. You can close this window.")
	}
}

func deliver(results chan<- callbackResult, res callbackResult) {
	select {
	case results <- res:
	default:
	}
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%[1]s</title>
<style>body{font-family:system-ui,sans-serif;max-width:32rem;margin:4rem auto;text-align:center}</style>
</head>
<body><h1>%[1]s</h1><p>%[2]s</p></body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}
