package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// DefaultConsentTimeout bounds how long the local flow waits for the user.
const DefaultConsentTimeout = 5 * time.Minute

// CallbackPath is the loopback redirect path of the consent flow.
const CallbackPath = "/oauth/callback"

// LocalOAuth authenticates as the user with an installed-app OAuth client.
// A cached token is reused when present; otherwise a loopback consent flow
// runs and the resulting token is saved.
type LocalOAuth struct {
	ClientFile string
	Store      TokenStore
	Timeout    time.Duration
	// Prompt shows the consent URL. The default writes it to stderr, since
	// stdout carries the MCP transport.
	Prompt func(authURL string)
	Logger *slog.Logger

	// prompted is set once consent has been requested. Later calls fail fast
	// instead of opening another consent wait.
	prompted atomic.Bool
}

func (*LocalOAuth) Name() string { return "oauth" }

func (s *LocalOAuth) Credentials(ctx context.Context, scopes []string) (*Credentials, error) {
	if s.ClientFile == "" {
		return nil, ErrNotConfigured
	}
	data, err := os.ReadFile(s.ClientFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("%w: reading OAuth client file: %v", ErrUnavailable, err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing OAuth client file %s: %v", ErrUnavailable, s.ClientFile, err)
	}

	token, err := s.Store.Load()
	if err != nil && !errors.Is(err, ErrNoToken) {
		s.logger().Warn("ignoring unreadable OAuth token cache", "error", err)
	}
	if err != nil || !usable(token) {
		if !s.prompted.CompareAndSwap(false, true) {
			return nil, fmt.Errorf("%w: OAuth consent was requested and not completed, restart the server to authorize", ErrUnavailable)
		}
		token, err = s.consent(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if err := s.Store.Save(token); err != nil {
			s.logger().Warn("failed to cache OAuth token", "error", err)
		}
	}

	// The token source outlives any single request context.
	ts := oauth2.ReuseTokenSource(token, &PersistingTokenSource{
		Base:  cfg.TokenSource(context.Background(), token),
		Store: s.Store,
	})
	return &Credentials{Subject: cfg.ClientID, Options: []option.ClientOption{option.WithTokenSource(ts)}}, nil
}

// usable reports whether a cached token can authenticate without consent.
func usable(t *oauth2.Token) bool {
	return t != nil && (t.Valid() || t.RefreshToken != "")
}

// consent runs the loopback authorization code flow.
func (s *LocalOAuth) consent(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultConsentTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting OAuth callback listener: %w", err)
	}
	cfg.RedirectURL = "http://" + ln.Addr().String() + CallbackPath

	state, err := randomState()
	if err != nil {
		ln.Close()
		return nil, err
	}
	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.Handle(CallbackPath, callbackHandler(state, results))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger().Error("OAuth callback server error", "error", err)
		}
	}()
	defer srv.Close()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	s.logger().Info("Google authorization required", "url", authURL)
	if s.Prompt != nil {
		go s.Prompt(authURL)
	} else {
		fmt.Fprintf(os.Stderr, "Authorize this app by visiting:\n%s\n", authURL)
	}

	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		token, err := cfg.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchanging auth code: %w", err)
		}
		return token, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for OAuth consent: %w", ctx.Err())
	}
}

func (s *LocalOAuth) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating OAuth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
