package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/evert/google-sheets-mcp-go/internal/auth"
	"github.com/evert/google-sheets-mcp-go/internal/retry"
)

// Session is the process-wide credential state: nil clients until
// initialization succeeds, then a fixed set that is never replaced.
type Session struct {
	clients  atomic.Pointer[Clients]
	identity atomic.Pointer[Identity]
}

// Identity records which credentials initialized the session.
type Identity struct {
	// Source names the credential source, e.g. "inline-key".
	Source string
	// Subject is the authenticated principal, such as a service account email.
	Subject string
}

// NewSession returns an uninitialized session.
func NewSession() *Session {
	return &Session{}
}

// Clients returns the published clients, or nil before initialization.
func (s *Session) Clients() *Clients {
	return s.clients.Load()
}

// Ready reports whether clients have been published.
func (s *Session) Ready() bool {
	return s.clients.Load() != nil
}

// Identity returns who the session authenticates as. It is the zero value
// before initialization.
func (s *Session) Identity() Identity {
	if id := s.identity.Load(); id != nil {
		return *id
	}
	return Identity{}
}

// Set publishes clients. Only the first call has an effect.
func (s *Session) Set(c *Clients, id Identity) bool {
	if c == nil {
		return false
	}
	// Identity is stored first so readers that see clients also see it.
	if !s.identity.CompareAndSwap(nil, &id) {
		return false
	}
	s.clients.Store(c)
	return true
}

// Connector resolves credentials and builds clients in one attempt.
type Connector func(ctx context.Context) (*Clients, Identity, error)

// Connect returns a Connector that resolves credentials with r and builds
// clients from them.
func Connect(r *auth.Resolver) Connector {
	return func(ctx context.Context) (*Clients, Identity, error) {
		creds, err := r.Resolve(ctx)
		if err != nil {
			return nil, Identity{}, err
		}
		c, err := NewClients(ctx, creds.Options...)
		if err != nil {
			return nil, Identity{}, err
		}
		return c, Identity{Source: creds.Source, Subject: creds.Subject}, nil
	}
}

// Initialize runs connect under policy and publishes the result. On failure
// the session stays uninitialized and the last error is returned.
func (s *Session) Initialize(ctx context.Context, policy retry.Policy, connect Connector, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	notify := policy.Notify
	policy.Notify = func(attempt int, err error, wait time.Duration) {
		logger.Warn("credential initialization failed, retrying",
			"attempt", attempt,
			"retry_in", wait.String(),
			"error", err,
		)
		if notify != nil {
			notify(attempt, err, wait)
		}
	}

	err := policy.Do(ctx, func(ctx context.Context) error {
		c, id, err := connect(ctx)
		if err != nil {
			return err
		}
		s.Set(c, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("initializing Google API clients: %w", err)
	}
	id := s.Identity()
	logger.Info("Google API clients ready", "source", id.Source, "subject", id.Subject)
	return nil
}
