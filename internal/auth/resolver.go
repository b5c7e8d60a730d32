package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var (
	// ErrNotConfigured means a source has no input to work with. The
	// resolver moves on to the next source without logging a warning.
	ErrNotConfigured = errors.New("credential source not configured")

	// ErrUnavailable means a configured source could not produce
	// credentials but later sources may still succeed.
	ErrUnavailable = errors.New("credential source unavailable")
)

// Credentials are resolved Google API client options and the source that
// produced them.
type Credentials struct {
	Source  string
	Subject string
	Options []option.ClientOption
}

// Source produces client options for one way of authenticating.
type Source interface {
	Name() string
	Credentials(ctx context.Context, scopes []string) (*Credentials, error)
}

// Config selects the inputs of the default source chain.
type Config struct {
	// ServiceAccountKey is inline key JSON or a path to a key file.
	ServiceAccountKey string
	// ApplicationCredentials is a credential file path.
	ApplicationCredentials string
	// OAuthClientFile and OAuthTokenFile drive the interactive fallback.
	OAuthClientFile string
	OAuthTokenFile  string
	// ConsentTimeout bounds the interactive flow; 0 uses DefaultConsentTimeout.
	ConsentTimeout time.Duration
}

// Resolver walks its sources in order and returns the first credentials
// produced.
type Resolver struct {
	Sources []Source
	Scopes  []string
	Logger  *slog.Logger
}

// NewResolver returns a resolver with the standard precedence: inline key,
// key file, interactive OAuth, then application default credentials.
func NewResolver(cfg Config, scopes []string, logger *slog.Logger) *Resolver {
	oauth := &LocalOAuth{
		ClientFile: cfg.OAuthClientFile,
		Store:      NewFileTokenStore(cfg.OAuthTokenFile),
		Timeout:    cfg.ConsentTimeout,
		Logger:     logger,
	}
	return &Resolver{
		Sources: []Source{
			InlineKey{Value: cfg.ServiceAccountKey},
			KeyFile{Path: cfg.ApplicationCredentials},
			oauth,
			DefaultCredentials{},
		},
		Scopes: scopes,
		Logger: logger,
	}
}

// Resolve returns credentials from the first source that yields them.
func (r *Resolver) Resolve(ctx context.Context) (*Credentials, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var skipped []string
	for _, src := range r.Sources {
		creds, err := src.Credentials(ctx, r.Scopes)
		switch {
		case err == nil:
			creds.Source = src.Name()
			logger.Info("resolved Google credentials", "source", creds.Source, "subject", creds.Subject)
			return creds, nil
		case errors.Is(err, ErrNotConfigured):
			logger.Debug("credential source skipped", "source", src.Name())
		case errors.Is(err, ErrUnavailable):
			logger.Warn("credential source failed, trying next", "source", src.Name(), "error", err)
			skipped = append(skipped, src.Name())
		default:
			return nil, fmt.Errorf("%s: %w", src.Name(), err)
		}
	}
	if len(skipped) > 0 {
		return nil, fmt.Errorf("no usable Google credentials (failed: %s)", strings.Join(skipped, ", "))
	}
	return nil, errors.New("no Google credentials configured")
}

// InlineKey reads a service account key from an environment variable. A
// value that is not a valid key is retried as a file path.
type InlineKey struct {
	Value string
}

func (InlineKey) Name() string { return "inline-key" }

func (s InlineKey) Credentials(_ context.Context, scopes []string) (*Credentials, error) {
	v := strings.TrimSpace(s.Value)
	if v == "" {
		return nil, ErrNotConfigured
	}
	opts, key, parseErr := serviceAccountOptions([]byte(v), scopes)
	if parseErr == nil {
		return &Credentials{Subject: key.ClientEmail, Options: opts}, nil
	}

	data, err := os.ReadFile(v)
	if err != nil {
		if strings.HasPrefix(v, "{") || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_KEY is not a usable key (%v) nor a readable file path", parseErr)
		}
		return nil, fmt.Errorf("reading GOOGLE_SERVICE_ACCOUNT_KEY file: %w", err)
	}
	opts, key, err = serviceAccountOptions(data, scopes)
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", v, err)
	}
	return &Credentials{Subject: key.ClientEmail, Options: opts}, nil
}

// KeyFile reads a credential file. Service account keys get the same checks
// as inline keys; other credential types go to the Google credential loader.
type KeyFile struct {
	Path string
}

func (KeyFile) Name() string { return "key-file" }

func (s KeyFile) Credentials(ctx context.Context, scopes []string) (*Credentials, error) {
	if s.Path == "" {
		return nil, ErrNotConfigured
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading credential file: %w", err)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("credential file %s is not valid JSON: %w", s.Path, err)
	}
	if probe.Type == "" || probe.Type == serviceAccountType {
		opts, key, err := serviceAccountOptions(data, scopes)
		if err != nil {
			return nil, fmt.Errorf("credential file %s: %w", s.Path, err)
		}
		return &Credentials{Subject: key.ClientEmail, Options: opts}, nil
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("credential file %s: %w", s.Path, err)
	}
	return &Credentials{Subject: probe.Type, Options: []option.ClientOption{option.WithCredentials(creds)}}, nil
}

// DefaultCredentials uses Application Default Credentials (gcloud, metadata
// server and the well-known file).
type DefaultCredentials struct{}

func (DefaultCredentials) Name() string { return "application-default" }

func (DefaultCredentials) Credentials(ctx context.Context, scopes []string) (*Credentials, error) {
	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Credentials{Subject: creds.ProjectID, Options: []option.ClientOption{option.WithCredentials(creds)}}, nil
}
