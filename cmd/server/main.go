package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/auth"
	"github.com/evert/google-sheets-mcp-go/internal/config"
	"github.com/evert/google-sheets-mcp-go/internal/middleware"
	"github.com/evert/google-sheets-mcp-go/internal/registry"
	"github.com/evert/google-sheets-mcp-go/internal/retry"
	"github.com/evert/google-sheets-mcp-go/internal/services"
	"github.com/evert/google-sheets-mcp-go/internal/tools/sheets"
)

var version = "dev"

func main() {
	// Structured logging to stderr (stdout is reserved for MCP stdio transport)
	slog.SetDefault(newLogger("info"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx, os.Args[1:]); err != nil {
		cancel()
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
	cancel()
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, args []string) error {
	envFile := os.Getenv("SHEETS_MCP_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	tierMap, err := config.LoadTiers(cfg.TiersFile)
	if err != nil {
		return err
	}
	tools := registry.Filter(sheets.Catalog(), cfg, tierMap)

	session := services.NewSession()
	dispatcher, err := registry.NewDispatcher(tools, session, logger)
	if err != nil {
		return fmt.Errorf("building tool catalog: %w", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "google-sheets-mcp",
		Title:   "Google Sheets",
		Version: version,
	}, nil)
	server.AddReceivingMiddleware(
		middleware.LoggingMiddleware(logger),
		middleware.UnknownToolMiddleware(dispatcher),
		middleware.AccessHintMiddleware(func() string { return session.Identity().Subject }),
	)
	registry.Register(server, dispatcher)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	go initialize(ctx, cancel, cfg, session, logger)

	slog.Info("starting Google Sheets MCP server",
		"transport", cfg.Server.Transport,
		"tier", cfg.ToolTier,
		"readOnly", cfg.ReadOnly,
		"tools", len(tools),
	)

	serveErr := serve(ctx, cfg, server, session)
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return serveErr
}

// initialize connects to Google in the background. Until it succeeds every
// tool call reports that the API is not initialized.
func initialize(ctx context.Context, cancel context.CancelCauseFunc, cfg *config.Config, session *services.Session, logger *slog.Logger) {
	scopes := auth.AllScopes(cfg.EnabledServices, cfg.ReadOnly)
	resolver := auth.NewResolver(auth.Config{
		ServiceAccountKey:      cfg.Credentials.ServiceAccountKey,
		ApplicationCredentials: cfg.Credentials.ApplicationCredentials,
		OAuthClientFile:        cfg.Credentials.OAuthClientFile,
		OAuthTokenFile:         cfg.Credentials.OAuthTokenFile,
		ConsentTimeout:         cfg.Credentials.ConsentTimeout,
	}, scopes, logger)

	policy := retry.Policy{
		MaxAttempts: cfg.Init.Attempts,
		Backoff:     retry.Linear(cfg.Init.Backoff),
	}
	err := session.Initialize(ctx, policy, services.Connect(resolver), logger)
	if err == nil || ctx.Err() != nil {
		return
	}
	if cfg.Init.ExitOnFailure {
		cancel(err)
		return
	}
	logger.Error("Google API clients unavailable, tool calls will report not initialized", "error", err)
}

func serve(ctx context.Context, cfg *config.Config, server *mcp.Server, session *services.Session) error {
	switch cfg.Server.Transport {
	case "stdio":
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return fmt.Errorf("stdio server error: %w", err)
		}
		return nil

	case "streamable-http":
		mcpHandler := mcp.NewStreamableHTTPHandler(
			func(r *http.Request) *mcp.Server { return server },
			nil,
		)

		mux := http.NewServeMux()
		mux.Handle("/mcp", mcpHandler)
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"status":      "ok",
				"initialized": session.Ready(),
			})
		})

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			slog.Info("shutting down HTTP server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("HTTP server shutdown error", "error", err)
			}
		}()

		slog.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown transport %q: use stdio or streamable-http", cfg.Server.Transport)
	}
}
