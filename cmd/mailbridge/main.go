package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.io/infrasutra/mailbridge/internal/applescript"
	"github.io/infrasutra/mailbridge/internal/auth"
	"github.io/infrasutra/mailbridge/internal/config"
	"github.io/infrasutra/mailbridge/internal/journal"
	"github.io/infrasutra/mailbridge/internal/mail"
	"github.io/infrasutra/mailbridge/internal/sse"
	"github.io/infrasutra/mailbridge/internal/tools"
)

var version = "dev"

const tokenMaxAge = 30 * 24 * time.Hour

func main() {
	envFile := flag.String("env-file", ".env", "file with environment overrides")
	transport := flag.String("transport", "", "stdio or http (overrides TRANSPORT)")
	port := flag.Int("port", 0, "HTTP port (overrides HTTP_PORT)")
	showVersion := flag.BoolP("version", "v", false, "print the version and exit")
	issueToken := flag.String("issue-token", "", "print a bearer token for the named HTTP client and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("mailbridge", version)
		return
	}

	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envFile, err)
		os.Exit(1)
	}
	cfg := config.Load()
	switch *transport {
	case "":
	case config.TransportStdio, config.TransportHTTP:
		cfg.Transport = *transport
	default:
		fmt.Fprintf(os.Stderr, "unknown transport %q\n", *transport)
		os.Exit(2)
	}
	if *port > 0 {
		cfg.HTTPPort = *port
	}

	if *issueToken != "" {
		if cfg.AuthSecret == "" {
			fmt.Fprintln(os.Stderr, "AUTH_SECRET must be set to issue tokens")
			os.Exit(2)
		}
		manager, err := auth.New(cfg.AuthSecret, tokenMaxAge)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		issuedAt := time.Now()
		token, err := manager.Issue(*issueToken, issuedAt)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "token expires %s\n", issuedAt.Add(manager.MaxAge()).Format(time.RFC1123))
		return
	}

	// stdout carries the protocol in stdio mode
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var activity *journal.Journal
	if cfg.JournalEnabled {
		j, err := openJournal(ctx, cfg, logger)
		if err != nil {
			logger.Error("open journal", "error", err)
			os.Exit(1)
		}
		defer j.Close()
		activity = j
	}

	runner := applescript.NewOSAScript(cfg.OSAScriptPath, cfg.ScriptTimeout)
	client := mail.New(runner, logger, cfg.DefaultAccount, cfg.ScanTimeout)

	var authManager *auth.Manager
	if cfg.Transport == config.TransportHTTP {
		if cfg.AuthSecret == "" {
			logger.Warn("AUTH_SECRET not set; HTTP endpoints are unauthenticated", "host", cfg.HTTPHost)
		} else {
			manager, err := auth.New(cfg.AuthSecret, tokenMaxAge)
			if err != nil {
				logger.Error("auth", "error", err)
				os.Exit(1)
			}
			authManager = manager
		}
	}
	server := tools.NewServer(cfg, client, activity, sse.NewHub(), authManager, logger, version)

	var err error
	switch cfg.Transport {
	case config.TransportHTTP:
		err = serveHTTP(ctx, cfg, server, logger)
	default:
		logger.Info("serving mcp over stdio", "version", version)
		err = server.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openJournal(ctx context.Context, cfg config.Config, logger *slog.Logger) (*journal.Journal, error) {
	j, err := journal.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := j.EnsureSchema(ctx); err != nil {
		j.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if cfg.DBPath == "" {
		logger.Warn("DB_PATH not set; activity journal is kept in memory")
	}
	if cfg.JournalRetention > 0 {
		pruned, err := j.Prune(ctx, time.Now().Add(-cfg.JournalRetention))
		if err != nil {
			logger.Warn("prune journal", "error", err)
		} else if pruned > 0 {
			logger.Info("pruned journal", "entries", pruned)
		}
	}
	return j, nil
}

func serveHTTP(ctx context.Context, cfg config.Config, handler http.Handler, logger *slog.Logger) error {
	httpAddr := fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpAddr, "mcp", "/mcp")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown http", "error", err)
	}
	return nil
}
