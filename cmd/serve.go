package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/inboxgate/inboxgate/internal/config"
	"github.com/inboxgate/inboxgate/internal/google"
	"github.com/inboxgate/inboxgate/internal/instrumentation"
	"github.com/inboxgate/inboxgate/internal/logging"
	"github.com/inboxgate/inboxgate/internal/server"
	"github.com/inboxgate/inboxgate/internal/tools/gmail_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		transport      string
		httpAddr       string
		yolo           bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing the Gmail tool
catalog to AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode: only listing, search
  and read tools are available. Use --yolo to enable mutating tools
  (sending mail, label edits, trashing messages).

Credentials:
  The server reads the OAuth client identity from GMAIL_CREDENTIALS_FILE
  (default: credentials.json) and the delegated credential from
  GMAIL_TOKEN_FILE (default: token.json). Run 'inboxgate auth' once to
  create the token file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, debugMode, httpAddr, yolo, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable mutating tools (send, modify, delete). Default is read-only mode.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port (streamable-http only). Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr string, yolo bool, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.FromEnv()
	if debugMode {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Load metrics config from environment if not set via flags
	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown", logging.Err(err))
		}
	}()

	oauthConf, err := google.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	store := google.NewTokenStore(cfg.TokenFile)
	session := google.NewSessionManager(shutdownCtx, oauthConf, store, logger)
	session.SetRefreshHook(func() {
		provider.Metrics().RecordTokenRefresh(shutdownCtx)
	})

	serverContext := server.NewServerContext(shutdownCtx, server.Options{
		Config:   &cfg,
		Session:  session,
		Metrics:  provider.Metrics(),
		Logger:   logger,
		ReadOnly: !yolo,
	})
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown", logging.Err(err))
		}
	}()

	if yolo {
		logger.Info("mutating tools enabled (--yolo flag is set)")
	} else {
		logger.Info("starting in read-only mode (use --yolo to enable mutating tools)")
	}

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
			HealthChecker:           server.NewHealthChecker(serverContext),
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown", logging.Err(err))
			}
		}()
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer(cfg.ServerName, version,
		mcpserver.WithToolCapabilities(true),
	)

	gmail_tools.RegisterGmailTools(mcpSrv, serverContext)

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, httpAddr, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, addr string, logger *slog.Logger) error {
	httpSrv := mcpserver.NewStreamableHTTPServer(mcpSrv)

	logger.Info("starting streamable HTTP server", "addr", addr, "endpoint", "/mcp")

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpSrv.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	log.Println("HTTP server gracefully stopped")
	return nil
}
