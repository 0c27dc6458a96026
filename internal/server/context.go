package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/inboxgate/inboxgate/internal/config"
	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/google"
	"github.com/inboxgate/inboxgate/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server: the credential
// session, the lazily constructed Gmail adapter, and the metrics recorder.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Config
	session  *google.SessionManager
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
	readOnly bool

	mu       sync.RWMutex
	svc      gmail.Service
	shutdown bool
}

// Options configures a ServerContext.
type Options struct {
	Config   *config.Config
	Session  *google.SessionManager
	Metrics  *instrumentation.Metrics
	Logger   *slog.Logger
	ReadOnly bool
}

// NewServerContext creates a new server context. The Gmail service is not
// built here; tool handlers trigger its creation on first use so the server
// can start before any credential exists.
func NewServerContext(ctx context.Context, opts Options) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		cfg:      opts.Config,
		session:  opts.Session,
		metrics:  opts.Metrics,
		logger:   logger,
		readOnly: opts.ReadOnly,
	}
}

// Context returns the server's lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Logger returns the server's logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Metrics returns the metrics recorder. May record to no-op instruments
// when instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// ReadOnly reports whether mutating tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// GmailService returns the Gmail adapter, creating it on first use. The
// adapter draws tokens from the session manager, so a missing or expired
// credential surfaces as an authentication error on the first API call
// rather than here.
func (sc *ServerContext) GmailService() (gmail.Service, error) {
	sc.mu.RLock()
	svc := sc.svc
	sc.mu.RUnlock()
	if svc != nil {
		return svc, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.svc != nil {
		return sc.svc, nil
	}

	client, err := gmail.NewClient(sc.ctx, sc.session)
	if err != nil {
		return nil, err
	}
	sc.svc = &instrumentedService{svc: client, metrics: sc.metrics}
	return sc.svc, nil
}

// SetGmailService replaces the Gmail adapter. Used by tests to inject fakes.
func (sc *ServerContext) SetGmailService(svc gmail.Service) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.svc = svc
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server's lifetime context. Safe to call twice.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
