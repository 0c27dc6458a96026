package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// expiryMargin is the safety window before the recorded expiry at which the
// credential is treated as expiring and refreshed ahead of use.
const expiryMargin = 2 * time.Minute

// AuthError means the refresh token was rejected or no credential exists.
// Terminal: the gateway cannot recover without a human re-running the
// authorization flow.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed, re-run `inboxgate auth`: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// SessionManager owns the single process-wide credential. It loads the
// persisted token on first use, refreshes it synchronously before expiry,
// and writes refreshed material back through the store.
//
// SessionManager implements oauth2.TokenSource, so the Gmail client observes
// a valid access token on every call without its own refresh machinery.
// Concurrent callers that hit an expiring credential are coalesced through a
// singleflight group: at most one refresh exchange is in flight, and all
// waiters observe the same resulting credential.
type SessionManager struct {
	conf   *oauth2.Config
	store  *TokenStore
	logger *slog.Logger

	// ctx outlives individual tool dispatches; refresh exchanges run
	// against it so a canceled request cannot abort a refresh other
	// dispatches are waiting on.
	ctx context.Context

	group     singleflight.Group
	onRefresh func() // test/metrics hook, may be nil

	// cached holds the in-memory credential. Written only inside the
	// singleflight-guarded refresh path; read lock-free on the fast path.
	cached atomic.Pointer[oauth2.Token]
}

// NewSessionManager creates a session manager bound to the process context.
func NewSessionManager(ctx context.Context, conf *oauth2.Config, store *TokenStore, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{conf: conf, store: store, logger: logger, ctx: ctx}
}

// SetRefreshHook installs a callback invoked after every successful refresh
// exchange. Used for metrics.
func (m *SessionManager) SetRefreshHook(fn func()) { m.onRefresh = fn }

// Token returns a currently valid access token, refreshing first when the
// cached credential is absent, expiring, or expired. Implements
// oauth2.TokenSource.
func (m *SessionManager) Token() (*oauth2.Token, error) {
	return m.EnsureValid(m.ctx)
}

// EnsureValid returns the session's credential, guaranteed to expire in the
// future (beyond the safety margin). All refresh work is coalesced.
func (m *SessionManager) EnsureValid(ctx context.Context) (*oauth2.Token, error) {
	if tok := m.cached.Load(); tok != nil && fresh(tok) {
		return tok, nil
	}

	v, err, _ := m.group.Do("refresh", func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// finished the refresh while we queued.
		if tok := m.cached.Load(); tok != nil && fresh(tok) {
			return tok, nil
		}
		return m.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}

// refresh loads the persisted credential if needed and performs the refresh
// exchange. Runs inside the singleflight group only.
func (m *SessionManager) refresh(ctx context.Context) (*oauth2.Token, error) {
	tok := m.cached.Load()
	if tok == nil {
		loaded, err := m.store.Load()
		if errors.Is(err, ErrNoToken) {
			return nil, &AuthError{Err: err}
		}
		if err != nil {
			return nil, err
		}
		tok = loaded
	}

	if fresh(tok) {
		m.cached.Store(tok)
		return tok, nil
	}

	if tok.RefreshToken == "" {
		return nil, &AuthError{Err: errors.New("stored credential has no refresh token")}
	}

	// The refresh exchange runs against the session context, not the
	// triggering dispatch, so coalesced waiters are not failed by one
	// caller's cancellation.
	refreshCtx := m.ctx
	if refreshCtx == nil {
		refreshCtx = ctx
	}

	newTok, err := m.conf.TokenSource(refreshCtx, tok).Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, &AuthError{Err: err}
		}
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}

	// oauth2 drops the refresh token from the response when the provider
	// does not rotate it; carry the old one forward.
	if newTok.RefreshToken == "" {
		newTok.RefreshToken = tok.RefreshToken
	}

	if err := m.store.Save(newTok); err != nil {
		return nil, err
	}
	m.cached.Store(newTok)

	m.logger.Info("access token refreshed", slog.Time("expiry", newTok.Expiry))
	if m.onRefresh != nil {
		m.onRefresh()
	}
	return newTok, nil
}

// fresh reports whether the credential's expiry is safely in the future.
// Tokens without a recorded expiry are treated as valid; the provider will
// reject them if not.
func fresh(tok *oauth2.Token) bool {
	if tok.AccessToken == "" {
		return false
	}
	if tok.Expiry.IsZero() {
		return true
	}
	return time.Until(tok.Expiry) > expiryMargin
}
