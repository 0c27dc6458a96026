package gmail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/inboxgate/inboxgate/internal/google"
)

// Kind classifies a failure at the gateway boundary. Every error that crosses
// into the dispatch layer carries exactly one Kind; raw transport errors never
// leak through.
type Kind string

const (
	// KindAuthentication means the refresh token was rejected or revoked.
	// Fatal: requires re-running `inboxgate auth`, never retried.
	KindAuthentication Kind = "authentication_error"

	// KindCredentialStore means the token file could not be read or written.
	KindCredentialStore Kind = "credential_store_error"

	// KindUnsupportedTool means the dispatched tool name is not in the catalog.
	KindUnsupportedTool Kind = "unsupported_tool"

	// KindInvalidArgument covers malformed ids, queries and argument
	// validation failures.
	KindInvalidArgument Kind = "invalid_argument"

	// KindNotFound means the provider does not know the id.
	KindNotFound Kind = "not_found"

	// KindPermissionDenied covers scope and ownership rejections.
	KindPermissionDenied Kind = "permission_denied"

	// KindRateLimited is a provider-signaled throttle. Retryable.
	KindRateLimited Kind = "rate_limited"

	// KindTransient covers network failures and 5xx responses. Retryable.
	KindTransient Kind = "transient"

	// KindUnknown is the catch-all for everything else.
	KindUnknown Kind = "unknown"
)

// Error is the gateway's uniform error envelope: a stable kind tag plus a
// human-readable message.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.err }

// Retryable reports whether the error kind may succeed on a later attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindTransient
}

// NewError builds an Error with the given kind and message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, classifying it first if needed.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return Classify(err).Kind
}

// Classify normalizes a provider or transport error into the local taxonomy.
// Already-classified errors pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	// Session-layer failures map onto their dedicated kinds.
	var ae *google.AuthError
	if errors.As(err, &ae) {
		return &Error{Kind: KindAuthentication, Message: ae.Error(), err: err}
	}
	var se *google.StoreError
	if errors.As(err, &se) {
		return &Error{Kind: KindCredentialStore, Message: se.Error(), err: err}
	}

	// Refresh token rejection from the OAuth endpoint is terminal.
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return &Error{Kind: KindAuthentication, Message: "token refresh rejected, re-run authorization", err: err}
	}

	var api *googleapi.Error
	if errors.As(err, &api) {
		return classifyAPIError(api)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		// A timed-out mutating call is ambiguous: the remote side effect may
		// still have occurred. Callers must not treat this as hard failure.
		return &Error{Kind: KindTransient, Message: "request timed out (outcome ambiguous)", err: err}
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return &Error{Kind: KindTransient, Message: "network error: " + ne.Error(), err: err}
	}

	return &Error{Kind: KindUnknown, Message: err.Error(), err: err}
}

func classifyAPIError(api *googleapi.Error) *Error {
	switch {
	case api.Code == 400:
		return &Error{Kind: KindInvalidArgument, Message: api.Message, err: api}
	case api.Code == 401:
		return &Error{Kind: KindAuthentication, Message: "provider rejected credentials", err: api}
	case api.Code == 403 && isRateLimitReason(api):
		return &Error{Kind: KindRateLimited, Message: api.Message, err: api}
	case api.Code == 403:
		return &Error{Kind: KindPermissionDenied, Message: api.Message, err: api}
	case api.Code == 404:
		return &Error{Kind: KindNotFound, Message: api.Message, err: api}
	case api.Code == 429:
		return &Error{Kind: KindRateLimited, Message: api.Message, err: api}
	case api.Code >= 500:
		return &Error{Kind: KindTransient, Message: api.Message, err: api}
	default:
		return &Error{Kind: KindUnknown, Message: api.Message, err: api}
	}
}

// isRateLimitReason distinguishes quota 403s from permission 403s. Gmail
// reports throttling as 403 with a rateLimitExceeded-style reason.
func isRateLimitReason(api *googleapi.Error) bool {
	for _, e := range api.Errors {
		switch e.Reason {
		case "rateLimitExceeded", "userRateLimitExceeded", "dailyLimitExceeded", "quotaExceeded":
			return true
		}
	}
	return strings.Contains(strings.ToLower(api.Message), "rate limit")
}
