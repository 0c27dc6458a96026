// Package config holds the process configuration for the gateway,
// assembled from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the runtime configuration.
const (
	DefaultServerName      = "inboxgate"
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
	DefaultQuery           = "in:inbox"
	DefaultMaxResults      = 50
	DefaultLogLevel        = "info"
)

// Config is the resolved process configuration.
type Config struct {
	// ServerName is advertised to MCP clients during initialization.
	ServerName string

	// CredentialsFile is the OAuth client identity JSON from the Google
	// Cloud Console.
	CredentialsFile string

	// TokenFile is where the delegated credential is persisted and
	// rewritten on refresh.
	TokenFile string

	// DefaultQuery is applied when list_messages is called without one.
	DefaultQuery string

	// DefaultMaxResults caps listings when the caller does not.
	DefaultMaxResults int64

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile, when set, receives log output instead of stderr. Required
	// for the stdio transport, where stdout carries the protocol.
	LogFile string
}

// FromEnv builds a Config from environment variables, filling defaults for
// anything unset.
func FromEnv() Config {
	cfg := Config{
		ServerName:        envOr("MCP_SERVER_NAME", DefaultServerName),
		CredentialsFile:   envOr("GMAIL_CREDENTIALS_FILE", DefaultCredentialsFile),
		TokenFile:         envOr("GMAIL_TOKEN_FILE", DefaultTokenFile),
		DefaultQuery:      envOr("DEFAULT_QUERY", DefaultQuery),
		DefaultMaxResults: DefaultMaxResults,
		LogLevel:          envOr("LOG_LEVEL", DefaultLogLevel),
		LogFile:           os.Getenv("LOG_FILE"),
	}

	if v := os.Getenv("DEFAULT_MAX_RESULTS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.DefaultMaxResults = n
		}
	}

	return cfg
}

// Validate fails fast when the configuration cannot possibly serve: the
// OAuth client credentials file must exist before anything else runs.
func (c Config) Validate() error {
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		return fmt.Errorf("credentials file not found at %s: download your OAuth client JSON from the Google Cloud Console", c.CredentialsFile)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
