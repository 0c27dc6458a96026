package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.ServerName != DefaultServerName {
		t.Errorf("ServerName = %q, want %q", cfg.ServerName, DefaultServerName)
	}
	if cfg.CredentialsFile != DefaultCredentialsFile {
		t.Errorf("CredentialsFile = %q, want %q", cfg.CredentialsFile, DefaultCredentialsFile)
	}
	if cfg.TokenFile != DefaultTokenFile {
		t.Errorf("TokenFile = %q, want %q", cfg.TokenFile, DefaultTokenFile)
	}
	if cfg.DefaultQuery != DefaultQuery {
		t.Errorf("DefaultQuery = %q, want %q", cfg.DefaultQuery, DefaultQuery)
	}
	if cfg.DefaultMaxResults != DefaultMaxResults {
		t.Errorf("DefaultMaxResults = %d, want %d", cfg.DefaultMaxResults, DefaultMaxResults)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MCP_SERVER_NAME", "mailbox-gw")
	t.Setenv("GMAIL_CREDENTIALS_FILE", "/etc/gw/creds.json")
	t.Setenv("GMAIL_TOKEN_FILE", "/var/lib/gw/token.json")
	t.Setenv("DEFAULT_QUERY", "is:unread")
	t.Setenv("DEFAULT_MAX_RESULTS", "200")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/gw.log")

	cfg := FromEnv()

	if cfg.ServerName != "mailbox-gw" {
		t.Errorf("ServerName = %q", cfg.ServerName)
	}
	if cfg.CredentialsFile != "/etc/gw/creds.json" {
		t.Errorf("CredentialsFile = %q", cfg.CredentialsFile)
	}
	if cfg.TokenFile != "/var/lib/gw/token.json" {
		t.Errorf("TokenFile = %q", cfg.TokenFile)
	}
	if cfg.DefaultQuery != "is:unread" {
		t.Errorf("DefaultQuery = %q", cfg.DefaultQuery)
	}
	if cfg.DefaultMaxResults != 200 {
		t.Errorf("DefaultMaxResults = %d", cfg.DefaultMaxResults)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/gw.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestFromEnvInvalidMaxResults(t *testing.T) {
	t.Setenv("DEFAULT_MAX_RESULTS", "not-a-number")
	if got := FromEnv().DefaultMaxResults; got != DefaultMaxResults {
		t.Errorf("DefaultMaxResults = %d, want default %d", got, DefaultMaxResults)
	}

	t.Setenv("DEFAULT_MAX_RESULTS", "-3")
	if got := FromEnv().DefaultMaxResults; got != DefaultMaxResults {
		t.Errorf("negative DefaultMaxResults = %d, want default %d", got, DefaultMaxResults)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(credsPath, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Config{CredentialsFile: credsPath}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with existing file: %v", err)
	}

	cfg.CredentialsFile = filepath.Join(dir, "missing.json")
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with missing file should fail")
	}
}
