package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned by Load when no credential has been persisted yet.
// The caller must run the one-time authorization flow.
var ErrNoToken = errors.New("no stored token")

// StoreError means the token file itself is unusable: unreadable,
// unwritable, or corrupt. Fatal for the process; there is no way to serve
// any tool without a credential.
type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("token store %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// TokenStore persists the delegated credential as a JSON token file. The
// file holds the access/refresh token pair with its expiry and is rewritten
// whenever a refresh produces new material.
type TokenStore struct {
	path string
}

// NewTokenStore creates a store backed by the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Path returns the backing file path.
func (s *TokenStore) Path() string { return s.path }

// Load reads the persisted credential. Returns ErrNoToken when the file does
// not exist and a StoreError when it exists but cannot be used.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, &StoreError{Path: s.path, Err: err}
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, &StoreError{Path: s.path, Err: fmt.Errorf("malformed token file: %w", err)}
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, &StoreError{Path: s.path, Err: errors.New("token file carries no tokens")}
	}
	return &tok, nil
}

// Save writes the credential back to disk with owner-only permissions.
func (s *TokenStore) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return &StoreError{Path: s.path, Err: err}
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return &StoreError{Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return &StoreError{Path: s.path, Err: err}
	}
	return nil
}
