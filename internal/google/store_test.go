package google

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := NewTokenStore(path)

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, store.Save(tok))

	// Token material must not be world readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, loaded.AccessToken)
	assert.Equal(t, tok.RefreshToken, loaded.RefreshToken)
	assert.True(t, tok.Expiry.Equal(loaded.Expiry))
}

func TestTokenStoreLoadMissing(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrNoToken), "missing file should be ErrNoToken, got %v", err)
}

func TestTokenStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewTokenStore(path)
	_, err := store.Load()
	require.Error(t, err)

	var se *StoreError
	assert.True(t, errors.As(err, &se), "corrupt file should be a StoreError, got %v", err)
	assert.False(t, errors.Is(err, ErrNoToken))
}
