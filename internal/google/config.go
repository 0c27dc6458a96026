package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// Scopes are the Gmail scopes the gateway requests during authorization.
// Every tool in the catalog is covered: read, search, send, label edits,
// and trash.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailSendScope,
	gmail.GmailModifyScope,
	gmail.GmailComposeScope,
}

// LoadOAuthConfig reads the OAuth client identity (client id and secret)
// from a Google Cloud Console credentials JSON file.
func LoadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, &StoreError{Path: credentialsPath, Err: fmt.Errorf("reading credentials file: %w", err)}
	}

	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, &StoreError{Path: credentialsPath, Err: fmt.Errorf("parsing credentials file: %w", err)}
	}
	return conf, nil
}

// Authorize exchanges a one-time authorization code for a credential and
// persists it. This is the end of the interactive consent flow; everything
// after runs on refresh exchanges.
func Authorize(ctx context.Context, conf *oauth2.Config, store *TokenStore, authCode string) error {
	tok, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	return store.Save(tok)
}
