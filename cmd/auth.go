package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/inboxgate/inboxgate/internal/config"
	"github.com/inboxgate/inboxgate/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Perform the one-time OAuth consent flow",
		Long: `Authorize inboxgate to access your Gmail mailbox.

Prints a consent URL to open in a browser, then reads the authorization
code from stdin and exchanges it for a credential. The credential is
persisted to the token file (GMAIL_TOKEN_FILE, default: token.json) and
refreshed automatically from then on; this command only needs to run once,
or again after the credential is revoked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAuth(cmd.Context(), cfg)
		},
	}
	return cmd
}

func runAuth(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	conf, err := google.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	authURL := conf.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
	)

	fmt.Println("Open the following URL in your browser and authorize access:")
	fmt.Println()
	fmt.Printf("  %s\n", authURL)
	fmt.Println()
	fmt.Print("Enter the authorization code: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	store := google.NewTokenStore(cfg.TokenFile)
	if err := google.Authorize(ctx, conf, store, code); err != nil {
		return err
	}

	fmt.Printf("Credential saved to %s\n", cfg.TokenFile)
	return nil
}
