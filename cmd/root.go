package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the inboxgate application
var rootCmd = &cobra.Command{
	Use:   "inboxgate",
	Short: "MCP gateway for a single Gmail mailbox",
	Long: `inboxgate exposes a Gmail mailbox to AI assistants through the
Model Context Protocol (MCP).

It provides a fixed catalog of tools for listing, searching, reading,
sending and labeling messages, backed by a locally stored OAuth credential
that is refreshed automatically.

Commands:
  - serve: run the MCP server (default)
  - auth:  perform the one-time OAuth consent flow
  - version: display version information`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxgate version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
