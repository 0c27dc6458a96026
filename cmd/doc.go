// Package cmd implements the command-line interface for inboxgate.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the Gmail tool catalog
//   - auth: Perform the one-time OAuth consent flow
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
