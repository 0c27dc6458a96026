// Package logging provides structured logging for the gateway using the
// standard library's slog package: process logger setup (stderr or log
// file), consistent attribute names, and PII-safe email anonymization.
package logging
