// Package gmail adapts the Gmail API to the gateway's tool surface.
//
// The package has three responsibilities:
//
//   - Adapter: Client issues the provider calls (list, get, search, send,
//     modify, trash, labels) and bounds retryable failures with exponential
//     backoff.
//   - Translator: structured filters become Gmail query syntax, outbound
//     messages become RFC 2822 MIME payloads, and provider shapes are
//     projected onto the read-only MessageSummary/MessageDetail/Label
//     records.
//   - Error taxonomy: every provider or transport failure is normalized into
//     a Kind before it crosses into the dispatch layer.
//
// All mailbox mutation is expressed as a request to the provider; nothing is
// cached or mutated locally.
package gmail
