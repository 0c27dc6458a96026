// Package gmail_tools maps the fixed MCP tool catalog onto the Gmail
// adapter.
//
// The catalog is a closed set: list_messages, get_message, search_messages,
// send_message, modify_message, delete_message, mark_as_read, mark_as_unread,
// star_message, unstar_message and get_labels. Handle is the single dispatch
// entry point; unknown names produce an unsupported_tool error result and
// mutating tools are rejected while the server runs read-only. Handlers
// validate arguments before any session or network work and render every
// failure through the uniform `kind: message` envelope.
package gmail_tools
