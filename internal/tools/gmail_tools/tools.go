package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/instrumentation"
	"github.com/inboxgate/inboxgate/internal/logging"
	"github.com/inboxgate/inboxgate/internal/server"
)

// handlerFunc is the signature every tool handler implements. Handlers
// validate their arguments before touching the session or the network and
// report failures as error results, never as Go errors; a non-nil error
// return is reserved for protocol-level faults.
type handlerFunc func(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error)

// toolDef binds a tool declaration to its handler. Mutating tools are
// rejected while the server runs in read-only mode.
type toolDef struct {
	tool     mcp.Tool
	mutating bool
	handler  handlerFunc
}

// catalog is the fixed tool surface of the gateway. Dispatch looks names up
// here; anything else is unsupported.
var catalog = buildCatalog()

var catalogIndex = func() map[string]toolDef {
	idx := make(map[string]toolDef, len(catalog))
	for _, def := range catalog {
		idx[def.tool.Name] = def
	}
	return idx
}()

func buildCatalog() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("list_messages",
				mcp.WithDescription("List messages in the mailbox, most recent first"),
				mcp.WithString("query",
					mcp.Description("Gmail search query (e.g., 'in:inbox', 'from:user@example.com'). Defaults to the configured query."),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of results to return (default: 50, ceiling: 500)"),
				),
				mcp.WithString("label_ids",
					mcp.Description("Comma-separated label ids to restrict the listing to (e.g., 'INBOX,UNREAD')"),
				),
			),
			handler: handleListMessages,
		},
		{
			tool: mcp.NewTool("get_message",
				mcp.WithDescription("Get a single message in full, including headers, body and attachment metadata"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to retrieve"),
				),
			),
			handler: handleGetMessage,
		},
		{
			tool: mcp.NewTool("search_messages",
				mcp.WithDescription("Search the mailbox with structured filters and return full messages"),
				mcp.WithString("query",
					mcp.Description("Raw Gmail search query. When set, all structured filters are ignored."),
				),
				mcp.WithString("from",
					mcp.Description("Sender address or name to match"),
				),
				mcp.WithString("to",
					mcp.Description("Recipient address or name to match"),
				),
				mcp.WithString("subject",
					mcp.Description("Subject text to match"),
				),
				mcp.WithString("label",
					mcp.Description("Label name to match"),
				),
				mcp.WithBoolean("unread",
					mcp.Description("Only unread messages"),
				),
				mcp.WithBoolean("starred",
					mcp.Description("Only starred messages"),
				),
				mcp.WithBoolean("has_attachment",
					mcp.Description("Only messages with attachments"),
				),
				mcp.WithString("after",
					mcp.Description("Only messages after this date (YYYY/MM/DD)"),
				),
				mcp.WithString("before",
					mcp.Description("Only messages before this date (YYYY/MM/DD)"),
				),
				mcp.WithString("has_words",
					mcp.Description("Free-text words the message must contain"),
				),
				mcp.WithNumber("max_results",
					mcp.Description("Maximum number of results to return (default: 50, ceiling: 500)"),
				),
			),
			handler: handleSearchMessages,
		},
		{
			tool: mcp.NewTool("send_message",
				mcp.WithDescription("Send an email from the authenticated mailbox"),
				mcp.WithString("to",
					mcp.Required(),
					mcp.Description("Comma-separated recipient addresses"),
				),
				mcp.WithString("cc",
					mcp.Description("Comma-separated CC addresses"),
				),
				mcp.WithString("bcc",
					mcp.Description("Comma-separated BCC addresses"),
				),
				mcp.WithString("subject",
					mcp.Description("Message subject"),
				),
				mcp.WithString("body",
					mcp.Description("Message body"),
				),
				mcp.WithBoolean("html",
					mcp.Description("Send the body as HTML instead of plain text"),
				),
				mcp.WithString("attachments",
					mcp.Description("Comma-separated local file paths to attach (25MB limit per file)"),
				),
			),
			mutating: true,
			handler:  handleSendMessage,
		},
		{
			tool: mcp.NewTool("modify_message",
				mcp.WithDescription("Add and/or remove labels on a message"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to modify"),
				),
				mcp.WithString("add_labels",
					mcp.Description("Comma-separated label ids to add"),
				),
				mcp.WithString("remove_labels",
					mcp.Description("Comma-separated label ids to remove"),
				),
			),
			mutating: true,
			handler:  handleModifyMessage,
		},
		{
			tool: mcp.NewTool("delete_message",
				mcp.WithDescription("Move a message to the trash"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to delete"),
				),
			),
			mutating: true,
			handler:  handleDeleteMessage,
		},
		{
			tool: mcp.NewTool("mark_as_read",
				mcp.WithDescription("Mark a message as read"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to mark as read"),
				),
			),
			mutating: true,
			handler:  labelToggleHandler(nil, []string{gmail.LabelUnread}),
		},
		{
			tool: mcp.NewTool("mark_as_unread",
				mcp.WithDescription("Mark a message as unread"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to mark as unread"),
				),
			),
			mutating: true,
			handler:  labelToggleHandler([]string{gmail.LabelUnread}, nil),
		},
		{
			tool: mcp.NewTool("star_message",
				mcp.WithDescription("Star a message"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to star"),
				),
			),
			mutating: true,
			handler:  labelToggleHandler([]string{gmail.LabelStarred}, nil),
		},
		{
			tool: mcp.NewTool("unstar_message",
				mcp.WithDescription("Remove the star from a message"),
				mcp.WithString("message_id",
					mcp.Required(),
					mcp.Description("The ID of the message to unstar"),
				),
			),
			mutating: true,
			handler:  labelToggleHandler(nil, []string{gmail.LabelStarred}),
		},
		{
			tool: mcp.NewTool("get_labels",
				mcp.WithDescription("List all labels on the mailbox"),
			),
			handler: handleGetLabels,
		},
	}
}

// RegisterGmailTools registers the tool catalog with the MCP server. Every
// invocation funnels through Handle so dispatch behaves identically whether
// it arrives via the protocol or directly.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	for _, def := range catalog {
		name := def.tool.Name
		s.AddTool(def.tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return Handle(ctx, sc, name, request.GetArguments())
		})
	}
}

// Handle dispatches one tool invocation by name. Unknown names yield an
// unsupported_tool error result; mutating tools are rejected in read-only
// mode. Every path records an invocation metric and a log line.
func Handle(ctx context.Context, sc *server.ServerContext, name string, args map[string]any) (*mcp.CallToolResult, error) {
	start := time.Now()
	logger := logging.WithTool(sc.Logger(), name)

	def, ok := catalogIndex[name]
	if !ok {
		result := errorResult(gmail.NewError(gmail.KindUnsupportedTool, "tool %q is not in the catalog", name))
		finish(ctx, sc, logger, name, result, start)
		return result, nil
	}

	if def.mutating && sc.ReadOnly() {
		result := errorResult(gmail.NewError(gmail.KindPermissionDenied,
			"tool %q modifies the mailbox and is disabled in read-only mode; start the server with --yolo to enable it", name))
		finish(ctx, sc, logger, name, result, start)
		return result, nil
	}

	result, err := def.handler(ctx, sc, args)
	if err != nil {
		// Handlers report tool failures as error results; a Go error here is
		// a dispatch bug, but it still must not escape unclassified.
		result = errorResult(err)
		err = nil
	}

	finish(ctx, sc, logger, name, result, start)
	return result, err
}

func finish(ctx context.Context, sc *server.ServerContext, logger *slog.Logger, name string, result *mcp.CallToolResult, start time.Time) {
	status := instrumentation.StatusSuccess
	if result != nil && result.IsError {
		status = instrumentation.StatusError
	}
	sc.Metrics().RecordToolInvocation(ctx, name, status, time.Since(start))
	logger.Debug("tool invocation",
		logging.Status(status),
		slog.Duration(logging.KeyDuration, time.Since(start)),
	)
}

// errorResult renders any error as the uniform `kind: message` envelope.
func errorResult(err error) *mcp.CallToolResult {
	cerr := gmail.Classify(err)
	return mcp.NewToolResultError(cerr.Error())
}

// jsonResult marshals a payload as the tool's text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encoding result: %w", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// stringArg extracts an optional string argument.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// boolArg extracts an optional boolean argument.
func boolArg(args map[string]any, key string) bool {
	v, ok := args[key].(bool)
	return ok && v
}

// int64Arg extracts an optional numeric argument. JSON numbers arrive as
// float64.
func int64Arg(args map[string]any, key string) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// splitList splits a comma-separated argument into trimmed, non-empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
