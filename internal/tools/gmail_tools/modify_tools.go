package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/server"
)

func handleModifyMessage(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
	messageID := stringArg(args, "message_id")
	if messageID == "" {
		return errorResult(gmail.NewError(gmail.KindInvalidArgument, "message_id is required")), nil
	}

	addLabels := splitList(stringArg(args, "add_labels"))
	removeLabels := splitList(stringArg(args, "remove_labels"))
	if len(addLabels) == 0 && len(removeLabels) == 0 {
		return errorResult(gmail.NewError(gmail.KindInvalidArgument,
			"at least one of add_labels or remove_labels is required")), nil
	}

	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	summary, err := svc.ModifyMessage(ctx, messageID, addLabels, removeLabels)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(summary)
}

func handleDeleteMessage(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
	messageID := stringArg(args, "message_id")
	if messageID == "" {
		return errorResult(gmail.NewError(gmail.KindInvalidArgument, "message_id is required")), nil
	}

	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	if err := svc.DeleteMessage(ctx, messageID); err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"message_id": messageID,
		"trashed":    true,
	})
}

// labelToggleHandler builds a handler that applies a fixed label mutation.
// The semantic tools (mark_as_read, star_message and friends) are modify
// operations with the label sets baked in, so their behavior never depends
// on caller-supplied labels.
func labelToggleHandler(addLabels, removeLabels []string) handlerFunc {
	return func(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
		messageID := stringArg(args, "message_id")
		if messageID == "" {
			return errorResult(gmail.NewError(gmail.KindInvalidArgument, "message_id is required")), nil
		}

		svc, err := sc.GmailService()
		if err != nil {
			return errorResult(err), nil
		}

		summary, err := svc.ModifyMessage(ctx, messageID, addLabels, removeLabels)
		if err != nil {
			return errorResult(err), nil
		}

		return jsonResult(summary)
	}
}
