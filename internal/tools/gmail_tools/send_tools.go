package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/server"
)

func handleSendMessage(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
	msg := &gmail.OutboundMessage{
		To:          splitList(stringArg(args, "to")),
		Cc:          splitList(stringArg(args, "cc")),
		Bcc:         splitList(stringArg(args, "bcc")),
		Subject:     stringArg(args, "subject"),
		Body:        stringArg(args, "body"),
		IsHTML:      boolArg(args, "html"),
		Attachments: splitList(stringArg(args, "attachments")),
	}

	// Construction failures must surface before any session or network work.
	if _, err := gmail.BuildRawMessage(msg); err != nil {
		return errorResult(err), nil
	}

	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	result, err := svc.SendMessage(ctx, msg)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(result)
}
