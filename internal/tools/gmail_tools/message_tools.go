package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/server"
)

func handleListMessages(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
	query := stringArg(args, "query")
	if query == "" && sc.Config() != nil {
		query = sc.Config().DefaultQuery
	}

	q := gmail.MessageQuery{
		Query:      query,
		MaxResults: int64Arg(args, "max_results"),
		LabelIDs:   splitList(stringArg(args, "label_ids")),
	}
	if q.MaxResults == 0 && sc.Config() != nil {
		q.MaxResults = sc.Config().DefaultMaxResults
	}

	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	summaries, err := svc.ListMessages(ctx, q)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"count":    len(summaries),
		"messages": summaries,
	})
}

func handleGetMessage(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
	messageID := stringArg(args, "message_id")
	if messageID == "" {
		return errorResult(gmail.NewError(gmail.KindInvalidArgument, "message_id is required")), nil
	}

	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	detail, err := svc.GetMessage(ctx, messageID)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(detail)
}

func handleSearchMessages(ctx context.Context, sc *server.ServerContext, args map[string]any) (*mcp.CallToolResult, error) {
	filters := gmail.QueryFilters{
		Raw:        stringArg(args, "query"),
		From:       stringArg(args, "from"),
		To:         stringArg(args, "to"),
		Subject:    stringArg(args, "subject"),
		Label:      stringArg(args, "label"),
		Unread:     boolArg(args, "unread"),
		Starred:    boolArg(args, "starred"),
		HasWords:   stringArg(args, "has_words"),
		After:      stringArg(args, "after"),
		Before:     stringArg(args, "before"),
		Attachment: boolArg(args, "has_attachment"),
	}

	query := gmail.BuildQuery(filters)
	if query == "" {
		return errorResult(gmail.NewError(gmail.KindInvalidArgument,
			"at least one search filter is required")), nil
	}

	q := gmail.MessageQuery{
		Query:      query,
		MaxResults: int64Arg(args, "max_results"),
	}
	if q.MaxResults == 0 && sc.Config() != nil {
		q.MaxResults = sc.Config().DefaultMaxResults
	}

	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	details, err := svc.SearchMessages(ctx, q)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"query":    query,
		"count":    len(details),
		"messages": details,
	})
}

func handleGetLabels(ctx context.Context, sc *server.ServerContext, _ map[string]any) (*mcp.CallToolResult, error) {
	svc, err := sc.GmailService()
	if err != nil {
		return errorResult(err), nil
	}

	labels, err := svc.ListLabels(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"count":  len(labels),
		"labels": labels,
	})
}
