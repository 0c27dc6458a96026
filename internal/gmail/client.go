package gmail

import (
	"context"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Service is the mailbox surface the dispatch layer programs against. It is
// implemented by Client and by test fakes.
type Service interface {
	ListMessages(ctx context.Context, q MessageQuery) ([]MessageSummary, error)
	GetMessage(ctx context.Context, messageID string) (*MessageDetail, error)
	SearchMessages(ctx context.Context, q MessageQuery) ([]MessageDetail, error)
	SendMessage(ctx context.Context, msg *OutboundMessage) (*SendResult, error)
	ModifyMessage(ctx context.Context, messageID string, addLabels, removeLabels []string) (*MessageSummary, error)
	DeleteMessage(ctx context.Context, messageID string) error
	ListLabels(ctx context.Context) ([]Label, error)
}

// Client issues Gmail API calls for the single authenticated mailbox. It is
// stateless apart from the underlying service handle; every method takes the
// request context and performs exactly one logical provider operation
// (listings may span multiple pages).
type Client struct {
	svc *gmail.UsersService
}

var _ Service = (*Client)(nil)

// NewClient builds a Gmail client on top of the given token source. The
// token source is expected to serialize refreshes itself (see the session
// manager). Extra options are used by tests to point at a fake endpoint.
func NewClient(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, Classify(err)
	}
	return &Client{svc: svc.Users}, nil
}

// ListMessages lists message summaries matching the query, following the
// provider's pagination cursor until the requested count is satisfied or the
// mailbox is exhausted. Results keep provider order (most recent first).
func (c *Client) ListMessages(ctx context.Context, q MessageQuery) ([]MessageSummary, error) {
	q = q.Normalize()

	var summaries []MessageSummary
	pageToken := ""

	for int64(len(summaries)) < q.MaxResults {
		pageSize := q.MaxResults - int64(len(summaries))
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		res, err := withRetry(ctx, func() (*gmail.ListMessagesResponse, error) {
			call := c.svc.Messages.List("me").Q(q.Query).MaxResults(pageSize).Context(ctx)
			if len(q.LabelIDs) > 0 {
				call = call.LabelIds(q.LabelIDs...)
			}
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			return call.Do()
		})
		if err != nil {
			return nil, err
		}

		for _, msg := range res.Messages {
			summaries = append(summaries, projectSummary(msg))
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(summaries)) > q.MaxResults {
		summaries = summaries[:q.MaxResults]
	}
	return summaries, nil
}

// GetMessage retrieves one message in full and projects it.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*MessageDetail, error) {
	if messageID == "" {
		return nil, NewError(KindInvalidArgument, "message_id is required")
	}

	msg, err := withRetry(ctx, func() (*gmail.Message, error) {
		return c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	detail := projectDetail(msg)
	return &detail, nil
}

// SearchMessages lists matching ids, then fetches each message in full.
// Results keep listing order.
func (c *Client) SearchMessages(ctx context.Context, q MessageQuery) ([]MessageDetail, error) {
	summaries, err := c.ListMessages(ctx, q)
	if err != nil {
		return nil, err
	}

	details := make([]MessageDetail, 0, len(summaries))
	for _, s := range summaries {
		detail, err := c.GetMessage(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// SendMessage constructs the MIME payload and submits it. Construction
// failures (missing recipients, unreadable attachments) happen before any
// network call.
func (c *Client) SendMessage(ctx context.Context, msg *OutboundMessage) (*SendResult, error) {
	raw, err := BuildRawMessage(msg)
	if err != nil {
		return nil, err
	}

	sent, err := withRetry(ctx, func() (*gmail.Message, error) {
		return c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	return &SendResult{MessageID: sent.Id, ThreadID: sent.ThreadId}, nil
}

// ModifyMessage adds and removes label ids on a message and returns the
// updated summary. Repeated identical modifications are valid; the provider
// treats them as no-ops.
func (c *Client) ModifyMessage(ctx context.Context, messageID string, addLabels, removeLabels []string) (*MessageSummary, error) {
	if messageID == "" {
		return nil, NewError(KindInvalidArgument, "message_id is required")
	}
	if len(addLabels) == 0 && len(removeLabels) == 0 {
		return nil, NewError(KindInvalidArgument, "at least one of add_labels or remove_labels is required")
	}

	msg, err := withRetry(ctx, func() (*gmail.Message, error) {
		return c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
			AddLabelIds:    addLabels,
			RemoveLabelIds: removeLabels,
		}).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	summary := projectSummary(msg)
	return &summary, nil
}

// DeleteMessage moves a message to the trash. Trashing is recoverable and
// needs no extra scope, unlike a permanent delete.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	if messageID == "" {
		return NewError(KindInvalidArgument, "message_id is required")
	}

	_, err := withRetry(ctx, func() (*gmail.Message, error) {
		return c.svc.Messages.Trash("me", messageID).Context(ctx).Do()
	})
	return err
}

// ListLabels returns every label on the mailbox.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	res, err := withRetry(ctx, func() (*gmail.ListLabelsResponse, error) {
		return c.svc.Labels.List("me").Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, projectLabel(l))
	}
	return labels, nil
}
