package gmail_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/inboxgate/inboxgate/internal/config"
	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/server"
)

// fakeService records calls so dispatch behavior can be asserted without any
// network.
type fakeService struct {
	listCalls   int
	getCalls    int
	searchCalls int
	sendCalls   int
	modifyCalls int
	deleteCalls int
	labelCalls  int

	lastQuery   gmail.MessageQuery
	lastSend    *gmail.OutboundMessage
	lastAdd     []string
	lastRemove  []string
	lastMessage string

	err error
}

var _ gmail.Service = (*fakeService)(nil)

func (f *fakeService) ListMessages(ctx context.Context, q gmail.MessageQuery) ([]gmail.MessageSummary, error) {
	f.listCalls++
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return []gmail.MessageSummary{{ID: "m1", ThreadID: "t1", Snippet: "hello"}}, nil
}

func (f *fakeService) GetMessage(ctx context.Context, messageID string) (*gmail.MessageDetail, error) {
	f.getCalls++
	f.lastMessage = messageID
	if f.err != nil {
		return nil, f.err
	}
	return &gmail.MessageDetail{ID: messageID, Subject: "a subject", IsRead: true}, nil
}

func (f *fakeService) SearchMessages(ctx context.Context, q gmail.MessageQuery) ([]gmail.MessageDetail, error) {
	f.searchCalls++
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return []gmail.MessageDetail{{ID: "m1", Subject: "found"}}, nil
}

func (f *fakeService) SendMessage(ctx context.Context, msg *gmail.OutboundMessage) (*gmail.SendResult, error) {
	f.sendCalls++
	f.lastSend = msg
	if f.err != nil {
		return nil, f.err
	}
	return &gmail.SendResult{MessageID: "sent-1", ThreadID: "thread-1"}, nil
}

func (f *fakeService) ModifyMessage(ctx context.Context, messageID string, addLabels, removeLabels []string) (*gmail.MessageSummary, error) {
	f.modifyCalls++
	f.lastMessage = messageID
	f.lastAdd = addLabels
	f.lastRemove = removeLabels
	if f.err != nil {
		return nil, f.err
	}
	return &gmail.MessageSummary{ID: messageID, ThreadID: "t1"}, nil
}

func (f *fakeService) DeleteMessage(ctx context.Context, messageID string) error {
	f.deleteCalls++
	f.lastMessage = messageID
	return f.err
}

func (f *fakeService) ListLabels(ctx context.Context) ([]gmail.Label, error) {
	f.labelCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []gmail.Label{{ID: "INBOX", Name: "INBOX", Type: "system"}}, nil
}

func newTestContext(t *testing.T, readOnly bool) (*server.ServerContext, *fakeService) {
	t.Helper()
	cfg := config.FromEnv()
	sc := server.NewServerContext(context.Background(), server.Options{
		Config:   &cfg,
		ReadOnly: readOnly,
	})
	t.Cleanup(func() { _ = sc.Shutdown() })

	fake := &fakeService{}
	sc.SetGmailService(fake)
	return sc, fake
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return tc.Text
}

func TestHandleUnknownTool(t *testing.T) {
	sc, _ := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "read_calendar", nil)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "unsupported_tool")
	assert.Contains(t, resultText(t, result), "read_calendar")
}

func TestHandleListMessages(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "list_messages", map[string]any{
		"query":       "from:alice",
		"max_results": float64(25),
		"label_ids":   "INBOX, UNREAD",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError, resultText(t, result))

	assert.Equal(t, 1, fake.listCalls)
	assert.Equal(t, "from:alice", fake.lastQuery.Query)
	assert.Equal(t, int64(25), fake.lastQuery.MaxResults)
	assert.Equal(t, []string{"INBOX", "UNREAD"}, fake.lastQuery.LabelIDs)
	assert.Contains(t, resultText(t, result), `"m1"`)
}

func TestHandleListMessagesDefaults(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "list_messages", map[string]any{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, config.DefaultQuery, fake.lastQuery.Query)
	assert.Equal(t, int64(config.DefaultMaxResults), fake.lastQuery.MaxResults)
}

func TestHandleGetMessage(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "get_message", map[string]any{
		"message_id": "m42",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "m42", fake.lastMessage)
	assert.Contains(t, resultText(t, result), "a subject")
}

func TestHandleGetMessageMissingID(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "get_message", map[string]any{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid_argument")
	assert.Equal(t, 0, fake.getCalls, "validation must precede any provider work")
}

func TestHandleSearchMessages(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "search_messages", map[string]any{
		"from":   "alice@example.com",
		"unread": true,
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "from:alice@example.com is:unread", fake.lastQuery.Query)
}

func TestHandleSearchMessagesRawWins(t *testing.T) {
	sc, fake := newTestContext(t, false)

	_, err := Handle(context.Background(), sc, "search_messages", map[string]any{
		"query": "in:inbox custom",
		"from":  "ignored@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "in:inbox custom", fake.lastQuery.Query)
}

func TestHandleSearchMessagesNoFilters(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "search_messages", map[string]any{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid_argument")
	assert.Equal(t, 0, fake.searchCalls)
}

func TestHandleSendMessage(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "send_message", map[string]any{
		"to":      "a@example.com, b@example.com",
		"cc":      "c@example.com",
		"subject": "hi",
		"body":    "hello",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError, resultText(t, result))

	require.Equal(t, 1, fake.sendCalls)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, fake.lastSend.To)
	assert.Equal(t, []string{"c@example.com"}, fake.lastSend.Cc)
	assert.Contains(t, resultText(t, result), "sent-1")
}

func TestHandleSendMessageNoRecipients(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "send_message", map[string]any{
		"subject": "orphan",
		"body":    "never sent",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid_argument")
	assert.Equal(t, 0, fake.sendCalls, "invalid send must not reach the service")
}

func TestHandleModifyMessageIsRepeatable(t *testing.T) {
	sc, fake := newTestContext(t, false)

	args := map[string]any{
		"message_id":    "m1",
		"add_labels":    "STARRED",
		"remove_labels": "UNREAD",
	}
	for i := 0; i < 2; i++ {
		result, err := Handle(context.Background(), sc, "modify_message", args)
		require.NoError(t, err)
		assert.False(t, result.IsError, "attempt %d: %s", i+1, resultText(t, result))
	}

	assert.Equal(t, 2, fake.modifyCalls)
	assert.Equal(t, []string{"STARRED"}, fake.lastAdd)
	assert.Equal(t, []string{"UNREAD"}, fake.lastRemove)
}

func TestHandleModifyMessageNoLabels(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "modify_message", map[string]any{
		"message_id": "m1",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid_argument")
	assert.Equal(t, 0, fake.modifyCalls)
}

func TestHandleDeleteMessage(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "delete_message", map[string]any{
		"message_id": "m9",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 1, fake.deleteCalls)
	assert.Equal(t, "m9", fake.lastMessage)
	assert.Contains(t, resultText(t, result), "trashed")
}

func TestSemanticLabelTools(t *testing.T) {
	tests := []struct {
		tool       string
		wantAdd    []string
		wantRemove []string
	}{
		{tool: "mark_as_read", wantAdd: nil, wantRemove: []string{gmail.LabelUnread}},
		{tool: "mark_as_unread", wantAdd: []string{gmail.LabelUnread}, wantRemove: nil},
		{tool: "star_message", wantAdd: []string{gmail.LabelStarred}, wantRemove: nil},
		{tool: "unstar_message", wantAdd: nil, wantRemove: []string{gmail.LabelStarred}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			sc, fake := newTestContext(t, false)

			result, err := Handle(context.Background(), sc, tt.tool, map[string]any{
				"message_id": "m1",
			})
			require.NoError(t, err)
			assert.False(t, result.IsError, resultText(t, result))
			assert.Equal(t, tt.wantAdd, fake.lastAdd)
			assert.Equal(t, tt.wantRemove, fake.lastRemove)
		})
	}
}

func TestHandleGetLabels(t *testing.T) {
	sc, fake := newTestContext(t, false)

	result, err := Handle(context.Background(), sc, "get_labels", nil)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 1, fake.labelCalls)
	assert.Contains(t, resultText(t, result), "INBOX")
}

func TestReadOnlyModeRejectsMutatingTools(t *testing.T) {
	mutating := []string{
		"send_message", "modify_message", "delete_message",
		"mark_as_read", "mark_as_unread", "star_message", "unstar_message",
	}

	for _, tool := range mutating {
		t.Run(tool, func(t *testing.T) {
			sc, fake := newTestContext(t, true)

			result, err := Handle(context.Background(), sc, tool, map[string]any{
				"message_id": "m1",
				"to":         "a@example.com",
				"body":       "x",
				"add_labels": "STARRED",
			})
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "permission_denied")
			assert.Zero(t, fake.sendCalls+fake.modifyCalls+fake.deleteCalls)
		})
	}
}

func TestReadOnlyModeAllowsReadTools(t *testing.T) {
	sc, _ := newTestContext(t, true)

	result, err := Handle(context.Background(), sc, "list_messages", nil)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestServiceErrorsAreClassified(t *testing.T) {
	sc, fake := newTestContext(t, false)
	fake.err = &googleapi.Error{Code: 404, Message: "message not found"}

	result, err := Handle(context.Background(), sc, "get_message", map[string]any{
		"message_id": "gone",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not_found")
}

func TestCatalogCoversEveryTool(t *testing.T) {
	want := []string{
		"list_messages", "get_message", "search_messages", "send_message",
		"modify_message", "delete_message", "mark_as_read", "mark_as_unread",
		"star_message", "unstar_message", "get_labels",
	}

	assert.Len(t, catalog, len(want))
	for _, name := range want {
		if _, ok := catalogIndex[name]; !ok {
			t.Errorf("catalog is missing %s", name)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ,", []string{"a", "b"}},
		{",,", []string{}},
	}

	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
