package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func b64url(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestExtractBodyPrefersPlainText(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: b64url("<p>hello</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: b64url("hello")},
			},
		},
	}

	assert.Equal(t, "hello", extractBody(payload))
}

func TestExtractBodyFallsBackToHTML(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/html",
		Body:     &gmailapi.MessagePartBody{Data: b64url("<p>only html</p>")},
	}

	assert.Equal(t, "<p>only html</p>", extractBody(payload))
}

func TestExtractBodyNestedMultipart(t *testing.T) {
	// multipart/mixed wrapping multipart/alternative, the usual shape for a
	// message with attachments.
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmailapi.MessagePartBody{Data: b64url("nested body")},
					},
				},
			},
			{
				MimeType: "application/pdf",
				Filename: "doc.pdf",
				Body:     &gmailapi.MessagePartBody{AttachmentId: "att-1", Size: 1234},
			},
		},
	}

	assert.Equal(t, "nested body", extractBody(payload))

	attachments := extractAttachments(payload)
	if assert.Len(t, attachments, 1) {
		assert.Equal(t, "att-1", attachments[0].AttachmentID)
		assert.Equal(t, "doc.pdf", attachments[0].Filename)
		assert.Equal(t, "application/pdf", attachments[0].MimeType)
		assert.Equal(t, int64(1234), attachments[0].Size)
	}
}

func TestExtractBodyEmpty(t *testing.T) {
	assert.Equal(t, "", extractBody(nil))
	assert.Equal(t, "", extractBody(&gmailapi.MessagePart{MimeType: "text/plain"}))
}

func TestHeaderValueMissingIsEmpty(t *testing.T) {
	msg := &gmailapi.Message{
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "Subject", Value: "hi"},
				{Name: "FROM", Value: "alice@example.com"},
			},
		},
	}

	assert.Equal(t, "hi", headerValue(msg, "subject"))
	assert.Equal(t, "alice@example.com", headerValue(msg, "From"))
	assert.Equal(t, "", headerValue(msg, "Reply-To"))
	assert.Equal(t, "", headerValue(&gmailapi.Message{}, "Subject"))
}

func TestProjectDetailFlags(t *testing.T) {
	msg := &gmailapi.Message{
		Id:       "m1",
		LabelIds: []string{LabelInbox, LabelUnread, LabelImportant},
	}

	detail := projectDetail(msg)
	assert.False(t, detail.IsRead, "UNREAD label means not read")
	assert.False(t, detail.IsStarred)
	assert.True(t, detail.IsImportant)
}
