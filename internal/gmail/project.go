package gmail

import (
	"encoding/base64"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// headerValue returns the first matching header value, case-insensitively.
// A missing header yields the empty string, never an error.
func headerValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// hasLabel reports whether the message carries the given label id.
func hasLabel(msg *gmail.Message, labelID string) bool {
	for _, id := range msg.LabelIds {
		if id == labelID {
			return true
		}
	}
	return false
}

// projectSummary maps a provider message onto the listing projection.
func projectSummary(msg *gmail.Message) MessageSummary {
	return MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		LabelIDs: msg.LabelIds,
		Snippet:  msg.Snippet,
	}
}

// projectDetail maps a full provider message onto MessageDetail, decoding the
// body and collecting attachment metadata.
func projectDetail(msg *gmail.Message) MessageDetail {
	return MessageDetail{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		LabelIDs:     msg.LabelIds,
		Snippet:      msg.Snippet,
		SizeEstimate: msg.SizeEstimate,
		From:         headerValue(msg, "From"),
		To:           headerValue(msg, "To"),
		Cc:           headerValue(msg, "Cc"),
		Subject:      headerValue(msg, "Subject"),
		Date:         headerValue(msg, "Date"),
		Body:         extractBody(msg.Payload),
		Attachments:  extractAttachments(msg.Payload),
		IsRead:       !hasLabel(msg, LabelUnread),
		IsStarred:    hasLabel(msg, LabelStarred),
		IsImportant:  hasLabel(msg, LabelImportant),
	}
}

// extractBody pulls the decoded message body from the payload tree,
// preferring text/plain and falling back to text/html.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	var plain, html string
	walkParts(payload, func(part *gmail.MessagePart) {
		if part.Body == nil || part.Body.Data == "" {
			return
		}
		switch part.MimeType {
		case "text/plain":
			if plain == "" {
				plain = part.Body.Data
			}
		case "text/html":
			if html == "" {
				html = part.Body.Data
			}
		}
	})

	data := plain
	if data == "" {
		data = html
	}
	if data == "" {
		return ""
	}
	return decodeBody(data)
}

// decodeBody decodes base64url part data. The provider emits the unpadded
// url alphabet; padded and standard-alphabet payloads are tolerated too.
func decodeBody(data string) string {
	for _, enc := range []*base64.Encoding{base64.RawURLEncoding, base64.URLEncoding, base64.StdEncoding} {
		if decoded, err := enc.DecodeString(data); err == nil {
			return string(decoded)
		}
	}
	return ""
}

// extractAttachments collects attachment metadata from the payload tree.
func extractAttachments(payload *gmail.MessagePart) []AttachmentMeta {
	var attachments []AttachmentMeta
	walkParts(payload, func(part *gmail.MessagePart) {
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			attachments = append(attachments, AttachmentMeta{
				AttachmentID: part.Body.AttachmentId,
				Filename:     part.Filename,
				MimeType:     part.MimeType,
				Size:         part.Body.Size,
			})
		}
	})
	return attachments
}

// walkParts visits part and all nested parts depth-first.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}
	fn(part)
	for _, sub := range part.Parts {
		walkParts(sub, fn)
	}
}

// projectLabel maps a provider label onto the read-only projection.
func projectLabel(l *gmail.Label) Label {
	return Label{ID: l.Id, Name: l.Name, Type: l.Type}
}
