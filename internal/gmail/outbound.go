package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// MaxAttachmentSize caps a single outbound attachment at 25MB, matching the
// provider's limit for raw sends.
const MaxAttachmentSize = 25 * 1024 * 1024

// attachmentPart is an attachment read fully into memory before any network
// work happens.
type attachmentPart struct {
	Filename string
	MimeType string
	Data     []byte
}

// loadAttachments reads every referenced file up front. Any unreadable path
// fails the whole send; there are no partial attachment sets.
func loadAttachments(paths []string) ([]attachmentPart, error) {
	parts := make([]attachmentPart, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, NewError(KindInvalidArgument, "attachment %s is not readable: %v", p, err)
		}
		if int64(len(data)) > MaxAttachmentSize {
			return nil, NewError(KindInvalidArgument, "attachment %s exceeds %d bytes", p, MaxAttachmentSize)
		}
		parts = append(parts, attachmentPart{
			Filename: filepath.Base(p),
			MimeType: contentTypeForFile(p),
			Data:     data,
		})
	}
	return parts, nil
}

// contentTypeForFile infers a content type from the file extension, falling
// back to a generic binary type when unrecognized.
func contentTypeForFile(path string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		return "application/octet-stream"
	}
	// Strip charset parameters; the part header carries the bare type.
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// BuildRawMessage constructs the RFC 2822 message for msg and returns it
// base64url-encoded, ready for the Gmail send endpoint. Attachment files are
// read before anything else so a bad path never reaches the network.
func BuildRawMessage(msg *OutboundMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", NewError(KindInvalidArgument, "at least one recipient is required")
	}
	if msg.Subject == "" && msg.Body == "" {
		return "", NewError(KindInvalidArgument, "a subject or body is required")
	}

	attachments, err := loadAttachments(msg.Attachments)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writeHeader := func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	writeHeader("To", strings.Join(msg.To, ", "))
	if len(msg.Cc) > 0 {
		writeHeader("Cc", strings.Join(msg.Cc, ", "))
	}
	if len(msg.Bcc) > 0 {
		writeHeader("Bcc", strings.Join(msg.Bcc, ", "))
	}
	writeHeader("Subject", encodeRFC2047(msg.Subject))
	writeHeader("MIME-Version", "1.0")

	bodyType := `text/plain; charset="UTF-8"`
	if msg.IsHTML {
		bodyType = `text/html; charset="UTF-8"`
	}

	if len(attachments) == 0 {
		writeHeader("Content-Type", bodyType)
		buf.WriteString("\r\n")
		buf.WriteString(msg.Body)
	} else {
		mw := multipart.NewWriter(&buf)
		writeHeader("Content-Type", `multipart/mixed; boundary="`+mw.Boundary()+`"`)
		buf.WriteString("\r\n")

		bodyHeader := textproto.MIMEHeader{}
		bodyHeader.Set("Content-Type", bodyType)
		bodyHeader.Set("Content-Disposition", "inline")
		pw, err := mw.CreatePart(bodyHeader)
		if err != nil {
			return "", NewError(KindUnknown, "building message body part: %v", err)
		}
		if _, err := pw.Write([]byte(msg.Body)); err != nil {
			return "", NewError(KindUnknown, "writing message body: %v", err)
		}

		for _, att := range attachments {
			header := textproto.MIMEHeader{}
			header.Set("Content-Type", fmt.Sprintf("%s; name=%q", att.MimeType, att.Filename))
			header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
			header.Set("Content-Transfer-Encoding", "base64")
			pw, err := mw.CreatePart(header)
			if err != nil {
				return "", NewError(KindUnknown, "building attachment part: %v", err)
			}
			if _, err := pw.Write([]byte(base64.StdEncoding.EncodeToString(att.Data))); err != nil {
				return "", NewError(KindUnknown, "writing attachment %s: %v", att.Filename, err)
			}
		}

		if err := mw.Close(); err != nil {
			return "", NewError(KindUnknown, "finalizing message: %v", err)
		}
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// encodeRFC2047 encodes a header value per RFC 2047 when it carries
// non-ASCII characters; plain ASCII passes through untouched.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
