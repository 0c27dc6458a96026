package gmail

const (
	// DefaultMaxResults is used when a caller does not cap a listing.
	DefaultMaxResults = 50

	// MaxResultsCeiling is the hard cap for a single listing; larger
	// requests are clamped, never rejected.
	MaxResultsCeiling = 500

	// maxPageSize is the largest page the Gmail list endpoint serves.
	maxPageSize = 100
)

// MessageQuery is a normalized listing/search request.
type MessageQuery struct {
	// Query is the Gmail search expression. When set, structured filters
	// were already folded in (or it was supplied raw and takes precedence).
	Query string

	// MaxResults caps the number of accumulated results. Normalize clamps
	// it into [1, MaxResultsCeiling].
	MaxResults int64

	// LabelIDs restricts the listing to the given label ids.
	LabelIDs []string
}

// Normalize fills defaults and clamps the result cap to the ceiling.
func (q MessageQuery) Normalize() MessageQuery {
	if q.MaxResults <= 0 {
		q.MaxResults = DefaultMaxResults
	}
	if q.MaxResults > MaxResultsCeiling {
		q.MaxResults = MaxResultsCeiling
	}
	return q
}

// OutboundMessage describes an email to be sent. Attachments are local file
// paths; every path must be readable at construction time or the whole send
// fails before any network call.
type OutboundMessage struct {
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	IsHTML      bool
	Attachments []string
}

// MessageSummary is the lightweight projection returned by listings.
type MessageSummary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"thread_id"`
	LabelIDs []string `json:"label_ids,omitempty"`
	Snippet  string   `json:"snippet,omitempty"`
}

// AttachmentMeta describes an attachment on a received message.
type AttachmentMeta struct {
	AttachmentID string `json:"attachment_id"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// MessageDetail is the full projection of a single message. Read-only; the
// provider owns the underlying state.
type MessageDetail struct {
	ID           string           `json:"id"`
	ThreadID     string           `json:"thread_id"`
	LabelIDs     []string         `json:"label_ids,omitempty"`
	Snippet      string           `json:"snippet,omitempty"`
	SizeEstimate int64            `json:"size_estimate,omitempty"`
	From         string           `json:"from"`
	To           string           `json:"to"`
	Cc           string           `json:"cc,omitempty"`
	Subject      string           `json:"subject"`
	Date         string           `json:"date"`
	Body         string           `json:"body,omitempty"`
	Attachments  []AttachmentMeta `json:"attachments,omitempty"`
	IsRead       bool             `json:"is_read"`
	IsStarred    bool             `json:"is_starred"`
	IsImportant  bool             `json:"is_important"`
}

// Label is a read-only projection of a Gmail label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SendResult reports the outcome of a successful send.
type SendResult struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id,omitempty"`
}

// Well-known system label ids used by the semantic tools. Fixed sets keep
// mark_as_read/star_message deterministic regardless of the account's own
// label catalog.
const (
	LabelUnread    = "UNREAD"
	LabelStarred   = "STARRED"
	LabelImportant = "IMPORTANT"
	LabelInbox     = "INBOX"
)
