package models

import (
	"time"

	"github.com/edulog/bookletflow/internal/markup"
)

// WorkflowStatus is the review state of a logged activity.
type WorkflowStatus string

const (
	StatusPending  WorkflowStatus = "pending"
	StatusApproved WorkflowStatus = "approved"
	StatusRejected WorkflowStatus = "rejected"
)

// BadgeColor keys the status badge rendering. Unknown statuses share the
// pending colour rather than failing the render.
func (s WorkflowStatus) BadgeColor() string {
	switch s {
	case StatusApproved:
		return "#2e7d32"
	case StatusRejected:
		return "#c62828"
	default:
		return "#f9a825"
	}
}

// Attachment is deep-link metadata for a file logged with an activity. The
// booklet never fetches the binary; it lists the link plus metadata only.
type Attachment struct {
	URL         string
	ContentType string
	Size        int64
}

// Label is the display name for the attachment: last URL path segment,
// percent-decoded, degrading to the raw URL when decoding fails.
func (a Attachment) Label() string {
	return markup.AttachmentLabel(a.URL)
}

// DisplaySize renders the byte size as "N.N KB".
func (a Attachment) DisplaySize() string {
	return markup.FormatSizeKB(a.Size)
}

// ActivityRecord is one normalized activity/log entry. SubjectID and
// SubjectName are only meaningful in roster mode, where the activity
// section groups entries per subject.
type ActivityRecord struct {
	ID          string
	SubjectID   string
	SubjectName markup.SafeText
	Date        time.Time
	Kind        markup.SafeText
	Title       markup.SafeText
	Description markup.SafeText
	Status      WorkflowStatus
	Attachments []Attachment
}
