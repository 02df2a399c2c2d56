package events

import (
	"time"

	"github.com/civicgrid/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintAssigned      EventType = "complaint_assigned"
	EventComplaintCommentAdded  EventType = "complaint_comment_added"
	EventComplaintDeleted       EventType = "complaint_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	ActorID     string      `json:"actor_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	ComplaintNumber string                   `json:"complaint_number"`
	MinistryID      string                   `json:"ministry_id"`
	Priority        domain.ComplaintPriority `json:"priority"`
	Title           string                   `json:"title"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
	Message   string                 `json:"message,omitempty"`
}

// ComplaintAssignedPayload payload.
type ComplaintAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// ComplaintCommentAddedPayload payload.
type ComplaintCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}

// ComplaintDeletedPayload payload.
type ComplaintDeletedPayload struct {
	ComplaintNumber string `json:"complaint_number"`
}
