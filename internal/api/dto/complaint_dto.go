package dto

import (
	"time"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/pkg/util"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	MinistryID  string   `json:"ministry_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Priority    string   `json:"priority"`
}

// UpdateStatusRequest payload for status transitions.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AssignComplaintRequest payload. A null assignee clears the assignment.
type AssignComplaintRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// ComplaintResponse is the wire shape of a complaint.
type ComplaintResponse struct {
	ID              string                   `json:"id"`
	ComplaintNumber string                   `json:"complaint_number"`
	CitizenID       string                   `json:"citizen_id"`
	MinistryID      string                   `json:"ministry_id"`
	AssigneeID      *string                  `json:"assignee_id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Location        string                   `json:"location"`
	Latitude        *float64                 `json:"latitude"`
	Longitude       *float64                 `json:"longitude"`
	Status          domain.ComplaintStatus   `json:"status"`
	Priority        domain.ComplaintPriority `json:"priority"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	ResolvedAt      *time.Time               `json:"resolved_at"`
}

// ComplaintUpdateResponse is one audit trail entry.
type ComplaintUpdateResponse struct {
	ID          string                 `json:"id"`
	Status      domain.ComplaintStatus `json:"status"`
	Message     string                 `json:"message"`
	UpdatedByID string                 `json:"updated_by_id"`
	CreatedAt   time.Time              `json:"created_at"`
}

// CommentResponse is one discussion entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentResponse is uploaded file metadata.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// ComplaintDetailResponse provides a complaint with its relations.
type ComplaintDetailResponse struct {
	ComplaintResponse
	Updates     []ComplaintUpdateResponse `json:"updates"`
	Comments    []CommentResponse         `json:"comments"`
	Attachments []AttachmentResponse      `json:"attachments"`
}

// ComplaintListResponse is the paginated listing envelope.
type ComplaintListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Pagination util.Pagination     `json:"pagination"`
}
