package domain

import "time"

// ComplaintUpdate is an immutable audit entry recorded for every status
// mutation. Rows are only ever inserted.
type ComplaintUpdate struct {
	ID          string
	ComplaintID string
	Status      ComplaintStatus
	Message     string
	UpdatedByID string
	CreatedAt   time.Time
}
