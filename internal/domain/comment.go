package domain

import "time"

// Comment is a discussion entry on a complaint. Deleted together with the
// complaint; otherwise owned by its author.
type Comment struct {
	ID          string
	ComplaintID string
	AuthorID    string
	Body        string
	CreatedAt   time.Time
}

// Attachment stores metadata for a file uploaded against a complaint.
type Attachment struct {
	ID          string
	ComplaintID string
	StorageKey  string
	FileName    string
	MimeType    string
	SizeBytes   int64
	URL         string
	CreatedAt   time.Time
}
