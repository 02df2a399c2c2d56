package domain

import "time"

// Ministry represents an administrative department that owns resolution
// of complaints in its domain.
type Ministry struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
