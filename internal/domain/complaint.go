package domain

import (
	"strings"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusSubmitted   ComplaintStatus = "SUBMITTED"
	ComplaintStatusUnderReview ComplaintStatus = "UNDER_REVIEW"
	ComplaintStatusInProgress  ComplaintStatus = "IN_PROGRESS"
	ComplaintStatusResolved    ComplaintStatus = "RESOLVED"
	ComplaintStatusRejected    ComplaintStatus = "REJECTED"
	ComplaintStatusClosed      ComplaintStatus = "CLOSED"
)

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "LOW"
	ComplaintPriorityMedium ComplaintPriority = "MEDIUM"
	ComplaintPriorityHigh   ComplaintPriority = "HIGH"
	ComplaintPriorityUrgent ComplaintPriority = "URGENT"
)

var complaintStatuses = map[ComplaintStatus]struct{}{
	ComplaintStatusSubmitted:   {},
	ComplaintStatusUnderReview: {},
	ComplaintStatusInProgress:  {},
	ComplaintStatusResolved:    {},
	ComplaintStatusRejected:    {},
	ComplaintStatusClosed:      {},
}

var complaintPriorities = map[ComplaintPriority]struct{}{
	ComplaintPriorityLow:    {},
	ComplaintPriorityMedium: {},
	ComplaintPriorityHigh:   {},
	ComplaintPriorityUrgent: {},
}

// ParseComplaintStatus validates a raw status value. This is the single
// gate between client input and the status column.
func ParseComplaintStatus(raw string) (ComplaintStatus, bool) {
	status := ComplaintStatus(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := complaintStatuses[status]
	return status, ok
}

// ParseComplaintPriority validates a raw priority value.
func ParseComplaintPriority(raw string) (ComplaintPriority, bool) {
	priority := ComplaintPriority(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := complaintPriorities[priority]
	return priority, ok
}

// DefaultUpdateMessage builds the audit message used when a status change
// carries no explicit message, e.g. IN_PROGRESS -> "Status updated to IN PROGRESS".
func DefaultUpdateMessage(status ComplaintStatus) string {
	return "Status updated to " + strings.ReplaceAll(string(status), "_", " ")
}

// Complaint is the aggregate for citizen-filed civic issues.
type Complaint struct {
	ID              string
	ComplaintNumber string
	CitizenID       string
	MinistryID      string
	AssigneeID      *string
	Title           string
	Description     string
	Location        string
	Latitude        *float64
	Longitude       *float64
	Status          ComplaintStatus
	Priority        ComplaintPriority
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ResolvedAt      *time.Time
}
