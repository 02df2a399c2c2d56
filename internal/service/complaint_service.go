package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/events"
	"github.com/civicgrid/complaint-service/internal/repository"
	"github.com/civicgrid/complaint-service/pkg/util"
)

// ComplaintService coordinates the complaint lifecycle. It is the sole
// writer of status, resolvedAt, and the audit trail.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	updates    repository.ComplaintUpdateRepository
	comments   repository.CommentRepository
	attaches   repository.AttachmentRepository
	ministries repository.MinistryRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles repositories for the service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	UpdateRepo     repository.ComplaintUpdateRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
	MinistryRepo   repository.MinistryRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	MinistryID  string
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Priority    domain.ComplaintPriority
}

// ComplaintListInput describes listing filters.
type ComplaintListInput struct {
	CitizenID  *string
	MinistryID *string
	Status     *domain.ComplaintStatus
	Priority   *domain.ComplaintPriority
	Search     *string
	Page       util.PageRequest
}

// ComplaintDetail aggregates a complaint with its relations.
type ComplaintDetail struct {
	Complaint   *domain.Complaint
	Updates     []domain.ComplaintUpdate
	Comments    []domain.Comment
	Attachments []domain.Attachment
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		updates:    deps.UpdateRepo,
		comments:   deps.CommentRepo,
		attaches:   deps.AttachmentRepo,
		ministries: deps.MinistryRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateComplaint files a new complaint in SUBMITTED state.
func (s *ComplaintService) CreateComplaint(ctx context.Context, citizenID string, input ComplaintCreateInput) (*domain.Complaint, error) {
	ministry, err := s.ministries.GetByID(ctx, input.MinistryID)
	if err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("ministry", nil)
		}
		return nil, err
	}
	if !ministry.IsActive {
		return nil, util.NewValidationError("ministry is not accepting complaints", nil)
	}

	complaint := &domain.Complaint{
		ComplaintNumber: generateComplaintNumber(),
		CitizenID:       citizenID,
		MinistryID:      input.MinistryID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Location:        strings.TrimSpace(input.Location),
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Status:          domain.ComplaintStatusSubmitted,
		Priority:        input.Priority,
	}
	if complaint.Priority == "" {
		complaint.Priority = domain.ComplaintPriorityMedium
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		ActorID:     citizenID,
		Payload: events.ComplaintCreatedPayload{
			ComplaintNumber: complaint.ComplaintNumber,
			MinistryID:      complaint.MinistryID,
			Priority:        complaint.Priority,
			Title:           complaint.Title,
		},
	})
	return complaint, nil
}

// ListComplaints returns one page of complaints plus page metadata.
func (s *ComplaintService) ListComplaints(ctx context.Context, input ComplaintListInput) ([]domain.Complaint, util.Pagination, error) {
	filter := repository.ComplaintFilter{
		CitizenID:  input.CitizenID,
		MinistryID: input.MinistryID,
		SearchTerm: input.Search,
		Limit:      input.Page.Limit,
		Offset:     input.Page.Offset(),
	}
	if input.Status != nil {
		filter.Statuses = []domain.ComplaintStatus{*input.Status}
	}
	if input.Priority != nil {
		filter.Priorities = []domain.ComplaintPriority{*input.Priority}
	}

	total, err := s.complaints.Count(ctx, filter)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	items, err := s.complaints.List(ctx, filter)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	if items == nil {
		items = []domain.Complaint{}
	}
	return items, util.NewPagination(input.Page, total), nil
}

// GetComplaint fetches a complaint with relations, enforcing that
// citizens only see their own.
func (s *ComplaintService) GetComplaint(ctx context.Context, actor *domain.User, complaintID string) (*ComplaintDetail, error) {
	complaint, err := s.getComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !canAccessComplaint(actor, complaint) {
		return nil, util.NewForbidden("access denied")
	}

	updates, err := s.updates.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attaches.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}

	return &ComplaintDetail{
		Complaint:   complaint,
		Updates:     updates,
		Comments:    comments,
		Attachments: attachments,
	}, nil
}

// UpdateStatus transitions a complaint and appends exactly one audit
// record, both inside one transaction. RESOLVED latches resolvedAt; later
// transitions never clear it.
func (s *ComplaintService) UpdateStatus(ctx context.Context, actor *domain.User, complaintID, rawStatus, message string) (*domain.Complaint, *domain.ComplaintUpdate, error) {
	status, ok := domain.ParseComplaintStatus(rawStatus)
	if !ok {
		return nil, nil, util.NewValidationError("invalid status", map[string]any{"status": rawStatus})
	}

	complaint, err := s.getComplaint(ctx, complaintID)
	if err != nil {
		return nil, nil, err
	}

	oldStatus := complaint.Status
	complaint.Status = status
	if status == domain.ComplaintStatusResolved && complaint.ResolvedAt == nil {
		now := time.Now()
		complaint.ResolvedAt = &now
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = domain.DefaultUpdateMessage(status)
	}
	update := &domain.ComplaintUpdate{
		ComplaintID: complaint.ID,
		Status:      status,
		Message:     msg,
		UpdatedByID: actor.ID,
	}

	if err := s.complaints.UpdateStatusWithAudit(ctx, complaint, update); err != nil {
		return nil, nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		ActorID:     actor.ID,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
			Message:   msg,
		},
	})
	return complaint, update, nil
}

// AssignComplaint sets or clears the staff member working a complaint.
func (s *ComplaintService) AssignComplaint(ctx context.Context, actor *domain.User, complaintID string, assigneeID *string) (*domain.Complaint, error) {
	complaint, err := s.getComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if assigneeID != nil {
		assignee, err := s.users.GetByID(ctx, *assigneeID)
		if err != nil {
			if util.IsNotFound(err) {
				return nil, util.NewNotFound("user", nil)
			}
			return nil, err
		}
		if assignee.Role == domain.RoleCitizen {
			return nil, util.NewValidationError("assignee must be staff", nil)
		}
	}

	if err := s.complaints.UpdateAssignee(ctx, complaint.ID, assigneeID); err != nil {
		return nil, err
	}
	complaint.AssigneeID = assigneeID

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintAssigned,
		ComplaintID: complaint.ID,
		ActorID:     actor.ID,
		Payload:     events.ComplaintAssignedPayload{AssigneeID: assigneeID},
	})
	return complaint, nil
}

// AddComment appends a comment; allowed for the owner and for staff.
func (s *ComplaintService) AddComment(ctx context.Context, actor *domain.User, complaintID, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.NewValidationError("body required", nil)
	}
	complaint, err := s.getComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !canAccessComplaint(actor, complaint) {
		return nil, util.NewForbidden("access denied")
	}

	comment := &domain.Comment{
		ComplaintID: complaint.ID,
		AuthorID:    actor.ID,
		Body:        strings.TrimSpace(body),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCommentAdded,
		ComplaintID: complaint.ID,
		ActorID:     actor.ID,
		Payload: events.ComplaintCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    comment.AuthorID,
			BodyPreview: bodyPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

// DeleteComplaint removes a complaint and everything it owns.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, actor *domain.User, complaintID string) error {
	complaint, err := s.getComplaint(ctx, complaintID)
	if err != nil {
		return err
	}
	if err := s.complaints.DeleteCascade(ctx, complaint.ID); err != nil {
		if util.IsNotFound(err) {
			return util.NewNotFound("complaint", nil)
		}
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintDeleted,
		ComplaintID: complaint.ID,
		ActorID:     actor.ID,
		Payload:     events.ComplaintDeletedPayload{ComplaintNumber: complaint.ComplaintNumber},
	})
	return nil
}

func (s *ComplaintService) getComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	return complaint, nil
}

func canAccessComplaint(actor *domain.User, complaint *domain.Complaint) bool {
	if actor == nil {
		return false
	}
	if actor.Role != domain.RoleCitizen {
		return true
	}
	return complaint.CitizenID == actor.ID
}

func generateComplaintNumber() string {
	return "CMP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func bodyPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
