package http

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/repository"
)

// Compact in-memory repositories backing the route tests. They return
// pgx.ErrNoRows on misses like the postgres implementations do.

type memSeq struct{ n int }

func (s *memSeq) next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

type memComplaintRepo struct {
	seq        *memSeq
	complaints map[string]*domain.Complaint
	audits     map[string][]domain.ComplaintUpdate
}

func newMemComplaintRepo(seq *memSeq) *memComplaintRepo {
	return &memComplaintRepo{
		seq:        seq,
		complaints: map[string]*domain.Complaint{},
		audits:     map[string][]domain.ComplaintUpdate{},
	}
}

func (m *memComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	complaint.ID = m.seq.next("complaint")
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	clone := *complaint
	m.complaints[complaint.ID] = &clone
	return nil
}

func (m *memComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	stored, ok := m.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (m *memComplaintRepo) GetByNumber(_ context.Context, number string) (*domain.Complaint, error) {
	for _, stored := range m.complaints {
		if stored.ComplaintNumber == number {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memComplaintRepo) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for _, stored := range m.complaints {
		if filter.CitizenID != nil && stored.CitizenID != *filter.CitizenID {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (m *memComplaintRepo) Count(ctx context.Context, filter repository.ComplaintFilter) (int64, error) {
	items, _ := m.List(ctx, filter)
	return int64(len(items)), nil
}

func (m *memComplaintRepo) UpdateAssignee(_ context.Context, complaintID string, assigneeID *string) error {
	stored, ok := m.complaints[complaintID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.AssigneeID = assigneeID
	return nil
}

func (m *memComplaintRepo) UpdateStatusWithAudit(_ context.Context, complaint *domain.Complaint, update *domain.ComplaintUpdate) error {
	stored, ok := m.complaints[complaint.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = complaint.Status
	stored.ResolvedAt = complaint.ResolvedAt
	stored.UpdatedAt = time.Now()
	update.ID = m.seq.next("update")
	update.CreatedAt = time.Now()
	m.audits[complaint.ID] = append(m.audits[complaint.ID], *update)
	return nil
}

func (m *memComplaintRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := m.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.complaints, id)
	delete(m.audits, id)
	return nil
}

type memUpdateRepo struct {
	complaints *memComplaintRepo
}

func (m *memUpdateRepo) Create(_ context.Context, update *domain.ComplaintUpdate) error {
	update.ID = m.complaints.seq.next("update")
	update.CreatedAt = time.Now()
	m.complaints.audits[update.ComplaintID] = append(m.complaints.audits[update.ComplaintID], *update)
	return nil
}

func (m *memUpdateRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.ComplaintUpdate, error) {
	return m.complaints.audits[complaintID], nil
}

type memCommentRepo struct {
	seq      *memSeq
	comments map[string][]domain.Comment
}

func (m *memCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = m.seq.next("comment")
	comment.CreatedAt = time.Now()
	m.comments[comment.ComplaintID] = append(m.comments[comment.ComplaintID], *comment)
	return nil
}

func (m *memCommentRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Comment, error) {
	return m.comments[complaintID], nil
}

type memAttachmentRepo struct {
	seq         *memSeq
	attachments map[string][]domain.Attachment
}

func (m *memAttachmentRepo) Create(_ context.Context, attachment *domain.Attachment) error {
	attachment.ID = m.seq.next("attachment")
	attachment.CreatedAt = time.Now()
	m.attachments[attachment.ComplaintID] = append(m.attachments[attachment.ComplaintID], *attachment)
	return nil
}

func (m *memAttachmentRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Attachment, error) {
	return m.attachments[complaintID], nil
}

type memMinistryRepo struct {
	seq        *memSeq
	ministries map[string]*domain.Ministry
	complaints *memComplaintRepo
}

func (m *memMinistryRepo) Create(_ context.Context, ministry *domain.Ministry) error {
	ministry.ID = m.seq.next("ministry")
	ministry.CreatedAt = time.Now()
	ministry.UpdatedAt = ministry.CreatedAt
	clone := *ministry
	m.ministries[ministry.ID] = &clone
	return nil
}

func (m *memMinistryRepo) Update(_ context.Context, ministry *domain.Ministry) error {
	if _, ok := m.ministries[ministry.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *ministry
	m.ministries[ministry.ID] = &clone
	return nil
}

func (m *memMinistryRepo) GetByID(_ context.Context, id string) (*domain.Ministry, error) {
	stored, ok := m.ministries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (m *memMinistryRepo) List(_ context.Context, activeOnly bool) ([]domain.Ministry, error) {
	var result []domain.Ministry
	for _, stored := range m.ministries {
		if activeOnly && !stored.IsActive {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (m *memMinistryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.ministries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.ministries, id)
	return nil
}

func (m *memMinistryRepo) ComplaintCount(_ context.Context, id string) (int64, error) {
	var count int64
	for _, complaint := range m.complaints.complaints {
		if complaint.MinistryID == id {
			count++
		}
	}
	return count, nil
}

type memUserRepo struct {
	seq   *memSeq
	users map[string]*domain.User
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = m.seq.next("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	stored, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, stored := range m.users {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, stored := range m.users {
		if filter.Role != nil && stored.Role != *filter.Role {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (m *memUserRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	items, _ := m.List(ctx, filter)
	return int64(len(items)), nil
}

func (m *memUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	stored, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Role = role
	return nil
}

func (m *memUserRepo) UpdateActive(_ context.Context, id string, active bool) error {
	stored, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.IsActive = active
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}
