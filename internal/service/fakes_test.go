package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/repository"
)

// In-memory repository fakes. They mirror the postgres behavior the
// services rely on: pgx.ErrNoRows on misses, generated ids and
// timestamps on insert, and the status+audit pair landing together.

type fakeComplaintRepo struct {
	complaints map[string]*domain.Complaint
	audits     map[string][]domain.ComplaintUpdate
	seq        int
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{
		complaints: map[string]*domain.Complaint{},
		audits:     map[string][]domain.ComplaintUpdate{},
	}
}

func (f *fakeComplaintRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	complaint.ID = f.nextID("complaint")
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	clone := *complaint
	f.complaints[complaint.ID] = &clone
	return nil
}

func (f *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	stored, ok := f.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeComplaintRepo) GetByNumber(_ context.Context, number string) (*domain.Complaint, error) {
	for _, stored := range f.complaints {
		if stored.ComplaintNumber == number {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeComplaintRepo) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for _, stored := range f.complaints {
		if filter.CitizenID != nil && stored.CitizenID != *filter.CitizenID {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (f *fakeComplaintRepo) Count(_ context.Context, filter repository.ComplaintFilter) (int64, error) {
	items, _ := f.List(context.Background(), filter)
	return int64(len(items)), nil
}

func (f *fakeComplaintRepo) UpdateAssignee(_ context.Context, complaintID string, assigneeID *string) error {
	stored, ok := f.complaints[complaintID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.AssigneeID = assigneeID
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeComplaintRepo) UpdateStatusWithAudit(_ context.Context, complaint *domain.Complaint, update *domain.ComplaintUpdate) error {
	stored, ok := f.complaints[complaint.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = complaint.Status
	stored.ResolvedAt = complaint.ResolvedAt
	stored.UpdatedAt = time.Now()
	complaint.UpdatedAt = stored.UpdatedAt

	update.ID = f.nextID("update")
	update.CreatedAt = time.Now()
	f.audits[complaint.ID] = append(f.audits[complaint.ID], *update)
	return nil
}

func (f *fakeComplaintRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := f.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.complaints, id)
	delete(f.audits, id)
	return nil
}

type fakeUpdateRepo struct {
	complaints *fakeComplaintRepo
}

func (f *fakeUpdateRepo) Create(_ context.Context, update *domain.ComplaintUpdate) error {
	update.ID = f.complaints.nextID("update")
	update.CreatedAt = time.Now()
	f.complaints.audits[update.ComplaintID] = append(f.complaints.audits[update.ComplaintID], *update)
	return nil
}

func (f *fakeUpdateRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.ComplaintUpdate, error) {
	return f.complaints.audits[complaintID], nil
}

type fakeCommentRepo struct {
	comments map[string][]domain.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string][]domain.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.seq++
	comment.ID = fmt.Sprintf("comment-%d", f.seq)
	comment.CreatedAt = time.Now()
	f.comments[comment.ComplaintID] = append(f.comments[comment.ComplaintID], *comment)
	return nil
}

func (f *fakeCommentRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Comment, error) {
	return f.comments[complaintID], nil
}

type fakeAttachmentRepo struct {
	attachments map[string][]domain.Attachment
	seq         int
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: map[string][]domain.Attachment{}}
}

func (f *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.Attachment) error {
	f.seq++
	attachment.ID = fmt.Sprintf("attachment-%d", f.seq)
	attachment.CreatedAt = time.Now()
	f.attachments[attachment.ComplaintID] = append(f.attachments[attachment.ComplaintID], *attachment)
	return nil
}

func (f *fakeAttachmentRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Attachment, error) {
	return f.attachments[complaintID], nil
}

type fakeMinistryRepo struct {
	ministries      map[string]*domain.Ministry
	complaintCounts map[string]int64
	seq             int
}

func newFakeMinistryRepo() *fakeMinistryRepo {
	return &fakeMinistryRepo{
		ministries:      map[string]*domain.Ministry{},
		complaintCounts: map[string]int64{},
	}
}

func (f *fakeMinistryRepo) Create(_ context.Context, ministry *domain.Ministry) error {
	f.seq++
	ministry.ID = fmt.Sprintf("ministry-%d", f.seq)
	ministry.CreatedAt = time.Now()
	ministry.UpdatedAt = ministry.CreatedAt
	clone := *ministry
	f.ministries[ministry.ID] = &clone
	return nil
}

func (f *fakeMinistryRepo) Update(_ context.Context, ministry *domain.Ministry) error {
	if _, ok := f.ministries[ministry.ID]; !ok {
		return pgx.ErrNoRows
	}
	ministry.UpdatedAt = time.Now()
	clone := *ministry
	f.ministries[ministry.ID] = &clone
	return nil
}

func (f *fakeMinistryRepo) GetByID(_ context.Context, id string) (*domain.Ministry, error) {
	stored, ok := f.ministries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeMinistryRepo) List(_ context.Context, activeOnly bool) ([]domain.Ministry, error) {
	var result []domain.Ministry
	for _, stored := range f.ministries {
		if activeOnly && !stored.IsActive {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (f *fakeMinistryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.ministries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.ministries, id)
	return nil
}

func (f *fakeMinistryRepo) ComplaintCount(_ context.Context, id string) (int64, error) {
	return f.complaintCounts[id], nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	stored, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, stored := range f.users {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, stored := range f.users {
		if filter.Role != nil && stored.Role != *filter.Role {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (f *fakeUserRepo) Count(_ context.Context, filter repository.UserFilter) (int64, error) {
	items, _ := f.List(context.Background(), filter)
	return int64(len(items)), nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	stored, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Role = role
	return nil
}

func (f *fakeUserRepo) UpdateActive(_ context.Context, id string, active bool) error {
	stored, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.IsActive = active
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}
