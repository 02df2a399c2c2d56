package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/pkg/util"
)

type complaintFixture struct {
	service    *ComplaintService
	complaints *fakeComplaintRepo
	ministries *fakeMinistryRepo
	users      *fakeUserRepo
	comments   *fakeCommentRepo
}

func newComplaintFixture() *complaintFixture {
	complaints := newFakeComplaintRepo()
	ministries := newFakeMinistryRepo()
	users := newFakeUserRepo()
	comments := newFakeCommentRepo()

	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  complaints,
		UpdateRepo:     &fakeUpdateRepo{complaints: complaints},
		CommentRepo:    comments,
		AttachmentRepo: newFakeAttachmentRepo(),
		MinistryRepo:   ministries,
		UserRepo:       users,
	})
	return &complaintFixture{
		service:    svc,
		complaints: complaints,
		ministries: ministries,
		users:      users,
		comments:   comments,
	}
}

func (f *complaintFixture) citizen(t *testing.T) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Citizen", Email: "citizen@example.com", Role: domain.RoleCitizen, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *complaintFixture) admin(t *testing.T) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *complaintFixture) ministry(t *testing.T, active bool) *domain.Ministry {
	t.Helper()
	ministry := &domain.Ministry{Name: "Public Works", IsActive: active}
	require.NoError(t, f.ministries.Create(context.Background(), ministry))
	return ministry
}

func (f *complaintFixture) file(t *testing.T, citizenID, ministryID string) *domain.Complaint {
	t.Helper()
	complaint, err := f.service.CreateComplaint(context.Background(), citizenID, ComplaintCreateInput{
		MinistryID:  ministryID,
		Title:       "Broken streetlight",
		Description: "The light on 5th has been out for a week",
		Location:    "5th Ave",
	})
	require.NoError(t, err)
	return complaint
}

func TestCreateComplaint(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	ministry := f.ministry(t, true)

	complaint := f.file(t, citizen.ID, ministry.ID)

	assert.Equal(t, domain.ComplaintStatusSubmitted, complaint.Status)
	assert.Equal(t, domain.ComplaintPriorityMedium, complaint.Priority)
	assert.True(t, strings.HasPrefix(complaint.ComplaintNumber, "CMP-"))
	assert.Nil(t, complaint.ResolvedAt)
	assert.Empty(t, f.complaints.audits[complaint.ID], "creation must not write an audit record")
}

func TestCreateComplaintInactiveMinistry(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	ministry := f.ministry(t, false)

	_, err := f.service.CreateComplaint(context.Background(), citizen.ID, ComplaintCreateInput{
		MinistryID:  ministry.ID,
		Title:       "t",
		Description: "d",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestCreateComplaintUnknownMinistry(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)

	_, err := f.service.CreateComplaint(context.Background(), citizen.ID, ComplaintCreateInput{
		MinistryID: "missing",
		Title:      "t",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
}

func TestUpdateStatusWritesSingleAuditRecord(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	admin := f.admin(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	updated, audit, err := f.service.UpdateStatus(context.Background(), admin, complaint.ID, "UNDER_REVIEW", "Assigned to inspection team")
	require.NoError(t, err)

	assert.Equal(t, domain.ComplaintStatusUnderReview, updated.Status)
	assert.Equal(t, "Assigned to inspection team", audit.Message)
	assert.Equal(t, admin.ID, audit.UpdatedByID)

	trail := f.complaints.audits[complaint.ID]
	require.Len(t, trail, 1)
	assert.Equal(t, domain.ComplaintStatusUnderReview, trail[0].Status)
}

func TestUpdateStatusDefaultMessage(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	admin := f.admin(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	_, audit, err := f.service.UpdateStatus(context.Background(), admin, complaint.ID, "IN_PROGRESS", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Status updated to IN PROGRESS", audit.Message)
}

func TestUpdateStatusResolvedLatchesResolvedAt(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	admin := f.admin(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	resolved, _, err := f.service.UpdateStatus(context.Background(), admin, complaint.ID, "RESOLVED", "")
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	firstResolvedAt := *resolved.ResolvedAt

	// Later transitions keep the original resolution timestamp.
	closed, _, err := f.service.UpdateStatus(context.Background(), admin, complaint.ID, "CLOSED", "")
	require.NoError(t, err)
	require.NotNil(t, closed.ResolvedAt)
	assert.Equal(t, firstResolvedAt, *closed.ResolvedAt)

	reresolved, _, err := f.service.UpdateStatus(context.Background(), admin, complaint.ID, "RESOLVED", "")
	require.NoError(t, err)
	assert.Equal(t, firstResolvedAt, *reresolved.ResolvedAt)

	require.Len(t, f.complaints.audits[complaint.ID], 3)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	admin := f.admin(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	_, _, err := f.service.UpdateStatus(context.Background(), admin, complaint.ID, "DONE", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	// Nothing persisted: status untouched, no audit row.
	stored, err := f.complaints.GetByID(context.Background(), complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusSubmitted, stored.Status)
	assert.Empty(t, f.complaints.audits[complaint.ID])
}

func TestUpdateStatusUnknownComplaint(t *testing.T) {
	f := newComplaintFixture()
	admin := f.admin(t)

	_, _, err := f.service.UpdateStatus(context.Background(), admin, "missing", "CLOSED", "")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
}

func TestGetComplaintOwnership(t *testing.T) {
	f := newComplaintFixture()
	owner := f.citizen(t)
	other := &domain.User{Name: "Other", Email: "other@example.com", Role: domain.RoleCitizen, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), other))
	admin := f.admin(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, owner.ID, ministry.ID)

	detail, err := f.service.GetComplaint(context.Background(), owner, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, complaint.ID, detail.Complaint.ID)

	_, err = f.service.GetComplaint(context.Background(), other, complaint.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", util.ToDomainError(err).Code)

	_, err = f.service.GetComplaint(context.Background(), admin, complaint.ID)
	assert.NoError(t, err)
}

func TestAssignComplaint(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	admin := f.admin(t)
	staff := &domain.User{Name: "Staff", Email: "staff@example.com", Role: domain.RoleMinistryStaff, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), staff))
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	assigned, err := f.service.AssignComplaint(context.Background(), admin, complaint.ID, &staff.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeID)
	assert.Equal(t, staff.ID, *assigned.AssigneeID)

	// Citizens cannot be assignees.
	_, err = f.service.AssignComplaint(context.Background(), admin, complaint.ID, &citizen.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	// Clearing the assignee.
	cleared, err := f.service.AssignComplaint(context.Background(), admin, complaint.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.AssigneeID)
}

func TestAddComment(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	comment, err := f.service.AddComment(context.Background(), citizen, complaint.ID, "  any update?  ")
	require.NoError(t, err)
	assert.Equal(t, "any update?", comment.Body)

	_, err = f.service.AddComment(context.Background(), citizen, complaint.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestDeleteComplaint(t *testing.T) {
	f := newComplaintFixture()
	citizen := f.citizen(t)
	admin := f.admin(t)
	ministry := f.ministry(t, true)
	complaint := f.file(t, citizen.ID, ministry.ID)

	require.NoError(t, f.service.DeleteComplaint(context.Background(), admin, complaint.ID))

	_, err := f.complaints.GetByID(context.Background(), complaint.ID)
	assert.Error(t, err)

	err = f.service.DeleteComplaint(context.Background(), admin, complaint.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
}

func TestListComplaintsScopedToCitizen(t *testing.T) {
	f := newComplaintFixture()
	owner := f.citizen(t)
	other := &domain.User{Name: "Other", Email: "o@example.com", Role: domain.RoleCitizen, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), other))
	ministry := f.ministry(t, true)

	f.file(t, owner.ID, ministry.ID)
	f.file(t, owner.ID, ministry.ID)
	f.file(t, other.ID, ministry.ID)

	items, pagination, err := f.service.ListComplaints(context.Background(), ComplaintListInput{
		CitizenID: &owner.ID,
		Page:      util.NormalizePage(1, 10),
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), pagination.Total)
	assert.Equal(t, 1, pagination.Pages)
}
