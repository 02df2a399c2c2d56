package handlers

import (
	"github.com/civicgrid/complaint-service/internal/api/dto"
	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/service"
)

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:              complaint.ID,
		ComplaintNumber: complaint.ComplaintNumber,
		CitizenID:       complaint.CitizenID,
		MinistryID:      complaint.MinistryID,
		AssigneeID:      complaint.AssigneeID,
		Title:           complaint.Title,
		Description:     complaint.Description,
		Location:        complaint.Location,
		Latitude:        complaint.Latitude,
		Longitude:       complaint.Longitude,
		Status:          complaint.Status,
		Priority:        complaint.Priority,
		CreatedAt:       complaint.CreatedAt,
		UpdatedAt:       complaint.UpdatedAt,
		ResolvedAt:      complaint.ResolvedAt,
	}
}

func complaintResponses(complaints []domain.Complaint) []dto.ComplaintResponse {
	out := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, complaintResponse(&complaints[i]))
	}
	return out
}

func complaintDetailResponse(detail *service.ComplaintDetail) dto.ComplaintDetailResponse {
	updates := make([]dto.ComplaintUpdateResponse, 0, len(detail.Updates))
	for _, update := range detail.Updates {
		updates = append(updates, dto.ComplaintUpdateResponse{
			ID:          update.ID,
			Status:      update.Status,
			Message:     update.Message,
			UpdatedByID: update.UpdatedByID,
			CreatedAt:   update.CreatedAt,
		})
	}
	comments := make([]dto.CommentResponse, 0, len(detail.Comments))
	for _, comment := range detail.Comments {
		comments = append(comments, dto.CommentResponse{
			ID:        comment.ID,
			AuthorID:  comment.AuthorID,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt,
		})
	}
	attachments := make([]dto.AttachmentResponse, 0, len(detail.Attachments))
	for _, attachment := range detail.Attachments {
		attachments = append(attachments, attachmentResponse(&attachment))
	}
	return dto.ComplaintDetailResponse{
		ComplaintResponse: complaintResponse(detail.Complaint),
		Updates:           updates,
		Comments:          comments,
		Attachments:       attachments,
	}
}

func attachmentResponse(attachment *domain.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:        attachment.ID,
		FileName:  attachment.FileName,
		MimeType:  attachment.MimeType,
		SizeBytes: attachment.SizeBytes,
		URL:       attachment.URL,
		CreatedAt: attachment.CreatedAt,
	}
}

func ministryResponse(ministry *domain.Ministry) dto.MinistryResponse {
	return dto.MinistryResponse{
		ID:          ministry.ID,
		Name:        ministry.Name,
		Description: ministry.Description,
		Icon:        ministry.Icon,
		Color:       ministry.Color,
		IsActive:    ministry.IsActive,
		CreatedAt:   ministry.CreatedAt,
		UpdatedAt:   ministry.UpdatedAt,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		IsActive:  user.IsActive,
		IsPremium: user.IsPremium,
		CreatedAt: user.CreatedAt,
	}
}
