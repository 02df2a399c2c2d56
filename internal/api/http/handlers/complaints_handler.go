package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/api/dto"
	"github.com/civicgrid/complaint-service/internal/auth"
	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/service"
	apperrors "github.com/civicgrid/complaint-service/pkg/util"
)

// ComplaintsHandler manages the citizen-facing complaint endpoints.
type ComplaintsHandler struct {
	complaints  *service.ComplaintService
	attachments *service.AttachmentService
}

// NewComplaintsHandler constructs the handler.
func NewComplaintsHandler(complaints *service.ComplaintService, attachments *service.AttachmentService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, attachments: attachments}
}

// CreateComplaint POST /api/complaints.
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.MinistryID == "" || req.Title == "" || req.Description == "" {
		return apperrors.NewValidationError("ministry_id, title, description required", nil)
	}

	input := service.ComplaintCreateInput{
		MinistryID:  req.MinistryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.Priority != "" {
		priority, ok := domain.ParseComplaintPriority(req.Priority)
		if !ok {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
		}
		input.Priority = priority
	}

	complaint, err := h.complaints.CreateComplaint(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// ListComplaints GET /api/complaints. Scoped to the caller's own filings.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input := parseComplaintListQuery(c)
	citizenID := principal.User.ID
	input.CitizenID = &citizenID

	complaints, pagination, err := h.complaints.ListComplaints(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.ComplaintListResponse{
		Complaints: complaintResponses(complaints),
		Pagination: pagination,
	})
}

// GetComplaint GET /api/complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	detail, err := h.complaints.GetComplaint(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintDetailResponse(detail)})
}

// AddComment POST /api/complaints/:id/comments.
func (h *ComplaintsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.complaints.AddComment(c.Context(), principal.User, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}})
}

// UploadAttachment POST /api/complaints/:id/attachments.
func (h *ComplaintsHandler) UploadAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	attachment, err := h.attachments.Upload(c.Context(), principal.User, c.Params("id"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": attachmentResponse(attachment)})
}
