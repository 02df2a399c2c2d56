package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/api/dto"
	"github.com/civicgrid/complaint-service/internal/auth"
	"github.com/civicgrid/complaint-service/internal/service"
	apperrors "github.com/civicgrid/complaint-service/pkg/util"
)

// AdminComplaintsHandler manages the admin triage endpoints.
type AdminComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewAdminComplaintsHandler constructs the handler.
func NewAdminComplaintsHandler(complaints *service.ComplaintService) *AdminComplaintsHandler {
	return &AdminComplaintsHandler{complaints: complaints}
}

// ListComplaints GET /api/admin/complaints.
func (h *AdminComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	input := parseComplaintListQuery(c)
	complaints, pagination, err := h.complaints.ListComplaints(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.ComplaintListResponse{
		Complaints: complaintResponses(complaints),
		Pagination: pagination,
	})
}

// GetComplaint GET /api/admin/complaints/:id.
func (h *AdminComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
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

// UpdateStatus PATCH /api/admin/complaints/:id/status.
func (h *AdminComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	complaint, update, err := h.complaints.UpdateStatus(c.Context(), principal.User, c.Params("id"), req.Status, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": complaintResponse(complaint),
		"update": dto.ComplaintUpdateResponse{
			ID:          update.ID,
			Status:      update.Status,
			Message:     update.Message,
			UpdatedByID: update.UpdatedByID,
			CreatedAt:   update.CreatedAt,
		},
	})
}

// AssignComplaint PATCH /api/admin/complaints/:id/assign.
func (h *AdminComplaintsHandler) AssignComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.AssignComplaint(c.Context(), principal.User, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// DeleteComplaint DELETE /api/admin/complaints/:id.
func (h *AdminComplaintsHandler) DeleteComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.complaints.DeleteComplaint(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
