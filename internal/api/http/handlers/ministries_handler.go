package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/api/dto"
	"github.com/civicgrid/complaint-service/internal/service"
	apperrors "github.com/civicgrid/complaint-service/pkg/util"
)

// MinistriesHandler manages ministry endpoints.
type MinistriesHandler struct {
	ministries *service.MinistryService
}

// NewMinistriesHandler constructs the handler.
func NewMinistriesHandler(ministries *service.MinistryService) *MinistriesHandler {
	return &MinistriesHandler{ministries: ministries}
}

// ListActive GET /api/ministries. Public directory of active ministries.
func (h *MinistriesHandler) ListActive(c *fiber.Ctx) error {
	ministries, err := h.ministries.ListMinistries(c.Context(), true)
	if err != nil {
		return err
	}
	out := make([]dto.MinistryResponse, 0, len(ministries))
	for i := range ministries {
		out = append(out, ministryResponse(&ministries[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ListAll GET /api/admin/ministries.
func (h *MinistriesHandler) ListAll(c *fiber.Ctx) error {
	ministries, err := h.ministries.ListMinistries(c.Context(), false)
	if err != nil {
		return err
	}
	out := make([]dto.MinistryResponse, 0, len(ministries))
	for i := range ministries {
		out = append(out, ministryResponse(&ministries[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create POST /api/admin/ministries.
func (h *MinistriesHandler) Create(c *fiber.Ctx) error {
	var req dto.MinistryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ministry, err := h.ministries.CreateMinistry(c.Context(), service.MinistryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ministryResponse(ministry)})
}

// Update PATCH /api/admin/ministries/:id.
func (h *MinistriesHandler) Update(c *fiber.Ctx) error {
	var req dto.MinistryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ministry, err := h.ministries.UpdateMinistry(c.Context(), c.Params("id"), service.MinistryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ministryResponse(ministry)})
}

// Delete DELETE /api/admin/ministries/:id.
func (h *MinistriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.ministries.DeleteMinistry(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
