package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/api/dto"
	"github.com/civicgrid/complaint-service/internal/auth"
	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/service"
	apperrors "github.com/civicgrid/complaint-service/pkg/util"
)

// UsersHandler manages account administration endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// ListUsers GET /api/admin/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	input := service.UserListInput{Page: parsePageQuery(c)}
	if search := c.Query("search"); search != "" {
		input.Search = &search
	}
	if raw := c.Query("role"); raw != "" {
		if role, ok := domain.ParseRole(raw); ok {
			input.Role = &role
		}
	}

	users, pagination, err := h.users.ListUsers(c.Context(), input)
	if err != nil {
		return err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return c.JSON(dto.UserListResponse{Users: out, Pagination: pagination})
}

// UpdateRole PATCH /api/admin/users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.ChangeRole(c.Context(), principal.User, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateStatus PATCH /api/admin/users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.SetActive(c.Context(), c.Params("id"), req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /api/admin/users/:id.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.users.DeleteUser(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
