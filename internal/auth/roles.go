package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/domain"
	apperrors "github.com/civicgrid/complaint-service/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles.
// Membership is explicit, not inherited.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin gates the admin surface.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// RequireAuthenticated ensures any logged-in caller.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
