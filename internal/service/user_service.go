package service

import (
	"context"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/repository"
	"github.com/civicgrid/complaint-service/pkg/util"
)

// UserService manages accounts on the admin surface.
type UserService struct {
	users repository.UserRepository
}

// UserListInput describes user listing filters.
type UserListInput struct {
	Role   *domain.Role
	Search *string
	Page   util.PageRequest
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns one page of accounts plus page metadata.
func (s *UserService) ListUsers(ctx context.Context, input UserListInput) ([]domain.User, util.Pagination, error) {
	filter := repository.UserFilter{
		Role:       input.Role,
		SearchTerm: input.Search,
		Limit:      input.Page.Limit,
		Offset:     input.Page.Offset(),
	}

	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	items, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	if items == nil {
		items = []domain.User{}
	}
	return items, util.NewPagination(input.Page, total), nil
}

// ChangeRole assigns a role to another account. Only SUPER_ADMIN may
// hand out ADMIN or SUPER_ADMIN.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, targetID, rawRole string) (*domain.User, error) {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return nil, util.NewValidationError("invalid role", map[string]any{"role": rawRole})
	}
	if !actor.Role.CanGrant(role) {
		return nil, util.NewForbidden("caller may not grant this role")
	}

	target, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, target.ID, role); err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("user", nil)
		}
		return nil, err
	}
	target.Role = role
	return target, nil
}

// SetActive activates or deactivates an account.
func (s *UserService) SetActive(ctx context.Context, targetID string, active bool) (*domain.User, error) {
	target, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateActive(ctx, target.ID, active); err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("user", nil)
		}
		return nil, err
	}
	target.IsActive = active
	return target, nil
}

// DeleteUser removes an account. Reserved for SUPER_ADMIN.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	if actor.Role != domain.RoleSuperAdmin {
		return util.NewForbidden("super admin required")
	}
	if actor.ID == targetID {
		return util.NewValidationError("cannot delete own account", nil)
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		if util.IsNotFound(err) {
			return util.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

func (s *UserService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}
