package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
)

// UserService is the admin view of accounts. The superadmin is either a user with the
// superadmin role or the account registered under the configured superadmin email.
type UserService struct {
	store           port.Store
	superadminEmail string
}

func NewUserService(store port.Store, superadminEmail string) *UserService {
	return &UserService{store: store, superadminEmail: strings.ToLower(strings.TrimSpace(superadminEmail))}
}

func (s *UserService) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, domain.PageInfo, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, domain.PageInfo{}, domain.Validation("role[%s] is not valid", *filter.Role)
	}

	users, total, err := s.store.Repositories().Users.List(ctx, filter)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("repos.Users.List: %w", err)
	}
	return users, domain.NewPageInfo(filter.Page, total), nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.store.Repositories().Users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, by domain.Principal) (domain.User, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return domain.User{}, domain.Validation("role[%s] is not valid", *patch.Role)
	}

	repos := s.store.Repositories()

	target, err := repos.Users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	callerIsSuperadmin := s.isSuperadmin(by.Role, by.Email)

	if s.isSuperadmin(target.Role, target.Email) {
		if !callerIsSuperadmin {
			return domain.User{}, domain.Forbidden("Cannot modify superadmin user")
		}
		// the superadmin can not lock itself out
		patch.IsActive = nil
		patch.Role = nil
	}

	if patch.Role != nil && !callerIsSuperadmin {
		return domain.User{}, domain.Forbidden("Only superadmin can assign roles")
	}

	return repos.Users.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	repos := s.store.Repositories()

	target, err := repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.isSuperadmin(target.Role, target.Email) {
		return domain.Forbidden("Cannot delete superadmin user")
	}

	return repos.Users.Deactivate(ctx, id)
}

func (s *UserService) isSuperadmin(role domain.Role, email string) bool {
	if role == domain.RoleSuperadmin {
		return true
	}
	return s.superadminEmail != "" && strings.EqualFold(email, s.superadminEmail)
}
