package admin

import (
	"context"
	"errors"

	"github.com/campusswap/campusswap-backend/internal/users"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const listCap = 500

// Service exposes the moderation surface.
type Service interface {
	ListUsers(ctx context.Context) ([]users.UserDTO, error)
	SetUserRole(ctx context.Context, userID uuid.UUID, role string) (*users.UserDTO, error)
	ListItems(ctx context.Context) ([]AdminItemDTO, error)
	SetItemStatus(ctx context.Context, itemID uuid.UUID, status string) error
	ListSwaps(ctx context.Context) ([]AdminSwapDTO, error)
}

// ServiceParams groups dependencies for the admin service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService builds an admin service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListUsers returns the newest users up to the moderation cap.
func (s *service) ListUsers(ctx context.Context) ([]users.UserDTO, error) {
	rows, err := s.repo.ListUsers(ctx, listCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

// SetUserRole assigns a role to the target user.
func (s *service) SetUserRole(ctx context.Context, userID uuid.UUID, role string) (*users.UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	parsed, err := enums.ParseUserRole(role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user role")
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if err := s.repo.UpdateUserRole(ctx, user.ID, parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user role")
	}
	user.Role = parsed
	return users.FromModel(user), nil
}

// ListItems returns the newest items with owner identity.
func (s *service) ListItems(ctx context.Context) ([]AdminItemDTO, error) {
	rows, err := s.repo.ListItems(ctx, listCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return rows, nil
}

// SetItemStatus overrides an item's status. Admins may set any of the four values.
func (s *service) SetItemStatus(ctx context.Context, itemID uuid.UUID, status string) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	parsed, err := enums.ParseItemStatus(status)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}

	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	if err := s.repo.UpdateItemStatus(ctx, itemID, parsed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item status")
	}
	return nil
}

// ListSwaps returns the newest swaps with both parties denormalized.
func (s *service) ListSwaps(ctx context.Context) ([]AdminSwapDTO, error) {
	rows, err := s.repo.ListSwaps(ctx, listCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list swaps")
	}
	return rows, nil
}
