package items

import (
	"context"
	"errors"
	"strings"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxListLimit = 200

// Service exposes catalog operations for items.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ItemDTO, error)
	Get(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	Update(ctx context.Context, itemID, actorID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	Delete(ctx context.Context, itemID, actorID uuid.UUID) error
}

// ServiceParams groups dependencies for the items service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService builds an items service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// List returns items matching the filters. Hidden listings never appear here.
func (s *service) List(ctx context.Context, filters ListFilters) ([]ItemDTO, error) {
	if filters.Status != "" {
		if _, err := enums.ParseItemStatus(filters.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}
	if filters.Limit <= 0 || filters.Limit > maxListLimit {
		filters.Limit = maxListLimit
	}

	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		if rows[i].Status == enums.ItemStatusHidden {
			continue
		}
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

// Get loads a single item by ID.
func (s *service) Get(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	dto := FromModel(item)
	return &dto, nil
}

// Create persists a new listing owned by the caller.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	itemType := strings.TrimSpace(req.Type)
	title := strings.TrimSpace(req.Title)
	mode := strings.TrimSpace(req.ExchangeMode)
	if itemType == "" || title == "" || mode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type, title and exchange_mode are required")
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	item := &models.Item{
		OwnerID:      ownerID,
		Type:         itemType,
		Title:        title,
		Description:  req.Description,
		Category:     req.Category,
		Condition:    req.Condition,
		ExchangeMode: mode,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Status:       enums.ItemStatusAvailable,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	dto := FromModel(item)
	return &dto, nil
}

// Update applies a partial update to an item owned by the caller.
func (s *service) Update(ctx context.Context, itemID, actorID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	item, err := s.loadOwned(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "type cannot be empty")
		}
		values["type"] = strings.TrimSpace(*req.Type)
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		values["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.Category != nil {
		values["category"] = *req.Category
	}
	if req.Condition != nil {
		values["condition"] = *req.Condition
	}
	if req.ExchangeMode != nil {
		if strings.TrimSpace(*req.ExchangeMode) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "exchange_mode cannot be empty")
		}
		values["exchange_mode"] = strings.TrimSpace(*req.ExchangeMode)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		values["price"] = *req.Price
	}
	if req.ImageURL != nil {
		values["image_url"] = *req.ImageURL
	}
	if req.Status != nil {
		status, err := enums.ParseItemStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
		}
		// reserved/exchanged are driven by the swap lifecycle, not direct edits.
		if status == enums.ItemStatusReserved || status == enums.ItemStatusExchanged {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status is managed by the swap lifecycle")
		}
		values["status"] = status.String()
	}

	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Updates(ctx, item.ID, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}

	updated, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
	}
	dto := FromModel(updated)
	return &dto, nil
}

// Delete removes an item owned by the caller.
func (s *service) Delete(ctx context.Context, itemID, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	item, err := s.loadOwned(ctx, itemID, actorID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, itemID, actorID uuid.UUID) (*models.Item, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "item does not belong to user")
	}
	return item, nil
}
