package swaps

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

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the swap request lifecycle.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input CreateSwapInput) (*SwapDTO, error)
	SetStatus(ctx context.Context, swapID uuid.UUID, status string, actorID uuid.UUID) (*SwapDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]SwapSummaryDTO, error)
	ListIncoming(ctx context.Context, userID uuid.UUID) ([]SwapSummaryDTO, error)
}

// ServiceParams groups dependencies for the swaps service.
type ServiceParams struct {
	Repo Repository
	Tx   txRunner
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a swaps service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swaps repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{repo: params.Repo, tx: params.Tx}, nil
}

// Create opens a swap request against an available item. Repeated creates for
// the same (requester, item) pair reuse the pending row; the message body is
// appended either way, in the same transaction as the insert.
func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input CreateSwapInput) (*SwapDTO, error) {
	if requesterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id is required")
	}
	message := strings.TrimSpace(input.Message)

	var result *SwapDTO
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
		}
		if item.OwnerID == requesterID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cannot request a swap for your own item")
		}
		if item.Status != enums.ItemStatusAvailable {
			return pkgerrors.New(pkgerrors.CodeConflict, "item not available")
		}

		swap, err := repo.FindPendingByRequesterAndItem(ctx, requesterID, input.ItemID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pending swap")
			}
			swap = &models.SwapRequest{
				RequesterID: requesterID,
				ItemID:      input.ItemID,
				Message:     message,
				Status:      enums.SwapStatusPending,
			}
			if err := repo.Create(ctx, swap); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create swap")
			}
		}

		if message != "" {
			if err := repo.AppendMessage(ctx, &models.Message{
				SwapRequestID: swap.ID,
				SenderID:      requesterID,
				Body:          message,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append opening message")
			}
		}

		dto := FromModel(swap)
		result = &dto
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// SetStatus moves a swap to a new lifecycle state, applying item side effects
// in the same transaction. Requesters may only cancel; owners may accept,
// reject, or complete.
func (s *service) SetStatus(ctx context.Context, swapID uuid.UUID, status string, actorID uuid.UUID) (*SwapDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if swapID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swap id is required")
	}

	target, err := enums.ParseSwapStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid swap status")
	}
	if target == enums.SwapStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pending is not a valid transition target")
	}

	var result *SwapDTO
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		swap, err := repo.FindByID(ctx, swapID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "swap not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load swap")
		}
		if swap.Status == target {
			return pkgerrors.New(pkgerrors.CodeValidation, "swap is already in the requested state")
		}

		item, err := repo.FindItemByID(ctx, swap.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
		}

		actor := ResolveActor(swap, item.OwnerID, actorID)
		if !actor.Involved() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this swap")
		}

		switch target {
		case enums.SwapStatusCancelled:
			if !actor.IsRequester {
				return pkgerrors.New(pkgerrors.CodeForbidden, "only the requester can cancel")
			}
		case enums.SwapStatusAccepted, enums.SwapStatusRejected, enums.SwapStatusCompleted:
			if !actor.IsOwner {
				return pkgerrors.New(pkgerrors.CodeForbidden, "only the item owner can decide")
			}
		}

		if err := repo.UpdateStatus(ctx, swap.ID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update swap status")
		}

		switch target {
		case enums.SwapStatusAccepted:
			if err := repo.UpdateItemStatus(ctx, item.ID, enums.ItemStatusReserved); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve item")
			}
		case enums.SwapStatusCompleted:
			if err := repo.UpdateItemStatus(ctx, item.ID, enums.ItemStatusExchanged); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark item exchanged")
			}
		}

		swap.Status = target
		dto := FromModel(swap)
		result = &dto
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// ListMine returns the caller's outgoing swap requests.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]SwapSummaryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list outgoing swaps")
	}
	return rows, nil
}

// ListIncoming returns swap requests targeting the caller's items.
func (s *service) ListIncoming(ctx context.Context, userID uuid.UUID) ([]SwapSummaryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListForOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list incoming swaps")
	}
	return rows, nil
}
