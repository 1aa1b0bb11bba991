package swaps

import (
	"time"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateSwapInput carries the payload for opening a swap request.
type CreateSwapInput struct {
	ItemID  uuid.UUID `json:"item_id" validate:"required"`
	Message string    `json:"message,omitempty"`
}

// SwapDTO is the public projection of a swap request.
type SwapDTO struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	ItemID      uuid.UUID        `json:"item_id"`
	Message     string           `json:"message"`
	Status      enums.SwapStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FromModel maps a swap request model into its public projection.
func FromModel(swap *models.SwapRequest) SwapDTO {
	return SwapDTO{
		ID:          swap.ID,
		RequesterID: swap.RequesterID,
		ItemID:      swap.ItemID,
		Message:     swap.Message,
		Status:      swap.Status,
		CreatedAt:   swap.CreatedAt,
		UpdatedAt:   swap.UpdatedAt,
	}
}

// SwapSummaryDTO is a swap row denormalized with the item and counterparty,
// used by the outgoing/incoming listings.
type SwapSummaryDTO struct {
	ID               uuid.UUID        `json:"id"`
	ItemID           uuid.UUID        `json:"item_id"`
	ItemTitle        string           `json:"item_title"`
	ItemStatus       enums.ItemStatus `json:"item_status"`
	Status           enums.SwapStatus `json:"status"`
	Message          string           `json:"message"`
	CounterpartyID   uuid.UUID        `json:"counterparty_id"`
	CounterpartyName string           `json:"counterparty_name"`
	CreatedAt        time.Time        `json:"created_at"`
}
