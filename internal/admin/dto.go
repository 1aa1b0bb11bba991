package admin

import (
	"time"

	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
)

// SetRoleRequest carries the role to assign to a user.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// SetItemStatusRequest carries the status override for an item.
type SetItemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminItemDTO is an item row denormalized with its owner's identity.
type AdminItemDTO struct {
	ID         uuid.UUID        `json:"id"`
	Title      string           `json:"title"`
	Type       string           `json:"type"`
	Status     enums.ItemStatus `json:"status"`
	Price      *float64         `json:"price,omitempty"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	OwnerName  string           `json:"owner_name"`
	OwnerEmail string           `json:"owner_email"`
	CreatedAt  time.Time        `json:"created_at"`
}

// AdminSwapDTO is a swap row with both parties denormalized.
type AdminSwapDTO struct {
	ID            uuid.UUID        `json:"id"`
	Status        enums.SwapStatus `json:"status"`
	Message       string           `json:"message"`
	ItemID        uuid.UUID        `json:"item_id"`
	ItemTitle     string           `json:"item_title"`
	RequesterID   uuid.UUID        `json:"requester_id"`
	RequesterName string           `json:"requester_name"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	OwnerName     string           `json:"owner_name"`
	CreatedAt     time.Time        `json:"created_at"`
}
