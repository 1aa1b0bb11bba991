package wishlist

import (
	"time"

	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
)

// WishlistItemDTO pairs a saved item with the moment it was saved.
type WishlistItemDTO struct {
	ItemID    uuid.UUID        `json:"item_id"`
	Title     string           `json:"title"`
	Type      string           `json:"type"`
	Status    enums.ItemStatus `json:"status"`
	Price     *float64         `json:"price,omitempty"`
	ImageURL  *string          `json:"image_url,omitempty"`
	OwnerID   uuid.UUID        `json:"owner_id"`
	CreatedAt time.Time        `json:"created_at"`
}

// WishlistPageDTO is one page of a user's wishlist.
type WishlistPageDTO struct {
	Items      []WishlistItemDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// AddRequest carries the item to save.
type AddRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}
