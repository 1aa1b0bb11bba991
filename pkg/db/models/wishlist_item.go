package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a user to a saved item.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:wishlist_items_user_id_idx;uniqueIndex:wishlist_items_user_item_key"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;not null;index:wishlist_items_item_id_idx;uniqueIndex:wishlist_items_user_item_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
