package models

import (
	"time"

	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
)

// SwapRequest is a proposal by one user to exchange for another user's item.
// Rows are never deleted; at most one pending row exists per (requester, item).
type SwapRequest struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID        `gorm:"column:requester_id;type:uuid;not null;index:swap_requests_requester_id_idx"`
	ItemID      uuid.UUID        `gorm:"column:item_id;type:uuid;not null;index:swap_requests_item_id_idx"`
	Message     string           `gorm:"column:message;not null;default:''"`
	Status      enums.SwapStatus `gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
