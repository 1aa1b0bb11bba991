package models

import (
	"time"

	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
)

// Item is a listing offered for exchange. Status moves to reserved/exchanged
// only through the swap lifecycle or an admin override.
type Item struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID        `gorm:"column:owner_id;type:uuid;not null;index:items_owner_id_idx"`
	Type         string           `gorm:"column:type;not null"`
	Title        string           `gorm:"column:title;not null"`
	Description  *string          `gorm:"column:description"`
	Category     *string          `gorm:"column:category"`
	Condition    *string          `gorm:"column:condition"`
	ExchangeMode string           `gorm:"column:exchange_mode;not null"`
	Price        *float64         `gorm:"column:price"`
	ImageURL     *string          `gorm:"column:image_url"`
	Status       enums.ItemStatus `gorm:"column:status;type:text;not null;default:available;index:items_status_idx"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
