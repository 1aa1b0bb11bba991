package items

import (
	"time"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateItemRequest carries the payload for listing a new item.
type CreateItemRequest struct {
	Type         string   `json:"type" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Condition    *string  `json:"condition,omitempty"`
	ExchangeMode string   `json:"exchange_mode" validate:"required"`
	Price        *float64 `json:"price,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
}

// UpdateItemRequest carries the mutable fields of an item. Nil fields are left untouched.
type UpdateItemRequest struct {
	Type         *string  `json:"type,omitempty"`
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Condition    *string  `json:"condition,omitempty"`
	ExchangeMode *string  `json:"exchange_mode,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// ListFilters narrows the public item listing.
type ListFilters struct {
	Type     string
	Category string
	Mode     string
	Query    string
	Status   string
	OwnerID  uuid.UUID
	Limit    int
	Offset   int
}

// ItemDTO is the public projection of an item.
type ItemDTO struct {
	ID           uuid.UUID        `json:"id"`
	OwnerID      uuid.UUID        `json:"owner_id"`
	Type         string           `json:"type"`
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Condition    *string          `json:"condition,omitempty"`
	ExchangeMode string           `json:"exchange_mode"`
	Price        *float64         `json:"price,omitempty"`
	ImageURL     *string          `json:"image_url,omitempty"`
	Status       enums.ItemStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// FromModel maps an item model into its public projection.
func FromModel(item *models.Item) ItemDTO {
	return ItemDTO{
		ID:           item.ID,
		OwnerID:      item.OwnerID,
		Type:         item.Type,
		Title:        item.Title,
		Description:  item.Description,
		Category:     item.Category,
		Condition:    item.Condition,
		ExchangeMode: item.ExchangeMode,
		Price:        item.Price,
		ImageURL:     item.ImageURL,
		Status:       item.Status,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// FromModels maps a slice of item models.
func FromModels(items []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, FromModel(&items[i]))
	}
	return out
}
