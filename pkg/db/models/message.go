package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one append-only chat entry scoped to a swap request.
type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SwapRequestID uuid.UUID `gorm:"column:swap_request_id;type:uuid;not null;index:messages_swap_request_id_idx"`
	SenderID      uuid.UUID `gorm:"column:sender_id;type:uuid;not null"`
	Body          string    `gorm:"column:body;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
