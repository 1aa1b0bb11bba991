package chat

import (
	"time"

	"github.com/google/uuid"
)

// PostMessageRequest carries the body of a chat message.
type PostMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// MessageDTO is the public projection of a chat message.
type MessageDTO struct {
	ID            uuid.UUID `json:"id"`
	SwapRequestID uuid.UUID `json:"swap_request_id"`
	SenderID      uuid.UUID `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

// Partner identifies a swap counterparty.
type Partner struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ConversationDTO summarizes the relationship with one partner.
type ConversationDTO struct {
	Partner         Partner    `json:"partner"`
	LastMessageBody *string    `json:"last_message_body,omitempty"`
	LastMessageAt   *time.Time `json:"last_message_at,omitempty"`
}
