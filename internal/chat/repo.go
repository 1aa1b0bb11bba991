package chat

import (
	"context"
	"time"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pairClause matches swaps connecting two users in either direction:
// one of them requested, the other owns the item.
const pairClause = `(sr.requester_id = ? AND i.owner_id = ?) OR (sr.requester_id = ? AND i.owner_id = ?)`

// Repository abstracts conversation persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSwapWithOwner(ctx context.Context, swapID uuid.UUID) (*models.SwapRequest, uuid.UUID, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListBySwap(ctx context.Context, swapID uuid.UUID) ([]MessageDTO, error)
	ListBetweenUsers(ctx context.Context, userID, partnerID uuid.UUID) ([]MessageDTO, error)
	LatestSwapBetween(ctx context.Context, userID, partnerID uuid.UUID) (*models.SwapRequest, error)
	ListPartners(ctx context.Context, userID uuid.UUID) ([]Partner, error)
	LastMessageBetween(ctx context.Context, userID, partnerID uuid.UUID) (*MessageDTO, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a chat repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

// FindSwapWithOwner loads a swap together with the owning user of its item.
func (r *gormRepository) FindSwapWithOwner(ctx context.Context, swapID uuid.UUID) (*models.SwapRequest, uuid.UUID, error) {
	var record struct {
		models.SwapRequest
		OwnerID uuid.UUID `gorm:"column:owner_id"`
	}
	err := r.db.WithContext(ctx).
		Table("swap_requests sr").
		Select("sr.*, i.owner_id").
		Joins("JOIN items i ON i.id = sr.item_id").
		Where("sr.id = ?", swapID).
		First(&record).Error
	if err != nil {
		return nil, uuid.Nil, err
	}
	swap := record.SwapRequest
	return &swap, record.OwnerID, nil
}

func (r *gormRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

type messageRecord struct {
	ID            uuid.UUID `gorm:"column:id"`
	SwapRequestID uuid.UUID `gorm:"column:swap_request_id"`
	SenderID      uuid.UUID `gorm:"column:sender_id"`
	SenderName    string    `gorm:"column:sender_name"`
	Body          string    `gorm:"column:body"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (rec messageRecord) toDTO() MessageDTO {
	return MessageDTO{
		ID:            rec.ID,
		SwapRequestID: rec.SwapRequestID,
		SenderID:      rec.SenderID,
		SenderName:    rec.SenderName,
		Body:          rec.Body,
		CreatedAt:     rec.CreatedAt,
	}
}

// ListBySwap returns a swap's messages oldest first.
func (r *gormRepository) ListBySwap(ctx context.Context, swapID uuid.UUID) ([]MessageDTO, error) {
	var records []messageRecord
	err := r.db.WithContext(ctx).
		Table("messages m").
		Select("m.id, m.swap_request_id, m.sender_id, u.full_name AS sender_name, m.body, m.created_at").
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.swap_request_id = ?", swapID).
		Order("m.created_at ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

// ListBetweenUsers aggregates messages across every swap connecting the two users, oldest first.
func (r *gormRepository) ListBetweenUsers(ctx context.Context, userID, partnerID uuid.UUID) ([]MessageDTO, error) {
	var records []messageRecord
	err := r.db.WithContext(ctx).
		Table("messages m").
		Select("m.id, m.swap_request_id, m.sender_id, u.full_name AS sender_name, m.body, m.created_at").
		Joins("JOIN users u ON u.id = m.sender_id").
		Joins("JOIN swap_requests sr ON sr.id = m.swap_request_id").
		Joins("JOIN items i ON i.id = sr.item_id").
		Where(pairClause, userID, partnerID, partnerID, userID).
		Order("m.created_at ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

// LatestSwapBetween returns the most recent swap connecting the two users.
func (r *gormRepository) LatestSwapBetween(ctx context.Context, userID, partnerID uuid.UUID) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	err := r.db.WithContext(ctx).
		Table("swap_requests sr").
		Select("sr.*").
		Joins("JOIN items i ON i.id = sr.item_id").
		Where(pairClause, userID, partnerID, partnerID, userID).
		Order("sr.created_at DESC").
		First(&swap).Error
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

// ListPartners returns the distinct counterparties from the user's swaps.
func (r *gormRepository) ListPartners(ctx context.Context, userID uuid.UUID) ([]Partner, error) {
	var records []struct {
		ID   uuid.UUID `gorm:"column:id"`
		Name string    `gorm:"column:name"`
	}
	err := r.db.WithContext(ctx).Raw(`
SELECT DISTINCT u.id, u.full_name AS name
FROM swap_requests sr
JOIN items i ON i.id = sr.item_id
JOIN users u ON u.id = CASE WHEN sr.requester_id = ? THEN i.owner_id ELSE sr.requester_id END
WHERE sr.requester_id = ? OR i.owner_id = ?`, userID, userID, userID).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	partners := make([]Partner, 0, len(records))
	for _, rec := range records {
		partners = append(partners, Partner{ID: rec.ID, Name: rec.Name})
	}
	return partners, nil
}

// LastMessageBetween returns the newest message in the full relationship, if any.
func (r *gormRepository) LastMessageBetween(ctx context.Context, userID, partnerID uuid.UUID) (*MessageDTO, error) {
	var record messageRecord
	err := r.db.WithContext(ctx).
		Table("messages m").
		Select("m.id, m.swap_request_id, m.sender_id, u.full_name AS sender_name, m.body, m.created_at").
		Joins("JOIN users u ON u.id = m.sender_id").
		Joins("JOIN swap_requests sr ON sr.id = m.swap_request_id").
		Joins("JOIN items i ON i.id = sr.item_id").
		Where(pairClause, userID, partnerID, partnerID, userID).
		Order("m.created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	dto := record.toDTO()
	return &dto, nil
}

func toDTOs(records []messageRecord) []MessageDTO {
	out := make([]MessageDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDTO())
	}
	return out
}
