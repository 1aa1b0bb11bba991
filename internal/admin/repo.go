package admin

import (
	"context"
	"time"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository serves the moderation read models.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admin repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUsers returns users ordered by creation time, newest first.
func (r *Repository) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	var rows []models.User
	query := r.db.WithContext(ctx).
		Model(&models.User{}).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindUserByID loads a user by their UUID.
func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole overwrites the user's role.
func (r *Repository) UpdateUserRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("role", role).Error
}

type adminItemRecord struct {
	ID         uuid.UUID        `gorm:"column:id"`
	Title      string           `gorm:"column:title"`
	Type       string           `gorm:"column:type"`
	Status     enums.ItemStatus `gorm:"column:status"`
	Price      *float64         `gorm:"column:price"`
	OwnerID    uuid.UUID        `gorm:"column:owner_id"`
	OwnerName  string           `gorm:"column:owner_name"`
	OwnerEmail string           `gorm:"column:owner_email"`
	CreatedAt  time.Time        `gorm:"column:created_at"`
}

// ListItems returns all items with owner identity, newest first.
func (r *Repository) ListItems(ctx context.Context, limit int) ([]AdminItemDTO, error) {
	var records []adminItemRecord
	query := r.db.WithContext(ctx).
		Table("items i").
		Select("i.id, i.title, i.type, i.status, i.price, i.owner_id, u.full_name AS owner_name, u.email AS owner_email, i.created_at").
		Joins("JOIN users u ON u.id = i.owner_id").
		Order("i.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}

	out := make([]AdminItemDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, AdminItemDTO{
			ID:         rec.ID,
			Title:      rec.Title,
			Type:       rec.Type,
			Status:     rec.Status,
			Price:      rec.Price,
			OwnerID:    rec.OwnerID,
			OwnerName:  rec.OwnerName,
			OwnerEmail: rec.OwnerEmail,
			CreatedAt:  rec.CreatedAt,
		})
	}
	return out, nil
}

// FindItemByID loads an item by its UUID.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemStatus overrides the item status.
func (r *Repository) UpdateItemStatus(ctx context.Context, id uuid.UUID, status enums.ItemStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

type adminSwapRecord struct {
	ID            uuid.UUID        `gorm:"column:id"`
	Status        enums.SwapStatus `gorm:"column:status"`
	Message       string           `gorm:"column:message"`
	ItemID        uuid.UUID        `gorm:"column:item_id"`
	ItemTitle     string           `gorm:"column:item_title"`
	RequesterID   uuid.UUID        `gorm:"column:requester_id"`
	RequesterName string           `gorm:"column:requester_name"`
	OwnerID       uuid.UUID        `gorm:"column:owner_id"`
	OwnerName     string           `gorm:"column:owner_name"`
	CreatedAt     time.Time        `gorm:"column:created_at"`
}

// ListSwaps returns all swaps with both parties denormalized, newest first.
func (r *Repository) ListSwaps(ctx context.Context, limit int) ([]AdminSwapDTO, error) {
	var records []adminSwapRecord
	query := r.db.WithContext(ctx).
		Table("swap_requests sr").
		Select(`sr.id, sr.status, sr.message, sr.item_id, i.title AS item_title,
sr.requester_id, req.full_name AS requester_name,
i.owner_id, own.full_name AS owner_name, sr.created_at`).
		Joins("JOIN items i ON i.id = sr.item_id").
		Joins("JOIN users req ON req.id = sr.requester_id").
		Joins("JOIN users own ON own.id = i.owner_id").
		Order("sr.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}

	out := make([]AdminSwapDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, AdminSwapDTO{
			ID:            rec.ID,
			Status:        rec.Status,
			Message:       rec.Message,
			ItemID:        rec.ItemID,
			ItemTitle:     rec.ItemTitle,
			RequesterID:   rec.RequesterID,
			RequesterName: rec.RequesterName,
			OwnerID:       rec.OwnerID,
			OwnerName:     rec.OwnerName,
			CreatedAt:     rec.CreatedAt,
		})
	}
	return out, nil
}
