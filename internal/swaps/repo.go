package swaps

import (
	"context"
	"time"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository abstracts swap persistence so the service can run inside a
// transaction handle or against the root connection.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, swap *models.SwapRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error)
	FindPendingByRequesterAndItem(ctx context.Context, requesterID, itemID uuid.UUID) (*models.SwapRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SwapStatus) error
	AppendMessage(ctx context.Context, msg *models.Message) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	UpdateItemStatus(ctx context.Context, id uuid.UUID, status enums.ItemStatus) error
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]SwapSummaryDTO, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]SwapSummaryDTO, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a swaps repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	return r.db.WithContext(ctx).Create(swap).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).First(&swap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *gormRepository) FindPendingByRequesterAndItem(ctx context.Context, requesterID, itemID uuid.UUID) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND item_id = ? AND status = ?", requesterID, itemID, enums.SwapStatusPending).
		Order("created_at DESC").
		First(&swap).Error
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SwapStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}

func (r *gormRepository) AppendMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *gormRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) UpdateItemStatus(ctx context.Context, id uuid.UUID, status enums.ItemStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

type swapSummaryRecord struct {
	ID               uuid.UUID        `gorm:"column:id"`
	ItemID           uuid.UUID        `gorm:"column:item_id"`
	ItemTitle        string           `gorm:"column:item_title"`
	ItemStatus       enums.ItemStatus `gorm:"column:item_status"`
	Status           enums.SwapStatus `gorm:"column:status"`
	Message          string           `gorm:"column:message"`
	CounterpartyID   uuid.UUID        `gorm:"column:counterparty_id"`
	CounterpartyName string           `gorm:"column:counterparty_name"`
	CreatedAt        time.Time        `gorm:"column:created_at"`
}

func (rec swapSummaryRecord) toDTO() SwapSummaryDTO {
	return SwapSummaryDTO{
		ID:               rec.ID,
		ItemID:           rec.ItemID,
		ItemTitle:        rec.ItemTitle,
		ItemStatus:       rec.ItemStatus,
		Status:           rec.Status,
		Message:          rec.Message,
		CounterpartyID:   rec.CounterpartyID,
		CounterpartyName: rec.CounterpartyName,
		CreatedAt:        rec.CreatedAt,
	}
}

// ListByRequester returns the caller's outgoing swaps with the item owner as counterparty.
func (r *gormRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]SwapSummaryDTO, error) {
	var records []swapSummaryRecord
	err := r.db.WithContext(ctx).
		Table("swap_requests sr").
		Select(`sr.id, sr.item_id, i.title AS item_title, i.status AS item_status,
sr.status, sr.message, i.owner_id AS counterparty_id, u.full_name AS counterparty_name,
sr.created_at`).
		Joins("JOIN items i ON i.id = sr.item_id").
		Joins("JOIN users u ON u.id = i.owner_id").
		Where("sr.requester_id = ?", requesterID).
		Order("sr.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return toSummaries(records), nil
}

// ListForOwner returns swaps targeting the caller's items with the requester as counterparty.
func (r *gormRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]SwapSummaryDTO, error) {
	var records []swapSummaryRecord
	err := r.db.WithContext(ctx).
		Table("swap_requests sr").
		Select(`sr.id, sr.item_id, i.title AS item_title, i.status AS item_status,
sr.status, sr.message, sr.requester_id AS counterparty_id, u.full_name AS counterparty_name,
sr.created_at`).
		Joins("JOIN items i ON i.id = sr.item_id").
		Joins("JOIN users u ON u.id = sr.requester_id").
		Where("i.owner_id = ?", ownerID).
		Order("sr.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return toSummaries(records), nil
}

func toSummaries(records []swapSummaryRecord) []SwapSummaryDTO {
	out := make([]SwapSummaryDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDTO())
	}
	return out
}
