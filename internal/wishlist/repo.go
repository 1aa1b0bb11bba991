package wishlist

import (
	"context"
	"strings"
	"time"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	"github.com/campusswap/campusswap-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if userID == uuid.Nil || itemID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (id, user_id, item_id) VALUES (?, ?, ?) ON CONFLICT (user_id, item_id) DO NOTHING`, uuid.New(), userID, itemID).
		Error
}

// RemoveItem deletes the user's saved entry if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.WishlistItem{}).
		Error
}

type wishlistRecord struct {
	WishlistID        uuid.UUID        `gorm:"column:wishlist_id"`
	WishlistCreatedAt time.Time        `gorm:"column:wishlist_created_at"`
	ItemID            uuid.UUID        `gorm:"column:item_id"`
	Title             string           `gorm:"column:title"`
	Type              string           `gorm:"column:type"`
	Status            enums.ItemStatus `gorm:"column:status"`
	Price             *float64         `gorm:"column:price"`
	ImageURL          *string          `gorm:"column:image_url"`
	OwnerID           uuid.UUID        `gorm:"column:owner_id"`
}

// ListItems returns a cursor-paginated page of the user's wishlist, newest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID, cursor string, limit int) (WishlistPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return WishlistPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select(`wi.id AS wishlist_id, wi.created_at AS wishlist_created_at,
i.id AS item_id, i.title, i.type, i.status, i.price, i.image_url, i.owner_id`).
		Joins("JOIN items i ON i.id = wi.item_id").
		Where("wi.user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where("(wi.created_at < ?) OR (wi.created_at = ? AND wi.id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("wi.created_at DESC").Order("wi.id DESC").Limit(limitWithBuffer)

	var records []wishlistRecord
	if err := query.Scan(&records).Error; err != nil {
		return WishlistPageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.WishlistCreatedAt,
			ID:        last.WishlistID,
		})
	}

	items := make([]WishlistItemDTO, 0, len(resultRows))
	for _, rec := range resultRows {
		items = append(items, WishlistItemDTO{
			ItemID:    rec.ItemID,
			Title:     rec.Title,
			Type:      rec.Type,
			Status:    rec.Status,
			Price:     rec.Price,
			ImageURL:  rec.ImageURL,
			OwnerID:   rec.OwnerID,
			CreatedAt: rec.WishlistCreatedAt,
		})
	}

	return WishlistPageDTO{
		Items:      items,
		NextCursor: nextCursor,
	}, nil
}
