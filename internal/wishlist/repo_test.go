package wishlist

import (
	"context"
	"testing"

	"github.com/campusswap/campusswap-backend/internal/items"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	itemsTable := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  category TEXT,
  condition TEXT,
  exchange_mode TEXT NOT NULL,
  price REAL,
  image_url TEXT,
  status TEXT NOT NULL DEFAULT 'available',
  created_at DATETIME,
  updated_at DATETIME
);`
	wishlistTable := `
CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, item_id)
);`
	require.NoError(t, db.Exec(itemsTable).Error)
	require.NoError(t, db.Exec(wishlistTable).Error)
	require.NoError(t, db.Exec("DELETE FROM wishlist_items").Error)
	require.NoError(t, db.Exec("DELETE FROM items").Error)

	return db
}

func newWishlistService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		WishlistRepo: NewRepository(db),
		ItemRepo:     items.NewRepository(db),
	})
	require.NoError(t, err)
	return svc
}

func seedItem(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	itemID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO items (id, owner_id, type, title, exchange_mode, status, created_at, updated_at)
VALUES (?, ?, 'textbook', ?, 'swap', 'available', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		itemID, ownerID, title,
	).Error)
	return itemID
}

func TestAddItemIdempotent(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	userID := uuid.New()
	itemID := seedItem(t, db, uuid.New(), "Microeconomics")

	require.NoError(t, svc.AddItem(context.Background(), userID, itemID))
	// saving again must be a silent no-op
	require.NoError(t, svc.AddItem(context.Background(), userID, itemID))

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM wishlist_items WHERE user_id = ?", userID).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddItemUnknownItem(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveItem(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	userID := uuid.New()
	itemID := seedItem(t, db, uuid.New(), "Statistics Workbook")

	require.NoError(t, svc.AddItem(context.Background(), userID, itemID))
	require.NoError(t, svc.RemoveItem(context.Background(), userID, itemID))
	// removing an absent entry is also fine
	require.NoError(t, svc.RemoveItem(context.Background(), userID, itemID))

	page, err := svc.GetWishlist(context.Background(), userID, "", 25)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestGetWishlistPagination(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newWishlistService(t, db)
	userID := uuid.New()
	ownerID := uuid.New()

	for i := 0; i < 3; i++ {
		itemID := seedItem(t, db, ownerID, "Item")
		require.NoError(t, svc.AddItem(context.Background(), userID, itemID))
	}

	first, err := svc.GetWishlist(context.Background(), userID, "", 2)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.GetWishlist(context.Background(), userID, first.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, row := range append(first.Items, second.Items...) {
		require.False(t, seen[row.ItemID], "item repeated across pages")
		seen[row.ItemID] = true
	}
}
