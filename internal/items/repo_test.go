package items

import (
	"context"
	"testing"

	"github.com/campusswap/campusswap-backend/pkg/enums"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupItemsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
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
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM items").Error)

	return db
}

func newItemsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func TestCreateAndGetItem(t *testing.T) {
	db := setupItemsTestDB(t)
	svc := newItemsService(t, db)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "textbook",
		Title:        "  Linear Algebra, 4th ed  ",
		ExchangeMode: "swap",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Linear Algebra, 4th ed", created.Title)
	assert.Equal(t, enums.ItemStatusAvailable, created.Status)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, ownerID, got.OwnerID)
}

func TestListExcludesHidden(t *testing.T) {
	db := setupItemsTestDB(t)
	svc := newItemsService(t, db)
	ownerID := uuid.New()

	visible, err := svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "textbook",
		Title:        "Visible",
		ExchangeMode: "swap",
	})
	require.NoError(t, err)

	hidden, err := svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "textbook",
		Title:        "Hidden",
		ExchangeMode: "swap",
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("UPDATE items SET status = 'hidden' WHERE id = ?", hidden.ID).Error)

	rows, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, visible.ID, rows[0].ID)
}

func TestListFilters(t *testing.T) {
	db := setupItemsTestDB(t)
	svc := newItemsService(t, db)
	ownerID := uuid.New()

	category := "math"
	_, err := svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "textbook",
		Title:        "Calculus Primer",
		Category:     &category,
		ExchangeMode: "swap",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "furniture",
		Title:        "Desk Lamp",
		ExchangeMode: "giveaway",
	})
	require.NoError(t, err)

	byType, err := svc.List(context.Background(), ListFilters{Type: "textbook"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Calculus Primer", byType[0].Title)

	byQuery, err := svc.List(context.Background(), ListFilters{Query: "lamp"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Desk Lamp", byQuery[0].Title)

	byMode, err := svc.List(context.Background(), ListFilters{Mode: "giveaway"})
	require.NoError(t, err)
	require.Len(t, byMode, 1)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	db := setupItemsTestDB(t)
	svc := newItemsService(t, db)

	created, err := svc.Create(context.Background(), uuid.New(), CreateItemRequest{
		Type:         "textbook",
		Title:        "Physics Notes",
		ExchangeMode: "swap",
	})
	require.NoError(t, err)

	title := "Stolen Title"
	_, err = svc.Update(context.Background(), created.ID, uuid.New(), UpdateItemRequest{Title: &title})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestUpdateRejectsLifecycleStatuses(t *testing.T) {
	db := setupItemsTestDB(t)
	svc := newItemsService(t, db)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "textbook",
		Title:        "Chemistry Set",
		ExchangeMode: "swap",
	})
	require.NoError(t, err)

	for _, status := range []string{"reserved", "exchanged"} {
		value := status
		_, err := svc.Update(context.Background(), created.ID, ownerID, UpdateItemRequest{Status: &value})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	}

	hidden := "hidden"
	updated, err := svc.Update(context.Background(), created.ID, ownerID, UpdateItemRequest{Status: &hidden})
	require.NoError(t, err)
	assert.Equal(t, enums.ItemStatusHidden, updated.Status)
}

func TestDeleteItem(t *testing.T) {
	db := setupItemsTestDB(t)
	svc := newItemsService(t, db)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, CreateItemRequest{
		Type:         "textbook",
		Title:        "Old Flashcards",
		ExchangeMode: "giveaway",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, ownerID))

	_, err = svc.Get(context.Background(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
