package swaps

import (
	"context"
	"testing"

	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubSwapsRepo struct {
	item        *models.Item
	swap        *models.SwapRequest
	pendingSwap *models.SwapRequest

	createdSwap       *models.SwapRequest
	appendedMessages  []models.Message
	updatedSwapStatus enums.SwapStatus
	updatedItemStatus enums.ItemStatus
	itemStatusUpdated bool
	swapStatusUpdated bool
}

func (s *stubSwapsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubSwapsRepo) Create(ctx context.Context, swap *models.SwapRequest) error {
	if swap.ID == uuid.Nil {
		swap.ID = uuid.New()
	}
	s.createdSwap = swap
	return nil
}

func (s *stubSwapsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	if s.swap == nil || s.swap.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.swap, nil
}

func (s *stubSwapsRepo) FindPendingByRequesterAndItem(ctx context.Context, requesterID, itemID uuid.UUID) (*models.SwapRequest, error) {
	if s.pendingSwap == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.pendingSwap, nil
}

func (s *stubSwapsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SwapStatus) error {
	s.updatedSwapStatus = status
	s.swapStatusUpdated = true
	return nil
}

func (s *stubSwapsRepo) AppendMessage(ctx context.Context, msg *models.Message) error {
	s.appendedMessages = append(s.appendedMessages, *msg)
	return nil
}

func (s *stubSwapsRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.item == nil || s.item.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.item, nil
}

func (s *stubSwapsRepo) UpdateItemStatus(ctx context.Context, id uuid.UUID, status enums.ItemStatus) error {
	s.updatedItemStatus = status
	s.itemStatusUpdated = true
	return nil
}

func (s *stubSwapsRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]SwapSummaryDTO, error) {
	return []SwapSummaryDTO{}, nil
}

func (s *stubSwapsRepo) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]SwapSummaryDTO, error) {
	return []SwapSummaryDTO{}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Tx: stubTxRunner{}})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestCreateSwap(t *testing.T) {
	requesterID := uuid.New()
	itemID := uuid.New()
	repo := &stubSwapsRepo{
		item: &models.Item{
			ID:      itemID,
			OwnerID: uuid.New(),
			Status:  enums.ItemStatusAvailable,
		},
	}
	svc := newTestService(t, repo)

	swap, err := svc.Create(context.Background(), requesterID, CreateSwapInput{
		ItemID:  itemID,
		Message: "  interested in a trade  ",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.createdSwap == nil {
		t.Fatal("expected swap row to be created")
	}
	if swap.Status != enums.SwapStatusPending {
		t.Fatalf("expected pending got %s", swap.Status)
	}
	if swap.Message != "interested in a trade" {
		t.Fatalf("expected trimmed message got %q", swap.Message)
	}
	if len(repo.appendedMessages) != 1 {
		t.Fatalf("expected one appended message got %d", len(repo.appendedMessages))
	}
	if repo.appendedMessages[0].SwapRequestID != repo.createdSwap.ID {
		t.Fatal("message not attached to the created swap")
	}
	if repo.appendedMessages[0].SenderID != requesterID {
		t.Fatal("message not attributed to the requester")
	}
}

func TestCreateSwapReusesPendingRow(t *testing.T) {
	requesterID := uuid.New()
	itemID := uuid.New()
	pending := &models.SwapRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		ItemID:      itemID,
		Status:      enums.SwapStatusPending,
	}
	repo := &stubSwapsRepo{
		item: &models.Item{
			ID:      itemID,
			OwnerID: uuid.New(),
			Status:  enums.ItemStatusAvailable,
		},
		pendingSwap: pending,
	}
	svc := newTestService(t, repo)

	swap, err := svc.Create(context.Background(), requesterID, CreateSwapInput{
		ItemID:  itemID,
		Message: "still interested",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.createdSwap != nil {
		t.Fatal("expected no new swap row")
	}
	if swap.ID != pending.ID {
		t.Fatal("expected the pending row to be reused")
	}
	if len(repo.appendedMessages) != 1 {
		t.Fatalf("expected one appended message got %d", len(repo.appendedMessages))
	}
	if repo.appendedMessages[0].SwapRequestID != pending.ID {
		t.Fatal("message not attached to the pending swap")
	}
}

func TestCreateSwapSkipsEmptyMessage(t *testing.T) {
	itemID := uuid.New()
	repo := &stubSwapsRepo{
		item: &models.Item{
			ID:      itemID,
			OwnerID: uuid.New(),
			Status:  enums.ItemStatusAvailable,
		},
	}
	svc := newTestService(t, repo)

	if _, err := svc.Create(context.Background(), uuid.New(), CreateSwapInput{
		ItemID:  itemID,
		Message: "   ",
	}); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(repo.appendedMessages) != 0 {
		t.Fatalf("expected no appended messages got %d", len(repo.appendedMessages))
	}
}

func TestCreateSwapOwnItem(t *testing.T) {
	ownerID := uuid.New()
	itemID := uuid.New()
	repo := &stubSwapsRepo{
		item: &models.Item{
			ID:      itemID,
			OwnerID: ownerID,
			Status:  enums.ItemStatusAvailable,
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), ownerID, CreateSwapInput{ItemID: itemID})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCreateSwapItemNotAvailable(t *testing.T) {
	itemID := uuid.New()
	repo := &stubSwapsRepo{
		item: &models.Item{
			ID:      itemID,
			OwnerID: uuid.New(),
			Status:  enums.ItemStatusReserved,
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateSwapInput{ItemID: itemID})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCreateSwapItemMissing(t *testing.T) {
	repo := &stubSwapsRepo{}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateSwapInput{ItemID: uuid.New()})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func lifecycleFixture(status enums.SwapStatus) (*stubSwapsRepo, uuid.UUID, uuid.UUID, uuid.UUID) {
	requesterID := uuid.New()
	ownerID := uuid.New()
	itemID := uuid.New()
	swapID := uuid.New()
	repo := &stubSwapsRepo{
		item: &models.Item{
			ID:      itemID,
			OwnerID: ownerID,
			Status:  enums.ItemStatusAvailable,
		},
		swap: &models.SwapRequest{
			ID:          swapID,
			RequesterID: requesterID,
			ItemID:      itemID,
			Status:      status,
		},
	}
	return repo, swapID, requesterID, ownerID
}

func TestSetStatusAcceptReservesItem(t *testing.T) {
	repo, swapID, _, ownerID := lifecycleFixture(enums.SwapStatusPending)
	svc := newTestService(t, repo)

	swap, err := svc.SetStatus(context.Background(), swapID, "accepted", ownerID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if swap.Status != enums.SwapStatusAccepted {
		t.Fatalf("expected accepted got %s", swap.Status)
	}
	if repo.updatedSwapStatus != enums.SwapStatusAccepted {
		t.Fatalf("expected status write accepted got %s", repo.updatedSwapStatus)
	}
	if !repo.itemStatusUpdated || repo.updatedItemStatus != enums.ItemStatusReserved {
		t.Fatalf("expected item reserved got %s", repo.updatedItemStatus)
	}
}

func TestSetStatusCompleteMarksItemExchanged(t *testing.T) {
	repo, swapID, _, ownerID := lifecycleFixture(enums.SwapStatusAccepted)
	svc := newTestService(t, repo)

	swap, err := svc.SetStatus(context.Background(), swapID, "completed", ownerID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if swap.Status != enums.SwapStatusCompleted {
		t.Fatalf("expected completed got %s", swap.Status)
	}
	if !repo.itemStatusUpdated || repo.updatedItemStatus != enums.ItemStatusExchanged {
		t.Fatalf("expected item exchanged got %s", repo.updatedItemStatus)
	}
}

func TestSetStatusCancelLeavesItemAlone(t *testing.T) {
	repo, swapID, requesterID, _ := lifecycleFixture(enums.SwapStatusAccepted)
	svc := newTestService(t, repo)

	swap, err := svc.SetStatus(context.Background(), swapID, "cancelled", requesterID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if swap.Status != enums.SwapStatusCancelled {
		t.Fatalf("expected cancelled got %s", swap.Status)
	}
	if repo.itemStatusUpdated {
		t.Fatal("cancel must not touch the item status")
	}
}

func TestSetStatusCancelRequiresRequester(t *testing.T) {
	repo, swapID, _, ownerID := lifecycleFixture(enums.SwapStatusPending)
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), swapID, "cancelled", ownerID)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error %v", err)
	}
	if repo.swapStatusUpdated {
		t.Fatal("unexpected status write")
	}
}

func TestSetStatusDecisionRequiresOwner(t *testing.T) {
	repo, swapID, requesterID, _ := lifecycleFixture(enums.SwapStatusPending)
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), swapID, "accepted", requesterID)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSetStatusStrangerForbidden(t *testing.T) {
	repo, swapID, _, _ := lifecycleFixture(enums.SwapStatusPending)
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), swapID, "rejected", uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSetStatusNoOpRejected(t *testing.T) {
	repo, swapID, _, ownerID := lifecycleFixture(enums.SwapStatusAccepted)
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), swapID, "accepted", ownerID)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
	if repo.swapStatusUpdated {
		t.Fatal("unexpected status write")
	}
}

func TestSetStatusPendingTargetRejected(t *testing.T) {
	repo, swapID, _, ownerID := lifecycleFixture(enums.SwapStatusAccepted)
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), swapID, "pending", ownerID)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSetStatusUnknownValue(t *testing.T) {
	repo, swapID, _, ownerID := lifecycleFixture(enums.SwapStatusPending)
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), swapID, "archived", ownerID)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSetStatusSwapMissing(t *testing.T) {
	repo := &stubSwapsRepo{}
	svc := newTestService(t, repo)

	_, err := svc.SetStatus(context.Background(), uuid.New(), "accepted", uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error %v", err)
	}
}
