package chat

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/campusswap/campusswap-backend/internal/swaps"
	"github.com/campusswap/campusswap-backend/pkg/db/models"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the conversation log in both addressing modes.
type Service interface {
	ListMessages(ctx context.Context, swapID, userID uuid.UUID) ([]MessageDTO, error)
	PostMessage(ctx context.Context, swapID, userID uuid.UUID, body string) (*MessageDTO, error)
	ListPartnerMessages(ctx context.Context, userID, partnerID uuid.UUID) ([]MessageDTO, error)
	PostPartnerMessage(ctx context.Context, userID, partnerID uuid.UUID, body string) (*MessageDTO, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error)
}

// ServiceParams groups dependencies for the chat service.
type ServiceParams struct {
	Repo Repository
	Tx   txRunner
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a chat service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{repo: params.Repo, tx: params.Tx}, nil
}

// ListMessages returns a swap's conversation, oldest first. Only the two
// parties to the swap may read it.
func (s *service) ListMessages(ctx context.Context, swapID, userID uuid.UUID) ([]MessageDTO, error) {
	if _, err := s.authorize(ctx, swapID, userID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBySwap(ctx, swapID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return rows, nil
}

// PostMessage appends a message to a swap's conversation.
func (s *service) PostMessage(ctx context.Context, swapID, userID uuid.UUID, body string) (*MessageDTO, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}
	if _, err := s.authorize(ctx, swapID, userID); err != nil {
		return nil, err
	}
	return s.append(ctx, swapID, userID, trimmed)
}

// ListPartnerMessages aggregates the full relationship between two users,
// oldest first. An empty relationship yields an empty list.
func (s *service) ListPartnerMessages(ctx context.Context, userID, partnerID uuid.UUID) ([]MessageDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id is required")
	}
	rows, err := s.repo.ListBetweenUsers(ctx, userID, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partner messages")
	}
	return rows, nil
}

// PostPartnerMessage attaches a message to the most recent swap between the
// two users. Without any swap relationship there is nowhere to write.
func (s *service) PostPartnerMessage(ctx context.Context, userID, partnerID uuid.UUID, body string) (*MessageDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id is required")
	}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	swap, err := s.repo.LatestSwapBetween(ctx, userID, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "no connection with this user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find relationship")
	}
	return s.append(ctx, swap.ID, userID, trimmed)
}

// ListConversations returns one entry per counterparty, sorted by the most
// recent message in the relationship, partners without messages last.
func (s *service) ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	partners, err := s.repo.ListPartners(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}

	conversations := make([]ConversationDTO, 0, len(partners))
	for _, partner := range partners {
		conv := ConversationDTO{Partner: partner}
		last, err := s.repo.LastMessageBetween(ctx, userID, partner.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load last message")
		}
		if last != nil {
			body := last.Body
			at := last.CreatedAt
			conv.LastMessageBody = &body
			conv.LastMessageAt = &at
		}
		conversations = append(conversations, conv)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessageAt, conversations[j].LastMessageAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return conversations, nil
}

func (s *service) authorize(ctx context.Context, swapID, userID uuid.UUID) (*models.SwapRequest, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if swapID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swap id is required")
	}
	swap, ownerID, err := s.repo.FindSwapWithOwner(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "swap not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load swap")
	}
	if !swaps.ResolveActor(swap, ownerID, userID).Involved() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this swap")
	}
	return swap, nil
}

func (s *service) append(ctx context.Context, swapID, senderID uuid.UUID, body string) (*MessageDTO, error) {
	msg := &models.Message{
		SwapRequestID: swapID,
		SenderID:      senderID,
		Body:          body,
	}
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).CreateMessage(ctx, msg)
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "append message")
	}
	return &MessageDTO{
		ID:            msg.ID,
		SwapRequestID: msg.SwapRequestID,
		SenderID:      msg.SenderID,
		Body:          msg.Body,
		CreatedAt:     msg.CreatedAt,
	}, nil
}
